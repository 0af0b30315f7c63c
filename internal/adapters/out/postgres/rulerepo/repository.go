package rulerepo

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rule"
)

// GormDeliveryRuleRepository implements DeliveryRuleRepository using GORM.
type GormDeliveryRuleRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRuleRepository creates a new GORM delivery rule repository.
func NewGormDeliveryRuleRepository(db *gorm.DB) *GormDeliveryRuleRepository {
	return &GormDeliveryRuleRepository{db: db}
}

// ListActiveForZone returns every active rule configured for the zone.
func (r *GormDeliveryRuleRepository) ListActiveForZone(ctx context.Context, zoneID kernel.UUID) ([]*rule.DeliveryRule, error) {
	if err := zoneID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RuleDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "zone_id = ? AND is_active = true", zoneID.Bytes()).Error; err != nil {
		return nil, err
	}

	rules := make([]*rule.DeliveryRule, 0, len(dtos))
	for _, dto := range dtos {
		domainRule, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, domainRule)
	}

	return rules, nil
}
