package discountrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/discount"
	"marketplace/internal/core/domain/model/kernel"
)

// GormDiscountRuleRepository implements DiscountRuleRepository using GORM.
type GormDiscountRuleRepository struct {
	db *gorm.DB
}

// NewGormDiscountRuleRepository creates a new GORM discount rule repository.
func NewGormDiscountRuleRepository(db *gorm.DB) *GormDiscountRuleRepository {
	return &GormDiscountRuleRepository{db: db}
}

// ListCandidates returns active rules whose target could match the cart:
// global rules, rules targeting the shop's zone, rules targeting the shop
// itself, and rules targeting any product in the cart. Validity windows and
// minimum-order thresholds are checked in the domain layer; the query only
// prunes rules that cannot possibly apply.
func (r *GormDiscountRuleRepository) ListCandidates(
	ctx context.Context,
	zoneID kernel.UUID,
	shopID kernel.UUID,
	productIDs []kernel.UUID,
	now time.Time,
) ([]*discount.DiscountRule, error) {
	if err := zoneID.Validate(); err != nil {
		return nil, err
	}
	if err := shopID.Validate(); err != nil {
		return nil, err
	}

	rawProductIDs := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		rawProductIDs = append(rawProductIDs, id.Bytes())
	}

	query := r.db.WithContext(ctx).
		Where("is_active = true").
		Where("(valid_from IS NULL OR valid_from <= ?)", now).
		Where("(valid_until IS NULL OR valid_until >= ?)", now)

	targets := r.db.
		Where("target_type = ?", discount.TargetGlobal).
		Or("target_type = ? AND target_id = ?", discount.TargetLocation, zoneID.Bytes()).
		Or("target_type = ? AND target_id = ?", discount.TargetShop, shopID.Bytes())
	if len(rawProductIDs) > 0 {
		targets = targets.Or("target_type = ? AND target_id IN ?", discount.TargetProduct, rawProductIDs)
	}

	var dtos []DiscountDTO
	if err := query.Where(targets).Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]*discount.DiscountRule, 0, len(dtos))
	for _, dto := range dtos {
		domainRule, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, domainRule)
	}

	return rules, nil
}

// DeactivateExpired flips is_active off for every rule whose validity window
// has closed. Returns the number of rules deactivated.
func (r *GormDiscountRuleRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&DiscountDTO{}).
		Where("is_active = true AND valid_until IS NOT NULL AND valid_until < ?", now).
		Update("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
