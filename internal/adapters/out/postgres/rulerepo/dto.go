// Package rulerepo persists delivery rules. Rules are read-mostly
// configuration; selection among them happens in the domain layer, the
// repository only narrows the candidate set to a zone.
package rulerepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rule"
)

// RuleDTO represents the database structure for delivery rules.
type RuleDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ZoneID                uuid.UUID `gorm:"type:uuid;index"`
	Category              *string
	ShopID                *uuid.UUID       `gorm:"type:uuid;index"`
	DeliveryFee           decimal.Decimal  `gorm:"type:decimal(12,2)"`
	ShopDeliveryShare     decimal.Decimal  `gorm:"type:decimal(12,2)"`
	PlatformDeliveryShare decimal.Decimal  `gorm:"type:decimal(12,2)"`
	CommissionPercent     decimal.Decimal  `gorm:"type:decimal(5,2)"`
	MinOrderValue         *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SmallOrderDeliveryFee *decimal.Decimal `gorm:"type:decimal(12,2)"`
	IsActive              bool             `gorm:"index"`
}

// TableName specifies the database table name for delivery rules.
func (RuleDTO) TableName() string {
	return "delivery_rules"
}

func toDomain(dto RuleDTO) (*rule.DeliveryRule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	var shopID *kernel.UUID
	if dto.ShopID != nil {
		sID, sErr := kernel.UUIDFromBytes((*dto.ShopID)[:])
		if sErr != nil {
			return nil, sErr
		}
		shopID = &sID
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	shopShare, err := kernel.NewMoney(dto.ShopDeliveryShare)
	if err != nil {
		return nil, err
	}
	platformShare, err := kernel.NewMoney(dto.PlatformDeliveryShare)
	if err != nil {
		return nil, err
	}
	commission, err := kernel.NewPercent(dto.CommissionPercent)
	if err != nil {
		return nil, err
	}

	minOrderValue, err := moneyPtr(dto.MinOrderValue)
	if err != nil {
		return nil, err
	}
	smallOrderFee, err := moneyPtr(dto.SmallOrderDeliveryFee)
	if err != nil {
		return nil, err
	}

	return rule.RestoreDeliveryRule(id, zoneID, dto.Category, shopID,
		deliveryFee, shopShare, platformShare, commission,
		minOrderValue, smallOrderFee, dto.IsActive)
}

func moneyPtr(d *decimal.Decimal) (*kernel.Money, error) {
	if d == nil {
		return nil, nil
	}
	m, err := kernel.NewMoney(*d)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
