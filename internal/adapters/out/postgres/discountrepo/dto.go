// Package discountrepo persists discount rules and narrows the candidate set
// for a cart. Winner selection stays in the domain layer.
package discountrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/discount"
	"marketplace/internal/core/domain/model/kernel"
)

// DiscountDTO represents the database structure for discount rules.
type DiscountDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind              string
	Value             decimal.Decimal  `gorm:"type:decimal(12,2)"`
	MaxDiscountAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MinOrderValue     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatorType       string           `gorm:"index"`
	CreatorID         uuid.UUID        `gorm:"type:uuid"`
	TargetType        string           `gorm:"index"`
	TargetID          *uuid.UUID       `gorm:"type:uuid;index"`
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	IsActive          bool `gorm:"index"`
}

// TableName specifies the database table name for discount rules.
func (DiscountDTO) TableName() string {
	return "discount_rules"
}

func toDomain(dto DiscountDTO) (*discount.DiscountRule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	creatorID, err := kernel.UUIDFromBytes(dto.CreatorID[:])
	if err != nil {
		return nil, err
	}

	var targetID *kernel.UUID
	if dto.TargetID != nil {
		tID, tErr := kernel.UUIDFromBytes((*dto.TargetID)[:])
		if tErr != nil {
			return nil, tErr
		}
		targetID = &tID
	}

	maxAmount, err := moneyPtr(dto.MaxDiscountAmount)
	if err != nil {
		return nil, err
	}
	minOrderValue, err := moneyPtr(dto.MinOrderValue)
	if err != nil {
		return nil, err
	}

	return discount.RestoreDiscountRule(id,
		discount.Kind(dto.Kind), dto.Value, maxAmount, minOrderValue,
		discount.CreatorType(dto.CreatorType), creatorID,
		discount.TargetType(dto.TargetType), targetID,
		dto.ValidFrom, dto.ValidUntil, dto.IsActive)
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
