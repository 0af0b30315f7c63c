package discount

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrDiscountRuleIsNotConstructed is returned when a DiscountRule instance was
// not created through NewDiscountRule or RestoreDiscountRule.
var ErrDiscountRuleIsNotConstructed = errors.New(
	"DiscountRule must be created via NewDiscountRule or RestoreDiscountRule")

// Kind distinguishes flat-amount discounts from percentage discounts.
type Kind string

const (
	KindFlat       Kind = "FLAT"
	KindPercentage Kind = "PERCENTAGE"
)

// Validate checks that the kind is one of the known values.
func (k Kind) Validate() error {
	switch k {
	case KindFlat, KindPercentage:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("discount kind",
			fmt.Errorf("%q is not a valid discount kind", string(k)))
	}
}

// CreatorType identifies who funds a discount. A cart receives at most one
// discount per creator type.
type CreatorType string

const (
	CreatorShop  CreatorType = "SHOP"
	CreatorAdmin CreatorType = "ADMIN"
)

// Validate checks that the creator type is one of the known values.
func (c CreatorType) Validate() error {
	switch c {
	case CreatorShop, CreatorAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("discount creator type",
			fmt.Errorf("%q is not a valid creator type", string(c)))
	}
}

// TargetType is the scope a discount applies to.
type TargetType string

const (
	TargetGlobal   TargetType = "GLOBAL"
	TargetLocation TargetType = "LOCATION"
	TargetShop     TargetType = "SHOP"
	TargetProduct  TargetType = "PRODUCT"
)

// Validate checks that the target type is one of the known values.
func (t TargetType) Validate() error {
	switch t {
	case TargetGlobal, TargetLocation, TargetShop, TargetProduct:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("discount target type",
			fmt.Errorf("%q is not a valid target type", string(t)))
	}
}

var hundred = decimal.NewFromInt(100)

// DiscountRule is a shop- or platform-funded discount with a target scope and
// a validity window. Rules are created by operators or shop owners outside
// this core; pricing treats them as read-only candidates.
//
// Invariants enforced at construction:
//   - value is strictly positive
//   - percentage values do not exceed 100
//   - non-global targets carry a target identifier
//   - an ordered validity window (from before until) when both ends are set
type DiscountRule struct {
	id   kernel.UUID
	kind Kind

	// value is a currency amount for FLAT rules and a rate for PERCENTAGE rules.
	value decimal.Decimal

	// maxDiscountAmount caps the computed amount of PERCENTAGE rules; nil means uncapped.
	maxDiscountAmount *kernel.Money

	// minOrderValue is the smallest subtotal the rule applies to; nil means no floor.
	minOrderValue *kernel.Money

	creatorType CreatorType
	creatorID   kernel.UUID

	targetType TargetType
	targetID   *kernel.UUID

	// validFrom/validUntil bound the validity window; either may be open-ended.
	validFrom  *time.Time
	validUntil *time.Time

	isActive bool

	isConstructed bool
}

// NewDiscountRule creates a validated DiscountRule.
func NewDiscountRule(
	id kernel.UUID,
	kind Kind,
	value decimal.Decimal,
	maxDiscountAmount *kernel.Money,
	minOrderValue *kernel.Money,
	creatorType CreatorType,
	creatorID kernel.UUID,
	targetType TargetType,
	targetID *kernel.UUID,
	validFrom *time.Time,
	validUntil *time.Time,
	isActive bool,
) (*DiscountRule, error) {
	if err := errors.Join(
		id.Validate(),
		kind.Validate(),
		creatorType.Validate(),
		creatorID.Validate(),
		targetType.Validate(),
	); err != nil {
		return nil, err
	}

	if !value.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("discount value",
			fmt.Errorf("%s is not greater than 0", value))
	}

	if kind == KindPercentage && value.GreaterThan(hundred) {
		return nil, errs.NewValueIsOutOfRangeError("discount value", value.String(), 0, 100)
	}

	if targetType != TargetGlobal {
		if targetID == nil {
			return nil, errs.NewValueIsRequiredError("discount target id")
		}
		if err := targetID.Validate(); err != nil {
			return nil, err
		}
	}

	if validFrom != nil && validUntil != nil && validUntil.Before(*validFrom) {
		return nil, errs.NewValueIsInvalidErrorWithCause("discount validity window",
			fmt.Errorf("valid_until %s precedes valid_from %s", validUntil, validFrom))
	}

	return &DiscountRule{
		id:                id,
		kind:              kind,
		value:             value,
		maxDiscountAmount: maxDiscountAmount,
		minOrderValue:     minOrderValue,
		creatorType:       creatorType,
		creatorID:         creatorID,
		targetType:        targetType,
		targetID:          targetID,
		validFrom:         validFrom,
		validUntil:        validUntil,
		isActive:          isActive,
		isConstructed:     true,
	}, nil
}

// RestoreDiscountRule reconstructs a DiscountRule from persistence.
// It applies the same validation as NewDiscountRule.
func RestoreDiscountRule(
	id kernel.UUID,
	kind Kind,
	value decimal.Decimal,
	maxDiscountAmount *kernel.Money,
	minOrderValue *kernel.Money,
	creatorType CreatorType,
	creatorID kernel.UUID,
	targetType TargetType,
	targetID *kernel.UUID,
	validFrom *time.Time,
	validUntil *time.Time,
	isActive bool,
) (*DiscountRule, error) {
	return NewDiscountRule(id, kind, value, maxDiscountAmount, minOrderValue,
		creatorType, creatorID, targetType, targetID, validFrom, validUntil, isActive)
}

// Validate ensures the rule was constructed through a constructor.
func (d *DiscountRule) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDiscountRuleIsNotConstructed
	}
	return nil
}

// ID returns the rule's unique identifier.
func (d *DiscountRule) ID() kernel.UUID {
	return d.id
}

// Kind returns FLAT or PERCENTAGE.
func (d *DiscountRule) Kind() Kind {
	return d.kind
}

// Value returns the raw discount value: an amount for FLAT rules, a rate for
// PERCENTAGE rules.
func (d *DiscountRule) Value() decimal.Decimal {
	return d.value
}

// MaxDiscountAmount returns the percentage cap, or nil when uncapped.
func (d *DiscountRule) MaxDiscountAmount() *kernel.Money {
	return d.maxDiscountAmount
}

// MinOrderValue returns the applicability floor, or nil when unset.
func (d *DiscountRule) MinOrderValue() *kernel.Money {
	return d.minOrderValue
}

// CreatorType returns whether the rule is shop-funded or platform-funded.
func (d *DiscountRule) CreatorType() CreatorType {
	return d.creatorType
}

// CreatorID returns the identifier of the rule's creator.
func (d *DiscountRule) CreatorID() kernel.UUID {
	return d.creatorID
}

// TargetType returns the rule's scope type.
func (d *DiscountRule) TargetType() TargetType {
	return d.targetType
}

// TargetID returns the scoped zone, shop, or product id; nil for GLOBAL rules.
func (d *DiscountRule) TargetID() *kernel.UUID {
	return d.targetID
}

// ValidFrom returns the window start, or nil when open-ended.
func (d *DiscountRule) ValidFrom() *time.Time {
	return d.validFrom
}

// ValidUntil returns the window end, or nil when open-ended.
func (d *DiscountRule) ValidUntil() *time.Time {
	return d.validUntil
}

// IsActive reports whether the rule is enabled.
func (d *DiscountRule) IsActive() bool {
	return d.isActive
}

// IsLiveAt reports whether the rule is active and its validity window
// contains the given instant.
func (d *DiscountRule) IsLiveAt(now time.Time) bool {
	if !d.isActive {
		return false
	}
	if d.validFrom != nil && now.Before(*d.validFrom) {
		return false
	}
	if d.validUntil != nil && now.After(*d.validUntil) {
		return false
	}
	return true
}

// MeetsMinimum reports whether the cart subtotal reaches the rule's
// minimum order value.
func (d *DiscountRule) MeetsMinimum(subtotal kernel.Money) bool {
	if d.minOrderValue == nil {
		return true
	}
	return !subtotal.LessThan(*d.minOrderValue)
}

// RunAmount computes the money this rule would take off the given applicable
// amount. FLAT rules never exceed the applicable amount; PERCENTAGE rules are
// capped at MaxDiscountAmount when set.
func (d *DiscountRule) RunAmount(applicable kernel.Money) kernel.Money {
	if d.kind == KindFlat {
		flat, err := kernel.NewMoney(d.value)
		if err != nil {
			return kernel.ZeroMoney()
		}
		return flat.Min(applicable)
	}

	run := applicable.MulRatio(d.value, hundred)
	if d.maxDiscountAmount != nil {
		run = run.Min(*d.maxDiscountAmount)
	}
	return run
}
