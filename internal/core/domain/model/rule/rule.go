package rule

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrDeliveryRuleIsNotConstructed is returned when a DeliveryRule instance was
// not created through NewDeliveryRule or RestoreDeliveryRule.
var ErrDeliveryRuleIsNotConstructed = errors.New(
	"DeliveryRule must be created via NewDeliveryRule or RestoreDeliveryRule")

// DeliveryRule is the delivery-fee and commission configuration for a scope.
// A rule is scoped to a zone and optionally narrowed to a category or a single
// shop; more specific scopes win during resolution (see services.RuleResolver).
//
// Invariants enforced at construction:
//   - delivery fee equals the shop share plus the platform share
//   - the commission rate lies in [0, 100] (guaranteed by kernel.Percent)
//   - a small-order fee without a minimum order value is meaningless and rejected
//
// Rules are created and edited by operators outside this core; pricing treats
// them as read-only.
type DeliveryRule struct {
	id     kernel.UUID
	zoneID kernel.UUID

	// category narrows the rule to one product category; nil means zone-wide.
	category *string

	// shopID narrows the rule to one shop; nil means not shop-specific.
	shopID *kernel.UUID

	deliveryFee           kernel.Money
	shopDeliveryShare     kernel.Money
	platformDeliveryShare kernel.Money
	commissionPercent     kernel.Percent

	// minOrderValue is the subtotal threshold below which the order is a
	// "small order"; nil disables the threshold entirely.
	minOrderValue *kernel.Money

	// smallOrderDeliveryFee is the elevated fee charged to permitted small
	// orders. nil means strict mode: orders below the minimum are blocked.
	smallOrderDeliveryFee *kernel.Money

	isActive bool

	isConstructed bool
}

// NewDeliveryRule creates a validated DeliveryRule.
func NewDeliveryRule(
	id kernel.UUID,
	zoneID kernel.UUID,
	category *string,
	shopID *kernel.UUID,
	deliveryFee kernel.Money,
	shopDeliveryShare kernel.Money,
	platformDeliveryShare kernel.Money,
	commissionPercent kernel.Percent,
	minOrderValue *kernel.Money,
	smallOrderDeliveryFee *kernel.Money,
	isActive bool,
) (*DeliveryRule, error) {
	if err := errors.Join(id.Validate(), zoneID.Validate()); err != nil {
		return nil, err
	}

	if shopID != nil {
		if err := shopID.Validate(); err != nil {
			return nil, err
		}
	}

	if category != nil && *category == "" {
		return nil, errs.NewValueIsRequiredError("category")
	}

	if !shopDeliveryShare.Add(platformDeliveryShare).IsEqual(deliveryFee) {
		return nil, errs.NewValueIsInvalidErrorWithCause("delivery fee split",
			fmt.Errorf("%s + %s does not equal %s", shopDeliveryShare, platformDeliveryShare, deliveryFee))
	}

	if smallOrderDeliveryFee != nil && minOrderValue == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("small order delivery fee",
			errors.New("set without a minimum order value"))
	}

	return &DeliveryRule{
		id:                    id,
		zoneID:                zoneID,
		category:              category,
		shopID:                shopID,
		deliveryFee:           deliveryFee,
		shopDeliveryShare:     shopDeliveryShare,
		platformDeliveryShare: platformDeliveryShare,
		commissionPercent:     commissionPercent,
		minOrderValue:         minOrderValue,
		smallOrderDeliveryFee: smallOrderDeliveryFee,
		isActive:              isActive,
		isConstructed:         true,
	}, nil
}

// RestoreDeliveryRule reconstructs a DeliveryRule from persistence.
// It applies the same validation as NewDeliveryRule.
func RestoreDeliveryRule(
	id kernel.UUID,
	zoneID kernel.UUID,
	category *string,
	shopID *kernel.UUID,
	deliveryFee kernel.Money,
	shopDeliveryShare kernel.Money,
	platformDeliveryShare kernel.Money,
	commissionPercent kernel.Percent,
	minOrderValue *kernel.Money,
	smallOrderDeliveryFee *kernel.Money,
	isActive bool,
) (*DeliveryRule, error) {
	return NewDeliveryRule(id, zoneID, category, shopID,
		deliveryFee, shopDeliveryShare, platformDeliveryShare, commissionPercent,
		minOrderValue, smallOrderDeliveryFee, isActive)
}

// Validate ensures the rule was constructed through a constructor.
func (r *DeliveryRule) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrDeliveryRuleIsNotConstructed
	}
	return nil
}

// ID returns the rule's unique identifier.
func (r *DeliveryRule) ID() kernel.UUID {
	return r.id
}

// ZoneID returns the delivery zone the rule is scoped to.
func (r *DeliveryRule) ZoneID() kernel.UUID {
	return r.zoneID
}

// Category returns the category scope, or nil for a zone-wide rule.
func (r *DeliveryRule) Category() *string {
	return r.category
}

// ShopID returns the shop scope, or nil when the rule is not shop-specific.
func (r *DeliveryRule) ShopID() *kernel.UUID {
	return r.shopID
}

// DeliveryFee returns the normal delivery fee.
func (r *DeliveryRule) DeliveryFee() kernel.Money {
	return r.deliveryFee
}

// ShopDeliveryShare returns the shop's portion of the normal delivery fee.
func (r *DeliveryRule) ShopDeliveryShare() kernel.Money {
	return r.shopDeliveryShare
}

// PlatformDeliveryShare returns the platform's portion of the normal delivery fee.
func (r *DeliveryRule) PlatformDeliveryShare() kernel.Money {
	return r.platformDeliveryShare
}

// CommissionPercent returns the platform commission rate.
func (r *DeliveryRule) CommissionPercent() kernel.Percent {
	return r.commissionPercent
}

// MinOrderValue returns the small-order threshold, or nil when unset.
func (r *DeliveryRule) MinOrderValue() *kernel.Money {
	return r.minOrderValue
}

// SmallOrderDeliveryFee returns the elevated small-order fee, or nil in strict mode.
func (r *DeliveryRule) SmallOrderDeliveryFee() *kernel.Money {
	return r.smallOrderDeliveryFee
}

// IsActive reports whether pricing may use this rule.
func (r *DeliveryRule) IsActive() bool {
	return r.isActive
}
