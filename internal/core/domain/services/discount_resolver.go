package services

import (
	"time"

	"marketplace/internal/core/domain/model/discount"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// AppliedDiscount is a winning discount: the rule that won and the amount it
// takes off the cart.
type AppliedDiscount struct {
	RuleID kernel.UUID
	Amount kernel.Money
}

// DiscountSelection holds the outcome of discount resolution: at most one
// shop-funded and one platform-funded discount, chosen independently.
type DiscountSelection struct {
	Shop     *AppliedDiscount
	Platform *AppliedDiscount
}

// TotalAmount returns the combined discount across both creator types.
func (s DiscountSelection) TotalAmount() kernel.Money {
	total := kernel.ZeroMoney()
	if s.Shop != nil {
		total = total.Add(s.Shop.Amount)
	}
	if s.Platform != nil {
		total = total.Add(s.Platform.Amount)
	}
	return total
}

// ShopAmount returns the shop-funded discount amount, zero when none applied.
func (s DiscountSelection) ShopAmount() kernel.Money {
	if s.Shop == nil {
		return kernel.ZeroMoney()
	}
	return s.Shop.Amount
}

// PlatformAmount returns the platform-funded discount amount, zero when none
// applied.
func (s DiscountSelection) PlatformAmount() kernel.Money {
	if s.Platform == nil {
		return kernel.ZeroMoney()
	}
	return s.Platform.Amount
}

// DiscountResolver is a domain service that scans candidate discount rules
// and picks the single best shop-created and the single best admin-created
// discount for a cart. The two picks are independent; a cart can carry both
// at once but never two of the same creator type.
type DiscountResolver struct{}

// NewDiscountResolver creates a new DiscountResolver instance.
func NewDiscountResolver() DiscountResolver {
	return DiscountResolver{}
}

// Resolve evaluates each candidate against the cart and keeps the highest
// run amount per creator type.
//
// A candidate is skipped when it is inactive, outside its validity window at
// now, or the subtotal is under its minimum order value. PRODUCT-targeted
// rules apply to the matching line totals only; every other target applies
// to the full subtotal.
func (r DiscountResolver) Resolve(
	candidates []*discount.DiscountRule,
	subtotal kernel.Money,
	items []order.Item,
	now time.Time,
) DiscountSelection {
	var selection DiscountSelection

	for _, candidate := range candidates {
		if !candidate.IsActive() || !candidate.IsLiveAt(now) {
			continue
		}
		if !candidate.MeetsMinimum(subtotal) {
			continue
		}

		applicable := subtotal
		if candidate.TargetType() == discount.TargetProduct {
			applicable = productLineTotal(items, candidate.TargetID())
			if applicable.IsZero() {
				continue
			}
		}

		amount := candidate.RunAmount(applicable)
		applied := &AppliedDiscount{RuleID: candidate.ID(), Amount: amount}

		switch candidate.CreatorType() {
		case discount.CreatorShop:
			if selection.Shop == nil || amount.GreaterThan(selection.Shop.Amount) {
				selection.Shop = applied
			}
		case discount.CreatorAdmin:
			if selection.Platform == nil || amount.GreaterThan(selection.Platform.Amount) {
				selection.Platform = applied
			}
		}
	}

	return selection
}

// productLineTotal sums the line totals of the items matching the target
// product id.
func productLineTotal(items []order.Item, productID *kernel.UUID) kernel.Money {
	total := kernel.ZeroMoney()
	if productID == nil {
		return total
	}
	for _, item := range items {
		if item.ProductID() != nil && item.ProductID().IsEqual(*productID) {
			total = total.Add(item.LineTotal())
		}
	}
	return total
}
