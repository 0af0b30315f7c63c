package order

import (
	"marketplace/internal/core/domain/model/kernel"
)

// Pricing is the full financial breakdown computed for a cart before an order
// is created. Every figure is persisted verbatim on the order and its revenue
// log; nothing is recomputed after creation.
type Pricing struct {
	// Subtotal is the sum of all line totals at snapshot prices.
	Subtotal kernel.Money

	// ShopDiscount and PlatformDiscount are the winning discount amounts per
	// creator type; at most one of each is ever applied.
	ShopDiscount     kernel.Money
	PlatformDiscount kernel.Money

	// AppliedShopDiscountID and AppliedPlatformDiscountID identify the winning
	// rules for receipt and audit display; nil when no discount applied.
	AppliedShopDiscountID     *kernel.UUID
	AppliedPlatformDiscountID *kernel.UUID

	// AppliedDeliveryRuleID identifies the delivery rule the fee and commission
	// were taken from.
	AppliedDeliveryRuleID kernel.UUID

	// FinalPayable is max(0, subtotal - both discounts).
	FinalPayable kernel.Money

	// DeliveryFee is the assessed fee (elevated when IsSmallOrder).
	DeliveryFee  kernel.Money
	IsSmallOrder bool

	// CommissionPercent and CommissionAmount describe the platform cut taken
	// on the commission base (subtotal minus the shop-funded discount).
	CommissionPercent kernel.Percent
	CommissionAmount  kernel.Money

	// ShopSettlement is the commission base minus the commission.
	ShopSettlement kernel.Money

	// GrandTotal is FinalPayable plus DeliveryFee.
	GrandTotal kernel.Money

	// Delivery fee split and final per-party earnings.
	ShopDeliveryEarning     kernel.Money
	PlatformDeliveryEarning kernel.Money
	ShopFinalEarning        kernel.Money
	PlatformFinalEarning    kernel.Money
}
