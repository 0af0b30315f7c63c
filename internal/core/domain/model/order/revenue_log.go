package order

import (
	"marketplace/internal/core/domain/model/kernel"
)

// RevenueLog is the immutable per-order record of how the order's money was
// split between the shop and the platform. One log row exists per order,
// written in the same transaction as the order itself.
//
// The log is the canonical source for downstream analytics. Every figure is
// carried verbatim from the pricing computation at creation time and is never
// recomputed from the order afterwards.
type RevenueLog struct {
	orderValue              kernel.Money
	deliveryFeeCharged      kernel.Money
	commissionAmount        kernel.Money
	shopDeliveryEarning     kernel.Money
	platformDeliveryEarning kernel.Money
	shopFinalEarning        kernel.Money
	platformFinalEarning    kernel.Money
	isSmallOrder            bool
}

// NewRevenueLog creates the revenue split record from verbatim pricing figures.
func NewRevenueLog(
	orderValue kernel.Money,
	deliveryFeeCharged kernel.Money,
	commissionAmount kernel.Money,
	shopDeliveryEarning kernel.Money,
	platformDeliveryEarning kernel.Money,
	shopFinalEarning kernel.Money,
	platformFinalEarning kernel.Money,
	isSmallOrder bool,
) RevenueLog {
	return RevenueLog{
		orderValue:              orderValue,
		deliveryFeeCharged:      deliveryFeeCharged,
		commissionAmount:        commissionAmount,
		shopDeliveryEarning:     shopDeliveryEarning,
		platformDeliveryEarning: platformDeliveryEarning,
		shopFinalEarning:        shopFinalEarning,
		platformFinalEarning:    platformFinalEarning,
		isSmallOrder:            isSmallOrder,
	}
}

// OrderValue returns the cart subtotal the split was computed from.
func (l RevenueLog) OrderValue() kernel.Money {
	return l.orderValue
}

// DeliveryFeeCharged returns the delivery fee actually applied.
func (l RevenueLog) DeliveryFeeCharged() kernel.Money {
	return l.deliveryFeeCharged
}

// CommissionAmount returns the platform commission taken on the order.
func (l RevenueLog) CommissionAmount() kernel.Money {
	return l.commissionAmount
}

// ShopDeliveryEarning returns the shop's share of the delivery fee.
func (l RevenueLog) ShopDeliveryEarning() kernel.Money {
	return l.shopDeliveryEarning
}

// PlatformDeliveryEarning returns the platform's share of the delivery fee.
func (l RevenueLog) PlatformDeliveryEarning() kernel.Money {
	return l.platformDeliveryEarning
}

// ShopFinalEarning returns settlement plus the shop's delivery share.
func (l RevenueLog) ShopFinalEarning() kernel.Money {
	return l.shopFinalEarning
}

// PlatformFinalEarning returns commission plus the platform's delivery share.
func (l RevenueLog) PlatformFinalEarning() kernel.Money {
	return l.platformFinalEarning
}

// IsSmallOrder reports whether the elevated small-order fee was applied.
func (l RevenueLog) IsSmallOrder() bool {
	return l.isSmallOrder
}
