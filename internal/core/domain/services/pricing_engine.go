package services

import (
	"time"

	"marketplace/internal/core/domain/model/discount"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rule"
)

// PricingRequest carries everything the engine needs to price one cart. The
// rule and discount slices are pre-fetched candidate sets for the shop's
// zone; the engine itself never touches storage.
type PricingRequest struct {
	ZoneID         kernel.UUID
	ShopID         kernel.UUID
	Category       *string
	ShopCategories []string
	Items          []order.Item
	Rules          []*rule.DeliveryRule
	Discounts      []*discount.DiscountRule
	Now            time.Time
}

// PricingEngine is a domain service that turns a cart into the full financial
// breakdown: subtotal, winning discounts, delivery fee, commission, shop
// settlement and the per-party earnings split.
//
// The computation is pure and deterministic for a given request; the same
// engine backs both order creation and the side-effect-free preview.
type PricingEngine struct {
	rules     RuleResolver
	discounts DiscountResolver
}

// NewPricingEngine creates a PricingEngine wired to the given resolvers.
func NewPricingEngine(rules RuleResolver, discounts DiscountResolver) PricingEngine {
	return PricingEngine{rules: rules, discounts: discounts}
}

// Price computes the breakdown for the request.
//
// Fails with RuleNotFoundError when the zone has no applicable delivery rule
// and MinimumOrderNotMetError when the subtotal is under a strict rule's
// minimum. Discounts never push the payable amount below zero, and
// grand total always equals final payable plus delivery fee.
func (e PricingEngine) Price(req PricingRequest) (order.Pricing, error) {
	subtotal := kernel.ZeroMoney()
	for _, item := range req.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	deliveryRule, err := e.rules.Resolve(req.Rules, req.ZoneID, req.Category, &req.ShopID, req.ShopCategories)
	if err != nil {
		return order.Pricing{}, err
	}

	assessment, err := deliveryRule.AssessOrderValue(subtotal)
	if err != nil {
		return order.Pricing{}, err
	}

	selection := e.discounts.Resolve(req.Discounts, subtotal, req.Items, req.Now)

	finalPayable := subtotal.SubOrZero(selection.TotalAmount())

	// Commission is taken on what the shop actually earns from goods, so
	// only the shop-funded discount reduces the base.
	commissionBase, err := subtotal.Sub(selection.ShopAmount())
	if err != nil {
		return order.Pricing{}, err
	}
	commission := deliveryRule.CommissionPercent().ApplyTo(commissionBase)
	settlement, err := commissionBase.Sub(commission)
	if err != nil {
		return order.Pricing{}, err
	}

	shopShare, platformShare := deliveryRule.SplitDeliveryFee(assessment)

	pricing := order.Pricing{
		Subtotal:                subtotal,
		AppliedDeliveryRuleID:   deliveryRule.ID(),
		ShopDiscount:            selection.ShopAmount(),
		PlatformDiscount:        selection.PlatformAmount(),
		FinalPayable:            finalPayable,
		DeliveryFee:             assessment.Fee,
		IsSmallOrder:            assessment.IsSmallOrder,
		CommissionPercent:       deliveryRule.CommissionPercent(),
		CommissionAmount:        commission,
		ShopSettlement:          settlement,
		GrandTotal:              finalPayable.Add(assessment.Fee),
		ShopDeliveryEarning:     shopShare,
		PlatformDeliveryEarning: platformShare,
		ShopFinalEarning:        settlement.Add(shopShare),
		PlatformFinalEarning:    commission.Add(platformShare),
	}
	if selection.Shop != nil {
		ruleID := selection.Shop.RuleID
		pricing.AppliedShopDiscountID = &ruleID
	}
	if selection.Platform != nil {
		ruleID := selection.Platform.RuleID
		pricing.AppliedPlatformDiscountID = &ruleID
	}

	return pricing, nil
}
