package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CalculatePreviewQueryHandler prices a cart without creating an order. It
// runs the same resolution and pricing path as order creation, so the quote
// a customer sees is the price they pay at checkout modulo catalog changes
// in between.
type CalculatePreviewQueryHandler struct {
	shops        ports.ShopDirectory
	catalog      ports.ProductCatalog
	ruleRepo     ports.DeliveryRuleRepository
	discountRepo ports.DiscountRuleRepository
	engine       services.PricingEngine
}

// NewCalculatePreviewQueryHandler creates a handler for pricing previews.
func NewCalculatePreviewQueryHandler(
	shops ports.ShopDirectory,
	catalog ports.ProductCatalog,
	ruleRepo ports.DeliveryRuleRepository,
	discountRepo ports.DiscountRuleRepository,
	engine services.PricingEngine,
) CalculatePreviewQueryHandler {
	return CalculatePreviewQueryHandler{
		shops:        shops,
		catalog:      catalog,
		ruleRepo:     ruleRepo,
		discountRepo: discountRepo,
		engine:       engine,
	}
}

// Handle computes the pricing breakdown for the cart. Side-effect free.
func (h CalculatePreviewQueryHandler) Handle(
	ctx context.Context,
	query CalculatePreviewQuery,
) (CalculatePreviewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculatePreviewQueryResponse{}, err
	}

	shop, err := h.shops.Get(ctx, query.ShopID())
	if err != nil {
		return CalculatePreviewQueryResponse{}, err
	}

	items := make([]order.Item, 0, len(query.Items()))
	productIDs := make([]kernel.UUID, 0, len(query.Items()))
	for _, input := range query.Items() {
		if input.IsCustom {
			item, itemErr := order.NewItem(input.ProductID, input.Name, *input.UnitPrice, input.Quantity, true)
			if itemErr != nil {
				return CalculatePreviewQueryResponse{}, itemErr
			}
			items = append(items, item)
			continue
		}

		product, prodErr := h.catalog.Get(ctx, *input.ProductID)
		if prodErr != nil {
			return CalculatePreviewQueryResponse{}, prodErr
		}

		productID := product.ID
		item, itemErr := order.NewItem(&productID, product.Name, product.Price, input.Quantity, false)
		if itemErr != nil {
			return CalculatePreviewQueryResponse{}, itemErr
		}
		items = append(items, item)
		productIDs = append(productIDs, productID)
	}

	now := time.Now()
	rules, err := h.ruleRepo.ListActiveForZone(ctx, shop.ZoneID)
	if err != nil {
		return CalculatePreviewQueryResponse{}, err
	}

	discounts, err := h.discountRepo.ListCandidates(ctx, shop.ZoneID, shop.ID, productIDs, now)
	if err != nil {
		return CalculatePreviewQueryResponse{}, err
	}

	pricing, err := h.engine.Price(services.PricingRequest{
		ZoneID:         shop.ZoneID,
		ShopID:         shop.ID,
		Category:       query.Category(),
		ShopCategories: shop.Categories,
		Items:          items,
		Rules:          rules,
		Discounts:      discounts,
		Now:            now,
	})
	if err != nil {
		return CalculatePreviewQueryResponse{}, err
	}

	return CalculatePreviewQueryResponse{
		Subtotal:                  pricing.Subtotal,
		ShopDiscount:              pricing.ShopDiscount,
		PlatformDiscount:          pricing.PlatformDiscount,
		FinalPayable:              pricing.FinalPayable,
		DeliveryFee:               pricing.DeliveryFee,
		IsSmallOrder:              pricing.IsSmallOrder,
		CommissionPercent:         pricing.CommissionPercent,
		CommissionAmount:          pricing.CommissionAmount,
		ShopSettlement:            pricing.ShopSettlement,
		GrandTotal:                pricing.GrandTotal,
		AppliedShopDiscountID:     pricing.AppliedShopDiscountID,
		AppliedPlatformDiscountID: pricing.AppliedPlatformDiscountID,
		AppliedDeliveryRuleID:     pricing.AppliedDeliveryRuleID,
	}, nil
}
