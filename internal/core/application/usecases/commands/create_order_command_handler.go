package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CreateOrderCommandHandler coordinates order creation: it validates cart
// lines against the live catalog, prices the cart, and persists the order
// with its items and revenue log as one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, shops, catalog,
//	    ruleRepo, discountRepo, engine)
//	cmd, _ := NewCreateOrderCommand(orderID, customerID, shopID, address, nil, items)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	shops        ports.ShopDirectory
	catalog      ports.ProductCatalog
	ruleRepo     ports.DeliveryRuleRepository
	discountRepo ports.DiscountRuleRepository
	engine       services.PricingEngine
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	shops ports.ShopDirectory,
	catalog ports.ProductCatalog,
	ruleRepo ports.DeliveryRuleRepository,
	discountRepo ports.DiscountRuleRepository,
	engine services.PricingEngine,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		shops:        shops,
		catalog:      catalog,
		ruleRepo:     ruleRepo,
		discountRepo: discountRepo,
		engine:       engine,
	}
}

// Handle processes the order creation command.
//
// The shop's zone drives rule resolution; custom cart lines keep their
// client-supplied price while catalog lines snapshot the current product
// price. The order, its items and its revenue log are written atomically,
// so a failure on any of the three rolls back all of them.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	shop, err := h.shops.Get(ctx, cmd.ShopID())
	if err != nil {
		return err
	}

	items, err := h.buildItems(ctx, cmd.Items())
	if err != nil {
		return err
	}

	now := time.Now()
	pricing, err := h.priceCart(ctx, shop, cmd.Category(), items, now)
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.ShopID(),
		shop.ZoneID, cmd.DeliveryAddress(), items, pricing, now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// buildItems turns cart lines into validated order items, snapshotting
// current catalog prices for non-custom lines.
func (h *CreateOrderCommandHandler) buildItems(
	ctx context.Context,
	inputs []OrderItemInput,
) ([]order.Item, error) {
	items := make([]order.Item, 0, len(inputs))
	for _, input := range inputs {
		if input.IsCustom {
			item, err := order.NewItem(input.ProductID, input.Name, *input.UnitPrice, input.Quantity, true)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			continue
		}

		product, err := h.catalog.Get(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}

		productID := product.ID
		item, err := order.NewItem(&productID, product.Name, product.Price, input.Quantity, false)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// priceCart fetches the zone's rule and discount candidates and runs the
// pricing engine.
func (h *CreateOrderCommandHandler) priceCart(
	ctx context.Context,
	shop ports.ShopInfo,
	category *string,
	items []order.Item,
	now time.Time,
) (order.Pricing, error) {
	rules, err := h.ruleRepo.ListActiveForZone(ctx, shop.ZoneID)
	if err != nil {
		return order.Pricing{}, err
	}

	productIDs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		if item.ProductID() != nil {
			productIDs = append(productIDs, *item.ProductID())
		}
	}

	discounts, err := h.discountRepo.ListCandidates(ctx, shop.ZoneID, shop.ID, productIDs, now)
	if err != nil {
		return order.Pricing{}, err
	}

	return h.engine.Price(services.PricingRequest{
		ZoneID:         shop.ZoneID,
		ShopID:         shop.ID,
		Category:       category,
		ShopCategories: shop.Categories,
		Items:          items,
		Rules:          rules,
		Discounts:      discounts,
		Now:            now,
	})
}
