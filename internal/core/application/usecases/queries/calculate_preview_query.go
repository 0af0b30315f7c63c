// Package queries contains read-only operations in the CQRS architecture.
// Queries never modify state: the pricing preview computes a quote without
// writing anything, and order lookups read straight from storage.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCalculatePreviewQueryIsNotConstructed = errors.New(
	"CalculatePreviewQuery must be created via NewCalculatePreviewQuery constructor",
)

// PreviewItemInput is one cart line submitted for a price preview. Mirrors
// the order creation input: catalog lines carry a product id, custom lines
// carry their own name and price.
type PreviewItemInput struct {
	ProductID *kernel.UUID
	Name      string
	UnitPrice *kernel.Money
	Quantity  int
	IsCustom  bool
}

// CalculatePreviewQuery requests the full pricing breakdown for a cart
// without creating anything. Used for cart display before checkout.
//
// Example:
//
//	query, err := NewCalculatePreviewQuery(shopID, nil, items)
//	if err != nil {
//	    return err
//	}
//
//	preview, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("you pay %s (%s delivery)", preview.GrandTotal, preview.DeliveryFee)
type CalculatePreviewQuery struct { //nolint:recvcheck //using for validation
	shopID   kernel.UUID
	category *string
	items    []PreviewItemInput

	guard guard.ConstructorGuard
}

// NewCalculatePreviewQuery creates a preview query over a non-empty cart.
func NewCalculatePreviewQuery(
	shopID kernel.UUID,
	category *string,
	items []PreviewItemInput,
) (CalculatePreviewQuery, error) {
	previewQuery := CalculatePreviewQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		previewQuery.setShopID(shopID),
		previewQuery.setCategory(category),
		previewQuery.setItems(items),
	); err != nil {
		return CalculatePreviewQuery{}, err
	}

	return previewQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCalculatePreviewQueryIsNotConstructed if validation fails.
func (q CalculatePreviewQuery) Validate() error {
	return q.guard.Validate(ErrCalculatePreviewQueryIsNotConstructed)
}

// ShopID returns the shop the cart belongs to.
func (q CalculatePreviewQuery) ShopID() kernel.UUID {
	return q.shopID
}

// Category returns the optional cart category hint, nil when absent.
func (q CalculatePreviewQuery) Category() *string {
	return q.category
}

// Items returns the submitted cart lines.
func (q CalculatePreviewQuery) Items() []PreviewItemInput {
	return q.items
}

func (q *CalculatePreviewQuery) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}

	q.shopID = shopID
	return nil
}

func (q *CalculatePreviewQuery) setCategory(category *string) error {
	if category != nil && *category == "" {
		return errs.NewValueIsRequiredError("category")
	}

	q.category = category
	return nil
}

func (q *CalculatePreviewQuery) setItems(items []PreviewItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidError("item quantity")
		}

		if item.IsCustom {
			if item.Name == "" {
				return errs.NewValueIsRequiredError("custom item name")
			}
			if item.UnitPrice == nil {
				return errs.NewValueIsRequiredError("custom item unit price")
			}
			continue
		}

		if item.ProductID == nil {
			return errs.NewValueIsRequiredError("item product id")
		}
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
	}

	q.items = items
	return nil
}

// CalculatePreviewQueryResponse is the quoted breakdown for cart display.
// AppliedShopDiscountID and AppliedPlatformDiscountID identify the winning
// discount rules for receipt display, nil when no discount applied.
type CalculatePreviewQueryResponse struct {
	Subtotal         kernel.Money
	ShopDiscount     kernel.Money
	PlatformDiscount kernel.Money
	FinalPayable     kernel.Money
	DeliveryFee      kernel.Money
	IsSmallOrder     bool

	CommissionPercent kernel.Percent
	CommissionAmount  kernel.Money
	ShopSettlement    kernel.Money
	GrandTotal        kernel.Money

	AppliedShopDiscountID     *kernel.UUID
	AppliedPlatformDiscountID *kernel.UUID
	AppliedDeliveryRuleID     kernel.UUID
}
