package order

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Item is a line item frozen at order time: product identity, the unit price
// in effect when the order was placed, and the quantity. The snapshot never
// changes, even if the catalog price changes later.
type Item struct {
	// productID is nil for custom (non-catalog) items.
	productID *kernel.UUID

	name      string
	unitPrice kernel.Money
	quantity  int

	// isCustom marks a client-priced item that bypassed catalog validation.
	isCustom bool
}

// NewItem creates a validated line-item snapshot. Catalog items must carry a
// product id; custom items must not.
func NewItem(productID *kernel.UUID, name string, unitPrice kernel.Money, quantity int, isCustom bool) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}

	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if isCustom {
		if productID != nil {
			return Item{}, errs.NewValueIsInvalidError("custom item must not carry a product id")
		}
	} else {
		if productID == nil {
			return Item{}, errs.NewValueIsRequiredError("item product id")
		}
		if err := productID.Validate(); err != nil {
			return Item{}, err
		}
	}

	return Item{
		productID: productID,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
		isCustom:  isCustom,
	}, nil
}

// ProductID returns the snapshotted product id, or nil for custom items.
func (i Item) ProductID() *kernel.UUID {
	return i.productID
}

// Name returns the snapshotted product name.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the price per unit at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// IsCustom reports whether the item was client-priced rather than taken from
// the catalog.
func (i Item) IsCustom() bool {
	return i.isCustom
}

// LineTotal returns unit price times quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}
