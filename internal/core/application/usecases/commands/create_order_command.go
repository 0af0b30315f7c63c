package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one cart line as submitted by the client. Catalog items
// carry a product id and get their snapshot price from the live catalog;
// custom items carry their own name and price and are taken on trust.
type OrderItemInput struct {
	ProductID *kernel.UUID
	Name      string
	UnitPrice *kernel.Money
	Quantity  int
	IsCustom  bool
}

// CreateOrderCommand represents a request to price a cart and create a new
// order for it.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, shopID,
//	    "42 Harbor Lane", nil, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	shopID          kernel.UUID
	deliveryAddress string
	category        *string
	items           []OrderItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order. Validates
// ids, the delivery address, and every cart line. Category is optional and
// sharpens delivery rule resolution when given.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	shopID kernel.UUID,
	deliveryAddress string,
	category *string,
	items []OrderItemInput,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setShopID(shopID),
		orderCommand.setDeliveryAddress(deliveryAddress),
		orderCommand.setCategory(category),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ShopID returns the shop the cart belongs to.
func (c CreateOrderCommand) ShopID() kernel.UUID {
	return c.shopID
}

// DeliveryAddress returns the address the order ships to.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// Category returns the optional cart category hint, nil when absent.
func (c CreateOrderCommand) Category() *string {
	return c.category
}

// Items returns the submitted cart lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}

	c.shopID = shopID
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateOrderCommand) setCategory(category *string) error {
	if category != nil && *category == "" {
		return errs.NewValueIsRequiredError("category")
	}

	c.category = category
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("item quantity", item.Quantity, 1, maxItemQuantity)
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

	c.items = items
	return nil
}

// maxItemQuantity caps a single cart line.
const maxItemQuantity = 1000
