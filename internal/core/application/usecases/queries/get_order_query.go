package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items for display.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("order %s is %s\n", resp.ID, resp.Status)
type GetOrderQuery struct {
	orderID kernel.UUID
}

// NewGetOrderQuery creates a query for the given order id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	if err := q.orderID.Validate(); err != nil {
		return ErrGetOrderQueryIsNotConstructed
	}
	return nil
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderItemResponse is one order line as stored at order time.
type GetOrderItemResponse struct {
	ProductID *kernel.UUID
	Name      string
	UnitPrice kernel.Money
	Quantity  int
	IsCustom  bool
}

// GetOrderQueryResponse is the order read model: identity, status and the
// full pricing breakdown that was frozen at creation.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	ShopID          kernel.UUID
	ZoneID          kernel.UUID
	DeliveryAddress string

	Subtotal          kernel.Money
	ShopDiscount      kernel.Money
	PlatformDiscount  kernel.Money
	FinalPayable      kernel.Money
	DeliveryFee       kernel.Money
	IsSmallOrder      bool
	CommissionPercent kernel.Percent
	CommissionAmount  kernel.Money
	ShopSettlement    kernel.Money
	GrandTotal        kernel.Money

	Status            string
	FinalStatusLocked bool
	DeliveryOtp       string
	FailureReason     string
	CancelReason      string
	CancelledBy       *string

	DeliveredAt *time.Time
	FailedAt    *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time

	Items []GetOrderItemResponse
}
