package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies status transitions to orders on
// behalf of customers, shop operators and administrators.
//
// The handler enforces who may touch the order; the aggregate enforces which
// transitions are legal, OTP matching and the customer cancellation window.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	shops      ports.ShopDirectory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	shops ports.ShopDirectory,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		shops:      shops,
	}
}

// Handle processes the status transition command.
//
// The order is re-read and written inside one transaction; the repository's
// optimistic version check turns a lost race into VersionConflictError
// instead of a silent overwrite.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.authorize(ctx, cmd, aggregate); err != nil {
		return err
	}

	if err = h.applyTransition(cmd, aggregate); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// authorize checks that the caller is the order's customer, the owning
// shop's operator, or an administrator.
func (h *UpdateOrderStatusCommandHandler) authorize(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
	aggregate *order.Order,
) error {
	switch cmd.ActorRole() {
	case order.RoleAdmin:
		return nil
	case order.RoleCustomer:
		if cmd.ActorID().IsEqual(aggregate.CustomerID()) {
			return nil
		}
	case order.RoleShop:
		shop, err := h.shops.Get(ctx, aggregate.ShopID())
		if err != nil {
			return err
		}
		if cmd.ActorID().IsEqual(shop.OwnerID) {
			return nil
		}
	}

	return errs.NewUnauthorizedError(cmd.ActorID().String())
}

// applyTransition dispatches the target status to the matching aggregate
// method.
func (h *UpdateOrderStatusCommandHandler) applyTransition(
	cmd UpdateOrderStatusCommand,
	aggregate *order.Order,
) error {
	now := time.Now()

	switch cmd.TargetStatus() {
	case order.StatusAccepted:
		return aggregate.Accept()
	case order.StatusOutForDelivery:
		return aggregate.StartDelivery()
	case order.StatusDelivered:
		return aggregate.MarkDelivered(cmd.Otp(), now)
	case order.StatusFailed:
		return aggregate.MarkFailed(cmd.Reason(), now)
	case order.StatusCancelled:
		actor, err := order.NewActor(cmd.ActorID(), cmd.ActorRole())
		if err != nil {
			return err
		}
		return aggregate.Cancel(actor, cmd.Reason(), now, order.DefaultCancellationWindow)
	default:
		return errs.NewValueIsInvalidError("target status")
	}
}
