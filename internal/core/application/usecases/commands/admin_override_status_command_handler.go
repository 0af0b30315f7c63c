package commands

import (
	"context"
	"time"
)

// AdminOverrideStatusCommandHandler applies unconditional administrator
// status overrides. Unlike regular transitions, overrides ignore the
// transition table and the terminal lock, but every one of them appends an
// audit note to the order.
type AdminOverrideStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdminOverrideStatusCommandHandler creates a handler for status overrides.
func NewAdminOverrideStatusCommandHandler(uowFactory OrderUoWFactory) AdminOverrideStatusCommandHandler {
	return AdminOverrideStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the override command inside a single transaction so the
// status change and the audit note land together or not at all.
func (h *AdminOverrideStatusCommandHandler) Handle(ctx context.Context, cmd AdminOverrideStatusCommand) error {
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

	if err = aggregate.ForceStatus(cmd.AdminID(), cmd.TargetStatus(), cmd.Reason(), time.Now()); err != nil {
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
