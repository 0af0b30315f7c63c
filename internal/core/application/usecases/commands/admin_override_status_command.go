package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAdminOverrideStatusCommandIsNotConstructed = errors.New(
	"AdminOverrideStatusCommand must be created via NewAdminOverrideStatusCommand constructor",
)

// AdminOverrideStatusCommand represents an administrator forcing an order to
// an arbitrary status, bypassing the transition table. Every override must
// carry a reason, which ends up in the order's audit trail.
type AdminOverrideStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	adminID      kernel.UUID
	targetStatus order.Status
	reason       string

	guard guard.ConstructorGuard
}

// NewAdminOverrideStatusCommand creates an override command. The reason is
// mandatory; overrides without an explanation are rejected up front.
func NewAdminOverrideStatusCommand(
	orderID kernel.UUID,
	adminID kernel.UUID,
	targetStatus order.Status,
	reason string,
) (AdminOverrideStatusCommand, error) {
	overrideCommand := AdminOverrideStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		overrideCommand.setOrderID(orderID),
		overrideCommand.setAdminID(adminID),
		overrideCommand.setTargetStatus(targetStatus),
		overrideCommand.setReason(reason),
	); err != nil {
		return AdminOverrideStatusCommand{}, err
	}

	return overrideCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdminOverrideStatusCommandIsNotConstructed if validation fails.
func (c AdminOverrideStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdminOverrideStatusCommandIsNotConstructed)
}

// OrderID returns the order to override.
func (c AdminOverrideStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AdminID returns the administrator performing the override.
func (c AdminOverrideStatusCommand) AdminID() kernel.UUID {
	return c.adminID
}

// TargetStatus returns the status being forced.
func (c AdminOverrideStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Reason returns the mandatory override explanation.
func (c AdminOverrideStatusCommand) Reason() string {
	return c.reason
}

func (c *AdminOverrideStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdminOverrideStatusCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	c.adminID = adminID
	return nil
}

func (c *AdminOverrideStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}

func (c *AdminOverrideStatusCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("override reason")
	}

	c.reason = reason
	return nil
}
