package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request by a customer, shop operator
// or administrator to move an order to a new status. The OTP accompanies
// delivery confirmation; the reason accompanies failure and cancellation.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actorID      kernel.UUID
	actorRole    order.Role
	targetStatus order.Status
	otp          string
	reason       string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a status transition command. The target
// must be a valid non-pending status; pending is only ever set at creation.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	actorRole order.Role,
	targetStatus order.Status,
	otp string,
	reason string,
) (UpdateOrderStatusCommand, error) {
	statusCommand := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setActor(actorID, actorRole),
		statusCommand.setTargetStatus(targetStatus),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	statusCommand.otp = otp
	statusCommand.reason = reason

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identity of the caller.
func (c UpdateOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the caller's role.
func (c UpdateOrderStatusCommand) ActorRole() order.Role {
	return c.actorRole
}

// TargetStatus returns the status the caller wants the order in.
func (c UpdateOrderStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Otp returns the delivery confirmation code, empty unless confirming
// delivery.
func (c UpdateOrderStatusCommand) Otp() string {
	return c.otp
}

// Reason returns the failure or cancellation reason, empty otherwise.
func (c UpdateOrderStatusCommand) Reason() string {
	return c.reason
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setActor(actorID kernel.UUID, actorRole order.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}

func (c *UpdateOrderStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	if targetStatus == order.StatusPending {
		return errs.NewValueIsInvalidError("target status")
	}

	c.targetStatus = targetStatus
	return nil
}
