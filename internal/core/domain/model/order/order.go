package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// DefaultCancellationWindow is how long after creation a customer may cancel
// their own order. Shops and administrators are not time-boxed.
const DefaultCancellationWindow = 10 * time.Minute

// Order is the aggregate root for a placed marketplace order. It is created
// once with its line items, pricing breakdown, and revenue log in a single
// transaction, and thereafter mutated only through its status-transition
// methods. Orders are never deleted; they end in a terminal status.
//
// Invariants:
//   - at least one line item; item snapshots never change after creation
//   - grand total equals final payable plus delivery fee
//   - status moves only along the transition table; terminal statuses lock
//   - the revenue log is written once and never recomputed
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	shopID     kernel.UUID
	zoneID     kernel.UUID

	deliveryAddress string

	items      []Item
	pricing    Pricing
	revenueLog RevenueLog

	status            Status
	finalStatusLocked bool

	// deliveryOtp is minted when the order goes out for delivery and must be
	// echoed back to confirm delivery.
	deliveryOtp string

	failureReason string
	cancelReason  string
	cancelledBy   *Role

	deliveredAt *time.Time
	failedAt    *time.Time
	cancelledAt *time.Time
	createdAt   time.Time

	// version supports optimistic locking on status mutation.
	version int

	auditNotes []AuditNote

	isConstructed bool
}

// NewOrder creates a new pending order from validated line items and a
// computed pricing breakdown. The revenue log is derived verbatim from the
// pricing figures.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	shopID kernel.UUID,
	zoneID kernel.UUID,
	deliveryAddress string,
	items []Item,
	pricing Pricing,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		shopID.Validate(),
		zoneID.Validate(),
	); err != nil {
		return nil, err
	}

	if deliveryAddress == "" {
		return nil, errs.NewValueIsRequiredError("delivery address")
	}

	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}

	if !pricing.GrandTotal.IsEqual(pricing.FinalPayable.Add(pricing.DeliveryFee)) {
		return nil, errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("grand total %s does not equal payable %s plus delivery fee %s",
				pricing.GrandTotal, pricing.FinalPayable, pricing.DeliveryFee))
	}

	return &Order{
		id:              id,
		customerID:      customerID,
		shopID:          shopID,
		zoneID:          zoneID,
		deliveryAddress: deliveryAddress,
		items:           items,
		pricing:         pricing,
		revenueLog: NewRevenueLog(
			pricing.Subtotal,
			pricing.DeliveryFee,
			pricing.CommissionAmount,
			pricing.ShopDeliveryEarning,
			pricing.PlatformDeliveryEarning,
			pricing.ShopFinalEarning,
			pricing.PlatformFinalEarning,
			pricing.IsSmallOrder,
		),
		status:        StatusPending,
		createdAt:     createdAt,
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreOrderParams carries the persisted state needed to reconstruct an
// Order aggregate.
type RestoreOrderParams struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	ShopID     kernel.UUID
	ZoneID     kernel.UUID

	DeliveryAddress string

	Items      []Item
	Pricing    Pricing
	RevenueLog RevenueLog

	Status            Status
	FinalStatusLocked bool
	DeliveryOtp       string

	FailureReason string
	CancelReason  string
	CancelledBy   *Role

	DeliveredAt *time.Time
	FailedAt    *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time

	Version    int
	AuditNotes []AuditNote
}

// RestoreOrder reconstructs an Order from persistence without re-deriving the
// revenue log, which must be loaded as stored.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.CustomerID.Validate(),
		p.ShopID.Validate(),
		p.ZoneID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if len(p.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}

	if p.Version <= 0 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not greater than 0", p.Version))
	}

	return &Order{
		id:                p.ID,
		customerID:        p.CustomerID,
		shopID:            p.ShopID,
		zoneID:            p.ZoneID,
		deliveryAddress:   p.DeliveryAddress,
		items:             p.Items,
		pricing:           p.Pricing,
		revenueLog:        p.RevenueLog,
		status:            p.Status,
		finalStatusLocked: p.FinalStatusLocked,
		deliveryOtp:       p.DeliveryOtp,
		failureReason:     p.FailureReason,
		cancelReason:      p.CancelReason,
		cancelledBy:       p.CancelledBy,
		deliveredAt:       p.DeliveredAt,
		failedAt:          p.FailedAt,
		cancelledAt:       p.CancelledAt,
		createdAt:         p.CreatedAt,
		version:           p.Version,
		auditNotes:        p.AuditNotes,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the ordering customer.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// ShopID returns the shop the order was placed with.
func (o *Order) ShopID() kernel.UUID { return o.shopID }

// ZoneID returns the delivery zone the order was priced against.
func (o *Order) ZoneID() kernel.UUID { return o.zoneID }

// DeliveryAddress returns the address the order ships to.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// Items returns the line-item snapshots.
func (o *Order) Items() []Item { return o.items }

// Pricing returns the financial breakdown frozen at creation.
func (o *Order) Pricing() Pricing { return o.pricing }

// RevenueLog returns the immutable revenue split record.
func (o *Order) RevenueLog() RevenueLog { return o.revenueLog }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// IsFinalStatusLocked reports whether a terminal status was reached.
func (o *Order) IsFinalStatusLocked() bool { return o.finalStatusLocked }

// DeliveryOtp returns the minted delivery confirmation code, or "" before the
// order goes out for delivery.
func (o *Order) DeliveryOtp() string { return o.deliveryOtp }

// FailureReason returns the reason recorded on a failed delivery.
func (o *Order) FailureReason() string { return o.failureReason }

// CancelReason returns the reason recorded on cancellation.
func (o *Order) CancelReason() string { return o.cancelReason }

// CancelledBy returns the role that cancelled the order, or nil.
func (o *Order) CancelledBy() *Role { return o.cancelledBy }

// DeliveredAt returns when delivery was confirmed, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// FailedAt returns when delivery failure was recorded, or nil.
func (o *Order) FailedAt() *time.Time { return o.failedAt }

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Version returns the optimistic-locking version.
func (o *Order) Version() int { return o.version }

// AdvanceVersion bumps the optimistic-locking version. Called by persistence
// after a successful compare-and-swap write so the in-memory aggregate stays
// aligned with the stored row.
func (o *Order) AdvanceVersion() { o.version++ }

// AuditNotes returns the append-only override history.
func (o *Order) AuditNotes() []AuditNote { return o.auditNotes }

// guardTransition checks that a move to next is allowed without committing
// it: a locked order rejects any further transition, and the move must be
// allowed by the transition table. Callers commit by assigning the returned
// status once their own preconditions hold.
func (o *Order) guardTransition(next Status) (Status, error) {
	if o.finalStatusLocked {
		return "", errs.NewOrderLockedError(o.id.String(), o.status.String())
	}

	return o.status.TransitionTo(next)
}

// ensureTransition guards a move to next and commits it.
func (o *Order) ensureTransition(next Status) error {
	newStatus, err := o.guardTransition(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Accept confirms a pending order.
func (o *Order) Accept() error {
	return o.ensureTransition(StatusAccepted)
}

// StartDelivery moves an accepted order out for delivery and mints the
// delivery OTP.
func (o *Order) StartDelivery() error {
	next, err := o.guardTransition(StatusOutForDelivery)
	if err != nil {
		return err
	}

	otp, err := mintDeliveryOtp()
	if err != nil {
		return err
	}

	o.status = next
	o.deliveryOtp = otp
	return nil
}

// MarkDelivered confirms delivery with the OTP minted at dispatch. A wrong
// code fails with InvalidOtpError and leaves the order untouched.
func (o *Order) MarkDelivered(otp string, now time.Time) error {
	next, err := o.guardTransition(StatusDelivered)
	if err != nil {
		return err
	}

	if otp != o.deliveryOtp {
		return errs.NewInvalidOtpError(o.id.String())
	}

	o.status = next
	o.deliveredAt = &now
	o.finalStatusLocked = true
	return nil
}

// MarkFailed records a failed delivery attempt with a mandatory reason.
func (o *Order) MarkFailed(reason string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("failure reason")
	}

	if err := o.ensureTransition(StatusFailed); err != nil {
		return err
	}

	o.failureReason = reason
	o.failedAt = &now
	o.finalStatusLocked = true
	return nil
}

// Cancel cancels the order from any non-terminal status. Customers may only
// cancel within the given window after creation; shops and administrators are
// not time-boxed. The acting role is recorded as cancelled_by.
func (o *Order) Cancel(actor Actor, reason string, now time.Time, window time.Duration) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}

	if actor.Role() == RoleCustomer && now.Sub(o.createdAt) > window {
		return errs.NewCancellationWindowExpiredError(o.id.String(), int(window.Minutes()))
	}

	if err := o.ensureTransition(StatusCancelled); err != nil {
		return err
	}

	role := actor.Role()
	o.cancelReason = reason
	o.cancelledBy = &role
	o.cancelledAt = &now
	o.finalStatusLocked = true
	return nil
}

// ForceStatus is the administrator override: it moves the order to any status
// unconditionally, requires a reason, appends an immutable audit note, and
// re-applies the terminal-state locking rule for the forced status.
func (o *Order) ForceStatus(adminID kernel.UUID, target Status, reason string, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	note, err := NewAuditNote(adminID, o.status, target, reason, now)
	if err != nil {
		return err
	}

	if target == StatusOutForDelivery && o.deliveryOtp == "" {
		otp, otpErr := mintDeliveryOtp()
		if otpErr != nil {
			return otpErr
		}
		o.deliveryOtp = otp
	}

	switch target {
	case StatusDelivered:
		o.deliveredAt = &now
	case StatusFailed:
		o.failedAt = &now
		o.failureReason = reason
	case StatusCancelled:
		role := RoleAdmin
		o.cancelledBy = &role
		o.cancelReason = reason
		o.cancelledAt = &now
	}

	o.status = target
	o.finalStatusLocked = target.IsTerminal()
	o.auditNotes = append(o.auditNotes, note)
	return nil
}
