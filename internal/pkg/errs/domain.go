package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for checkout and order-lifecycle failures. These are surfaced
// verbatim to clients as actionable errors; the HTTP adapter maps them to
// response classes with errors.Is.
var (
	ErrRuleNotFound              = errors.New("no delivery rule configured for this destination")
	ErrMinimumOrderNotMet        = errors.New("order value is below the configured minimum")
	ErrOrderLocked               = errors.New("order has reached a final status")
	ErrInvalidOtp                = errors.New("delivery otp does not match")
	ErrCancellationWindowExpired = errors.New("cancellation window has expired")
	ErrUnauthorized              = errors.New("actor is not permitted to act on this order")
	ErrVersionConflict           = errors.New("order was modified concurrently")
	ErrUnknownZone               = errors.New("shop does not map to a known delivery zone")
)

// UnknownZoneError reports a shop whose zone reference does not resolve to a
// known delivery zone.
type UnknownZoneError struct {
	ShopID string
	ZoneID string
}

// NewUnknownZoneError creates an UnknownZoneError for the given shop and its
// dangling zone reference.
func NewUnknownZoneError(shopID, zoneID string) *UnknownZoneError {
	return &UnknownZoneError{ShopID: shopID, ZoneID: zoneID}
}

func (e *UnknownZoneError) Error() string {
	return sanitize(fmt.Sprintf("%s: shop is: %s, zone is: %s", ErrUnknownZone, e.ShopID, e.ZoneID))
}

func (e *UnknownZoneError) Unwrap() error {
	return ErrUnknownZone
}

// RuleNotFoundError reports that no delivery/commission rule matched any
// specificity tier for a zone.
type RuleNotFoundError struct {
	ZoneID string
}

// NewRuleNotFoundError creates a RuleNotFoundError for the given zone.
func NewRuleNotFoundError(zoneID string) *RuleNotFoundError {
	return &RuleNotFoundError{ZoneID: zoneID}
}

func (e *RuleNotFoundError) Error() string {
	return sanitize(fmt.Sprintf("%s: zone is: %s", ErrRuleNotFound, e.ZoneID))
}

func (e *RuleNotFoundError) Unwrap() error {
	return ErrRuleNotFound
}

// MinimumOrderNotMetError reports a subtotal below a strict rule's minimum.
// MinOrderValue carries the threshold for client display.
type MinimumOrderNotMetError struct {
	MinOrderValue string
}

// NewMinimumOrderNotMetError creates a MinimumOrderNotMetError carrying the
// minimum order value the cart failed to reach.
func NewMinimumOrderNotMetError(minOrderValue string) *MinimumOrderNotMetError {
	return &MinimumOrderNotMetError{MinOrderValue: minOrderValue}
}

func (e *MinimumOrderNotMetError) Error() string {
	return sanitize(fmt.Sprintf("%s: minimum is: %s", ErrMinimumOrderNotMet, e.MinOrderValue))
}

func (e *MinimumOrderNotMetError) Unwrap() error {
	return ErrMinimumOrderNotMet
}

// OrderLockedError reports an attempted transition on an order whose final
// status is locked.
type OrderLockedError struct {
	OrderID string
	Status  string
}

// NewOrderLockedError creates an OrderLockedError for the given order and its
// terminal status.
func NewOrderLockedError(orderID, status string) *OrderLockedError {
	return &OrderLockedError{OrderID: orderID, Status: status}
}

func (e *OrderLockedError) Error() string {
	return sanitize(fmt.Sprintf("%s: order is: %s, status is: %s", ErrOrderLocked, e.OrderID, e.Status))
}

func (e *OrderLockedError) Unwrap() error {
	return ErrOrderLocked
}

// InvalidOtpError reports a delivery confirmation attempt with a wrong OTP.
type InvalidOtpError struct {
	OrderID string
}

// NewInvalidOtpError creates an InvalidOtpError for the given order.
func NewInvalidOtpError(orderID string) *InvalidOtpError {
	return &InvalidOtpError{OrderID: orderID}
}

func (e *InvalidOtpError) Error() string {
	return sanitize(fmt.Sprintf("%s: order is: %s", ErrInvalidOtp, e.OrderID))
}

func (e *InvalidOtpError) Unwrap() error {
	return ErrInvalidOtp
}

// CancellationWindowExpiredError reports a customer cancellation attempted
// after the allowed window.
type CancellationWindowExpiredError struct {
	OrderID       string
	WindowMinutes int
}

// NewCancellationWindowExpiredError creates a CancellationWindowExpiredError
// carrying the window length for client display.
func NewCancellationWindowExpiredError(orderID string, windowMinutes int) *CancellationWindowExpiredError {
	return &CancellationWindowExpiredError{OrderID: orderID, WindowMinutes: windowMinutes}
}

func (e *CancellationWindowExpiredError) Error() string {
	return sanitize(fmt.Sprintf("%s: order is: %s, window is: %d minutes",
		ErrCancellationWindowExpired, e.OrderID, e.WindowMinutes))
}

func (e *CancellationWindowExpiredError) Unwrap() error {
	return ErrCancellationWindowExpired
}

// UnauthorizedError reports an actor that is neither the order's customer, the
// owning shop's operator, nor an administrator.
type UnauthorizedError struct {
	ActorID string
}

// NewUnauthorizedError creates an UnauthorizedError for the given actor.
func NewUnauthorizedError(actorID string) *UnauthorizedError {
	return &UnauthorizedError{ActorID: actorID}
}

func (e *UnauthorizedError) Error() string {
	return sanitize(fmt.Sprintf("%s: actor is: %s", ErrUnauthorized, e.ActorID))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// VersionConflictError reports that an optimistic-locking update found a stale
// aggregate version. Callers should re-read and resubmit.
type VersionConflictError struct {
	OrderID string
}

// NewVersionConflictError creates a VersionConflictError for the given order.
func NewVersionConflictError(orderID string) *VersionConflictError {
	return &VersionConflictError{OrderID: orderID}
}

func (e *VersionConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: order is: %s", ErrVersionConflict, e.OrderID))
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
