package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Transitions are driven by an explicit table rather than scattered
// conditionals, so an invalid transition is a data-driven check:
//
//	pending ──> accepted ──> out_for_delivery ──┬──> delivered
//	   │            │                │          └──> failed
//	   └────────────┴────────────────┴──> cancelled
//
// delivered, failed, and cancelled are terminal; reaching one of them locks
// the order's final status.
type Status string

const (
	// StatusPending is the initial status set at order creation.
	StatusPending Status = "pending"

	// StatusAccepted means the shop has confirmed the order.
	StatusAccepted Status = "accepted"

	// StatusOutForDelivery means the order left the shop; a delivery OTP is
	// minted when entering this status.
	StatusOutForDelivery Status = "out_for_delivery"

	// StatusDelivered is terminal: delivery confirmed by OTP.
	StatusDelivered Status = "delivered"

	// StatusFailed is terminal: delivery attempted and failed.
	StatusFailed Status = "failed"

	// StatusCancelled is terminal: cancelled by customer, shop, or admin.
	StatusCancelled Status = "cancelled"
)

// transitionTable maps each non-terminal status to the set of statuses it may
// move to. Terminal statuses have no row.
func transitionTable() map[Status]map[Status]bool {
	return map[Status]map[Status]bool{
		StatusPending: {
			StatusAccepted:  true,
			StatusCancelled: true,
		},
		StatusAccepted: {
			StatusOutForDelivery: true,
			StatusCancelled:      true,
		},
		StatusOutForDelivery: {
			StatusDelivered: true,
			StatusFailed:    true,
			StatusCancelled: true,
		},
	}
}

// validStatuses returns the set of statuses accepted from external sources.
func validStatuses() map[Status]bool {
	return map[Status]bool{
		StatusPending:        true,
		StatusAccepted:       true,
		StatusOutForDelivery: true,
		StatusDelivered:      true,
		StatusFailed:         true,
		StatusCancelled:      true,
	}
}

// Validate checks that the status is one of the known values. Used when
// parsing statuses from requests or reconstructing orders from persistence.
func (s Status) Validate() error {
	if !validStatuses()[s] {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// String returns the persisted representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status locks the order's final state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the transition table allows moving from s
// to next.
func (s Status) CanTransitionTo(next Status) bool {
	return transitionTable()[s][next]
}

// TransitionTo validates the move from s to next against the transition table.
// Returns the new status on success.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return "", errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("%s cannot move to %s", s, next))
	}
	return next, nil
}
