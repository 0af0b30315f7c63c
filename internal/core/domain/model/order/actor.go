package order

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Role classifies who is acting on an order. Used for transition
// authorization and recorded as cancelled_by on cancellation.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleShop     Role = "shop"
	RoleAdmin    Role = "admin"
)

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleShop, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("actor role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// Actor identifies the caller of a status transition: a user id together with
// the role they act under.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates a validated Actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the acting user's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the role the actor acts under.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the actor acts as an administrator.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}
