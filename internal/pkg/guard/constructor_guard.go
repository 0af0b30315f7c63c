// Package guard implements the constructor-guard pattern used by commands and
// value objects to detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is
// provided for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated constructor.
// Embed it as a private field and set it with NewConstructorGuard; a zero-value
// struct then fails Validate, which keeps invariants enforced by constructors
// from being bypassed by direct struct literals.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guard was set by NewConstructorGuard.
// For a zero-value guard it returns notConstructed, or
// ErrDefaultConstructorGuard when notConstructed is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.isConstructed {
		return nil
	}
	if notConstructed != nil {
		return notConstructed
	}
	return ErrDefaultConstructorGuard
}
