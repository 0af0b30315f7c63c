// Package errs provides standardized error types for the marketplace order engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Two families of errors live here:
//
//   - Generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError) used by
//     value objects and commands during construction.
//   - Checkout and lifecycle domain errors (RuleNotFoundError, MinimumOrderNotMetError,
//     OrderLockedError, InvalidOtpError, CancellationWindowExpiredError,
//     UnauthorizedError, VersionConflictError) that are surfaced verbatim to clients
//     as actionable failures.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrOrderLocked)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classification works
//
// The HTTP adapter relies on the sentinels to translate failures into response
// classes without inspecting error strings.
package errs
