// Package kernel provides shared value objects used across the domain model:
//
//   - UUID: validated entity identifier wrapping github.com/google/uuid
//   - Money: non-negative decimal currency amount with two-place semantics
//   - Percent: rate constrained to [0, 100]
//
// Kernel types are immutable and safe for concurrent use. They enforce their
// invariants at construction time so downstream code never needs to re-check
// sign or range constraints.
package kernel
