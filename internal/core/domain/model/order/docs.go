// Package order provides the Order aggregate root for the marketplace order
// engine: line-item snapshots, the frozen pricing breakdown, the immutable
// revenue log, and the status lifecycle.
//
// The package includes:
//   - Order: the aggregate root, created once and mutated only via transitions
//   - Item: a product snapshot at order time (price never changes afterwards)
//   - RevenueLog: the per-order record of the shop/platform money split
//   - Status: an explicit transition-table state machine
//   - Actor / Role: caller identity for authorization and cancellation records
//   - AuditNote: append-only history of administrator overrides
//
// Key business rules:
//   - pending -> accepted -> out_for_delivery -> delivered | failed; cancelled
//     is reachable from any non-terminal status
//   - terminal statuses lock the order; further transitions fail
//   - delivery confirmation requires the OTP minted at dispatch
//   - customers may cancel only within a window after creation
package order
