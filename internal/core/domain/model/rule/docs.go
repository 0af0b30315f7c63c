// Package rule provides the DeliveryRule aggregate: the per-scope delivery-fee
// and commission configuration resolved during pricing.
//
// The package includes:
//   - DeliveryRule: scope (zone, optional category, optional shop), fee split,
//     commission rate, and the small-order policy fields
//   - FeeAssessment: the outcome of validating a cart subtotal against a rule
//
// Key business rules:
//   - The delivery fee always equals the shop share plus the platform share
//   - A rule without a small-order fee is strict: carts below the minimum are blocked
//   - Small orders are charged the elevated fee, split in the normal shares' ratio
//     (50/50 when the normal split sums to zero)
package rule
