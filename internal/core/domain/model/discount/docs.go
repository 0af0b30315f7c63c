// Package discount provides the DiscountRule aggregate: shop- and
// platform-funded discounts scoped to the whole marketplace, a zone, a shop,
// or a single product, each with an optional validity window, minimum order
// value, and (for percentage rules) a cap.
//
// Selection across candidate rules is the job of services.DiscountResolver;
// this package only answers per-rule questions: is the rule live, does the
// cart qualify, and how much would it take off a given applicable amount.
package discount
