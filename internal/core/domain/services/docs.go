// Package services contains stateless domain services for order pricing:
// delivery rule resolution by specificity, discount selection per creator
// type, and the pricing engine that composes both into a full financial
// breakdown. Services operate on pre-fetched candidate sets and perform no
// I/O themselves.
package services
