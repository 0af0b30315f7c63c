package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is stored together with its items, revenue log and audit notes;
// Add and Update persist the whole aggregate atomically within the
// surrounding unit of work.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Uses optimistic concurrency control: the write succeeds only if the
	// stored version still matches the version the aggregate was loaded
	// with. Returns VersionConflictError when another writer got there
	// first. On success the aggregate's version is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no order with the id exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
