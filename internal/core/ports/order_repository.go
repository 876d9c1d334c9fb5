package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes are conditional on the status and version the caller read, which
// linearises concurrent commands on the same order without row locks. A
// successful write bumps the aggregate's version.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items, assignment and split.
	// Returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update writes the order only if its stored status is still expected
	// and nobody wrote it since it was read. A lost race is reported as
	// order.ErrIllegalTransition when the status moved on, and as
	// errs.ErrInvalidState when a write left the status unchanged.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Assign writes a freshly assigned order only if the stored row is
	// still in expected status and has no assignment. A lost race is
	// reported as order.ErrAlreadyAssigned.
	Assign(ctx context.Context, aggregate *order.Order, expected order.Status) error
}
