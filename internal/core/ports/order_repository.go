// Package ports defines the contracts between the cafeteria core and its adapters.
// Command handlers depend only on these interfaces, which keeps them testable
// with mocks and independent of Postgres, Redis or RabbitMQ.
package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted, so there is no Remove.
type OrderRepository interface {
	// Add persists a newly placed order together with its lines.
	// A clash on the order token is reported as errs.ConflictError with ParamName "token".
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends,
	// so concurrent transitions of the same order are applied one after another.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Count returns the number of stored orders.
	Count(ctx context.Context) (int64, error)
}
