package ports

import (
	"context"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus persists a status transition conditionally: the write only
	// applies when the stored status still equals previous. This re-validation
	// at write time is what serializes concurrent transitions on the same
	// order — no two transitions can both apply from the same pre-state.
	// Returns an InvalidTransitionError when the condition no longer holds.
	UpdateStatus(ctx context.Context, aggregate *order.Order, previous order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
