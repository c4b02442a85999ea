package ports

import (
	"context"

	"lastbite/internal/core/domain/model/kernel"
)

// Inventory is the outbound port to the stock bookkeeping collaborator.
// The core never adjusts stock itself; it only requests deductions while a
// customer places an order. Implementations decide their own consistency
// model — a failed deduction aborts order creation, nothing more.
type Inventory interface {
	// Deduct reserves the given quantity of an item.
	Deduct(ctx context.Context, itemID kernel.UUID, quantity int) error
}
