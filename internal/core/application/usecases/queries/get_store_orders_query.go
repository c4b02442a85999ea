// Package queries contains read-only operations over the persisted state.
// Implements the Query side of the CQRS architecture: handlers read through
// the database directly and never mutate aggregates.
package queries

import (
	"errors"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/pkg/guard"
)

var ErrGetStoreOrdersQueryIsNotConstructed = errors.New(
	"GetStoreOrdersQuery must be created via NewGetStoreOrdersQuery constructor",
)

// GetStoreOrdersQuery retrieves the orders placed with a store.
// Only the store's operator may run it; the handler enforces ownership.
//
// Example:
//
//	query, err := NewGetStoreOrdersQuery(storeID, operatorID)
//	if err != nil {
//	    return fmt.Errorf("invalid query: %w", err)
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetStoreOrdersQuery struct {
	storeID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStoreOrdersQuery creates a query for a store's order list.
// Validates both identifiers.
func NewGetStoreOrdersQuery(storeID, requesterID kernel.UUID) (GetStoreOrdersQuery, error) {
	if err := errors.Join(storeID.Validate(), requesterID.Validate()); err != nil {
		return GetStoreOrdersQuery{}, err
	}

	return GetStoreOrdersQuery{
		storeID:     storeID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStoreOrdersQueryIsNotConstructed if validation fails.
func (q GetStoreOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStoreOrdersQueryIsNotConstructed)
}

// StoreID returns the store whose orders are requested.
func (q GetStoreOrdersQuery) StoreID() kernel.UUID {
	return q.storeID
}

// RequesterID returns the party requesting the list.
func (q GetStoreOrdersQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// GetStoreOrdersQueryResponse represents one order placed with the store.
type GetStoreOrdersQueryResponse struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	TotalPrice  int64
	ArrivalTime time.Time
	Demand      string
	Status      order.Status
}
