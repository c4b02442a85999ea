package queries

import (
	"errors"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves the persisted notification log for one
// party under one role. The log is the durable fallback when the in-memory
// replay cache no longer covers a disconnect window.
//
// Example:
//
//	query, err := NewGetNotificationsQuery(customerID, order.RoleCustomer)
//	if err != nil {
//	    return fmt.Errorf("invalid query: %w", err)
//	}
//
//	notifications, err := handler.Handle(ctx, query)
type GetNotificationsQuery struct {
	recipientID kernel.UUID
	role        order.Role

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a query for a party's notification log.
// Validates the identifier and the role.
func NewGetNotificationsQuery(recipientID kernel.UUID, role order.Role) (GetNotificationsQuery, error) {
	if err := errors.Join(recipientID.Validate(), role.Validate()); err != nil {
		return GetNotificationsQuery{}, err
	}

	return GetNotificationsQuery{
		recipientID: recipientID,
		role:        role,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetNotificationsQueryIsNotConstructed if validation fails.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// RecipientID returns the party whose notifications are requested.
func (q GetNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

// Role returns the role under which the party receives notifications.
func (q GetNotificationsQuery) Role() order.Role {
	return q.role
}

// GetNotificationsQueryResponse represents one persisted notification.
type GetNotificationsQueryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Content   string
	CreatedAt time.Time
}
