// Package notification provides the Notification entity — the durable,
// append-only record of an order status change — together with the message
// builder and the audience rule that decides which party is informed of which
// transition.
package notification

import (
	"errors"
	"fmt"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification instance was
// not created through the NewNotification or RestoreNotification factory methods.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification",
)

// Notification records one order status change for later retrieval.
// It references the order, the customer, and the store so queries can filter
// "my notifications" for either party. Immutable once created; live delivery
// is handled independently by the event stream.
type Notification struct {
	// id is the unique identifier for the notification
	id kernel.UUID

	// orderID references the order whose status changed
	orderID kernel.UUID

	// customerID references the order's customer
	customerID kernel.UUID

	// storeID references the order's store
	storeID kernel.UUID

	// content is the human-readable message describing the transition
	content string

	// createdAt is the creation timestamp
	createdAt time.Time

	// isConstructed ensures the notification was created via a factory method
	isConstructed bool
}

// NewNotification creates a notification for the given order with the given
// content, stamped with the current time.
func NewNotification(id kernel.UUID, o *order.Order, content string) (*Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	return newNotification(id, o.ID(), o.CustomerID(), o.StoreID(), content, time.Now())
}

// RestoreNotification reconstructs a Notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	content string,
	createdAt time.Time,
) (*Notification, error) {
	return newNotification(id, orderID, customerID, storeID, content, createdAt)
}

func newNotification(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	content string,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		customerID.Validate(),
		storeID.Validate(),
	); err != nil {
		return nil, err
	}

	if content == "" {
		return nil, errs.NewValueIsRequiredError("content")
	}

	return &Notification{
		id:            id,
		orderID:       orderID,
		customerID:    customerID,
		storeID:       storeID,
		content:       content,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Notification instance was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}

	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// OrderID returns the referenced order's identifier.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// CustomerID returns the referenced customer's identifier.
func (n *Notification) CustomerID() kernel.UUID {
	return n.customerID
}

// StoreID returns the referenced store's identifier.
func (n *Notification) StoreID() kernel.UUID {
	return n.storeID
}

// Content returns the human-readable message.
func (n *Notification) Content() string {
	return n.content
}

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MessageFor builds the deterministic, locale-fixed message describing a
// transition of the given order to the given status. The text depends only on
// (status, order id), so dispatching the same transition twice produces the
// same message.
func MessageFor(status order.Status, o *order.Order) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}

	switch status {
	case order.Received:
		return fmt.Sprintf("A new order %s has been placed.", o.ID()), nil
	case order.Confirmed:
		return fmt.Sprintf("Order %s has been confirmed by the store.", o.ID()), nil
	case order.Completed:
		return fmt.Sprintf("Order %s has been completed.", o.ID()), nil
	case order.Canceled:
		return fmt.Sprintf("Order %s has been canceled.", o.ID()), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d has no notification message", status))
	}
}

// AudienceFor returns the roles that must be notified of a transition to the
// given status. The mapping is fixed and exhaustive over the four statuses:
//
//	RECEIVED  -> store
//	CONFIRMED -> customer
//	COMPLETED -> customer, store
//	CANCELED  -> store, customer
func AudienceFor(status order.Status) []order.Role {
	switch status {
	case order.Received:
		return []order.Role{order.RoleStore}
	case order.Confirmed:
		return []order.Role{order.RoleCustomer}
	case order.Completed:
		return []order.Role{order.RoleCustomer, order.RoleStore}
	case order.Canceled:
		return []order.Role{order.RoleStore, order.RoleCustomer}
	default:
		return nil
	}
}

// RecipientID maps a role in the audience to the concrete party on the order.
func RecipientID(role order.Role, o *order.Order) kernel.UUID {
	if role == order.RoleStore {
		return o.StoreID()
	}
	return o.CustomerID()
}
