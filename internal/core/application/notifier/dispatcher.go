// Package notifier contains the application services around real-time order
// notifications: the Dispatcher, which fans a confirmed status transition out
// to the interested parties, and the StreamService, which opens long-lived
// subscriber streams and replays missed events on reconnect.
package notifier

import (
	"context"
	"log/slog"

	"lastbite/internal/core/application/eventstream"
	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/notification"
	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/core/ports"
	"lastbite/internal/pkg/metrics"
)

// NotificationUoW manages transactions for notification persistence.
type NotificationUoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	NotificationRepository() ports.NotificationRepository
}

// NotificationUoWFactory creates new notification unit of work instances.
type NotificationUoWFactory interface {
	Create() NotificationUoW
}

// Dispatcher turns a successful order status transition into notifications:
// it persists a durable record and pushes an event to every live channel of
// every recipient in the transition's audience.
//
// Dispatch is invoked only after the state machine has applied and persisted
// the transition. Its own failures never propagate back into the transition:
// a persistence error is reported to the caller for logging, and per-channel
// push failures are recovered locally by unregistering the failed channel.
type Dispatcher struct {
	uowFactory NotificationUoWFactory
	registry   *eventstream.Registry
	ids        *eventstream.IDGenerator
	logger     *slog.Logger
}

// NewDispatcher creates a dispatcher bound to the shared registry and id
// generator.
func NewDispatcher(
	uowFactory NotificationUoWFactory,
	registry *eventstream.Registry,
	ids *eventstream.IDGenerator,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		uowFactory: uowFactory,
		registry:   registry,
		ids:        ids,
		logger:     logger.With("component", "notification_dispatcher"),
	}
}

// EventPayload is the JSON shape pushed to subscriber channels for a real
// notification.
type EventPayload struct {
	NotificationID string `json:"notificationId"`
	OrderID        string `json:"orderId"`
	Content        string `json:"content"`
	CreatedAt      string `json:"createdAt"`
}

// Dispatch persists a Notification for the transition of o to newStatus and
// broadcasts it to the audience of that status.
//
// Audience (fixed): RECEIVED -> store, CONFIRMED -> customer,
// COMPLETED -> customer+store, CANCELED -> store+customer.
//
// For each recipient one event id is issued and cached once under the
// recipient's subscriber key, then pushed to every live channel registered
// for that key. A push failure unregisters only the failing channel; sibling
// channels and the other recipient still receive the event.
func (d *Dispatcher) Dispatch(ctx context.Context, o *order.Order, newStatus order.Status) error {
	message, err := notification.MessageFor(newStatus, o)
	if err != nil {
		return err
	}

	n, err := notification.NewNotification(kernel.NewUUID(), o, message)
	if err != nil {
		return err
	}

	if err = d.persist(ctx, n); err != nil {
		return err
	}

	for _, role := range notification.AudienceFor(newStatus) {
		recipient := notification.RecipientID(role, o)
		d.broadcast(ctx, eventstream.SubscriberKey(role, recipient), n)
	}

	metrics.NotificationsDispatchedTotal.Inc()
	return nil
}

func (d *Dispatcher) persist(ctx context.Context, n *notification.Notification) error {
	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().Add(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// broadcast caches the event under the recipient's key and pushes it to all
// of the recipient's live channels.
func (d *Dispatcher) broadcast(ctx context.Context, key string, n *notification.Notification) {
	ev := eventstream.Event{
		ID:   d.ids.Next(key),
		Name: eventstream.EventNameNotification,
		Data: EventPayload{
			NotificationID: n.ID().String(),
			OrderID:        n.OrderID().String(),
			Content:        n.Content(),
			CreatedAt:      n.CreatedAt().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		},
	}

	d.registry.CacheEvent(ev)

	for _, ref := range d.registry.ChannelsFor(key) {
		if err := ref.Stream.Send(ev); err != nil {
			// Failures are isolated per channel: drop the dead channel and
			// keep delivering to its siblings.
			d.registry.Unregister(ref.ID)
			ref.Stream.Close()
			metrics.DeliveryFailuresTotal.Inc()
			d.logger.WarnContext(ctx, "dropping subscriber channel after failed push",
				"channel", ref.ID, "error", err)
		}
	}
}
