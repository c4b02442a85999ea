package ports

import (
	"context"

	"lastbite/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for the append-only
// notification log. Notifications are immutable once created; there is no
// update or delete operation.
type NotificationRepository interface {
	// Add persists a new notification record.
	Add(ctx context.Context, aggregate *notification.Notification) error
}
