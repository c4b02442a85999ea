package queries

import (
	"context"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler retrieves a party's notification log from the
// database. Customers see notifications addressed to them as customers,
// store operators those addressed to their store.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for notification log queries.
// Requires a GORM database connection for query execution.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the query to retrieve the notification log, newest first.
// An unknown recipient simply yields an empty list.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	recipientColumn := "customer_id"
	if query.Role() == order.RoleStore {
		recipientColumn = "store_id"
	}

	notifications := make([]GetNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			content,
			created_at
		FROM notifications
		WHERE `+recipientColumn+` = ?
		ORDER BY created_at DESC, id
	`, query.RecipientID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, orderID uuid.UUID
		var content string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&content,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		notificationOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		notifications = append(notifications, GetNotificationsQueryResponse{
			ID:        notificationID,
			OrderID:   notificationOrderID,
			Content:   content,
			CreatedAt: createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
