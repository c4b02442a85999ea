// Package notificationrepo provides data transfer objects and mapping functions
// for the append-only notification log.
package notificationrepo

import (
	"time"

	"lastbite/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for the notification log.
// Both party columns are indexed; the log is queried per recipient.
type NotificationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	StoreID    uuid.UUID `gorm:"type:uuid;index"`
	Content    string
	CreatedAt  time.Time
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(entity *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         entity.ID().Bytes(),
		OrderID:    entity.OrderID().Bytes(),
		CustomerID: entity.CustomerID().Bytes(),
		StoreID:    entity.StoreID().Bytes(),
		Content:    entity.Content(),
		CreatedAt:  entity.CreatedAt(),
	}
}
