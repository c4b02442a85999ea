// Package inventoryrepo implements the inventory port over the items table.
package inventoryrepo

import "github.com/google/uuid"

// ItemDTO represents a store's listed item with its remaining stock.
type ItemDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID uuid.UUID `gorm:"type:uuid;index"`
	Name    string
	Price   int64
	Stock   int
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "items"
}
