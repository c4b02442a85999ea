package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventory implements the Inventory port using GORM.
//
// Deduction is a single conditional update so that concurrent orders for the
// same item never oversell: the stock check and the decrement happen in one
// statement.
type GormInventory struct {
	db *gorm.DB
}

// NewGormInventory creates a new GORM inventory adapter.
func NewGormInventory(db *gorm.DB) *GormInventory {
	return &GormInventory{db: db}
}

// Deduct atomically reserves the given quantity of an item.
// Fails with errs.ErrObjectNotFound for unknown items and with
// errs.ErrValueIsOutOfRange when the remaining stock is insufficient.
func (i *GormInventory) Deduct(ctx context.Context, itemID kernel.UUID, quantity int) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	result := i.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ? AND stock >= ?", itemID.Bytes(), quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var dto ItemDTO
	if err := i.db.WithContext(ctx).Select("stock").First(&dto, "id = ?", itemID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("item", itemID.String())
		}
		return err
	}

	return errs.NewValueIsOutOfRangeErrorWithCause(
		"quantity", quantity, 1, dto.Stock,
		fmt.Errorf("item %s has %d left", itemID, dto.Stock),
	)
}
