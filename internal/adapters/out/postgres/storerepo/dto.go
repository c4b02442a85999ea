// Package storerepo provides data transfer objects and mapping functions for store persistence.
package storerepo

import (
	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/store"

	"github.com/google/uuid"
)

// StoreDTO represents the database structure for persisting store aggregates.
type StoreDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OperatorID uuid.UUID `gorm:"type:uuid;index"`
	Name       string
}

// TableName specifies the database table name for store entities.
func (StoreDTO) TableName() string {
	return "stores"
}

func fromDomain(aggregate *store.Store) StoreDTO {
	return StoreDTO{
		ID:         aggregate.ID().Bytes(),
		OperatorID: aggregate.OperatorID().Bytes(),
		Name:       aggregate.Name(),
	}
}

func toDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	operatorID, err := kernel.UUIDFromBytes(dto.OperatorID[:])
	if err != nil {
		return nil, err
	}

	return store.RestoreStore(id, operatorID, dto.Name)
}
