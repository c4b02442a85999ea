// Package store provides the Store aggregate. A store is the selling side of an
// order: it owns surplus items, is operated by exactly one operator account, and
// is the recipient of store-facing order notifications.
package store

import (
	"errors"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/pkg/errs"
)

// ErrStoreIsNotConstructed is returned when a Store instance was not created
// through the NewStore or RestoreStore factory methods.
var ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore or RestoreStore")

// Store is the aggregate root for a selling store.
//
// Invariants:
//   - Must have valid unique and operator identifiers
//   - Must have a non-empty name
//   - The operator is the only account authorized to act for the store
type Store struct {
	// id is the unique identifier for the store
	id kernel.UUID

	// operatorID references the account operating this store
	operatorID kernel.UUID

	// name is the display name of the store
	name string

	// isConstructed ensures the store was created via a factory method
	isConstructed bool
}

// NewStore creates a validated Store.
func NewStore(id kernel.UUID, operatorID kernel.UUID, name string) (*Store, error) {
	s := &Store{
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOperatorID(operatorID),
		s.setName(name),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStore reconstructs a Store from persistence.
func RestoreStore(id kernel.UUID, operatorID kernel.UUID, name string) (*Store, error) {
	return NewStore(id, operatorID, name)
}

// Validate ensures the Store instance was properly constructed.
func (s *Store) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStoreIsNotConstructed
	}

	return nil
}

// ID returns the store's unique identifier.
func (s *Store) ID() kernel.UUID {
	return s.id
}

// OperatorID returns the identifier of the account operating this store.
func (s *Store) OperatorID() kernel.UUID {
	return s.operatorID
}

// Name returns the store's display name.
func (s *Store) Name() string {
	return s.name
}

// IsOperatedBy reports whether the given account operates this store.
func (s *Store) IsOperatedBy(operatorID kernel.UUID) bool {
	return s.operatorID.IsEqual(operatorID)
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}
	s.operatorID = operatorID
	return nil
}

func (s *Store) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}
