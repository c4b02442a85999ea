package order

import (
	"fmt"

	"lastbite/internal/pkg/errs"
)

// Role identifies which side of an order an actor is acting for.
// Transitions are authorized per role: some edges are store-only, cancellation
// is open to both parties.
type Role int

const (
	// RoleUnknown represents an unresolved role. This value (0) helps catch
	// uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer is the customer who placed the order.
	RoleCustomer

	// RoleStore is the operator of the store the order targets.
	RoleStore
)

// String returns the wire-stable lowercase role name. The same value is used
// as the role component of subscriber keys and event ids, so it must not change.
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleStore:
		return "store"
	default:
		return "unknown"
	}
}

// Validate checks that the role is one of the two known actor roles.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleStore {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// RoleFromString parses a wire role name ("customer" or "store").
func RoleFromString(s string) (Role, error) {
	switch s {
	case "customer":
		return RoleCustomer, nil
	case "store":
		return RoleStore, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

// Status represents the lifecycle state of an order.
// It implements a state machine with role-gated transitions:
//
//	RECEIVED ──(store)──> CONFIRMED ──(store)──> COMPLETED
//	    │                     │
//	    └──(store|customer)───┴──> CANCELED
//
// COMPLETED and CANCELED are terminal. Every other (state, target) pair is
// rejected, including re-requesting the current state, skipping a level, and
// reverting.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status when a customer places an order.
	// The store has not yet acknowledged it.
	Received

	// Confirmed indicates the store accepted the order and is preparing it.
	Confirmed

	// Completed indicates the customer picked the order up. Terminal.
	Completed

	// Canceled indicates either party withdrew the order. Terminal.
	Canceled
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Received:  "RECEIVED",
		Confirmed: "CONFIRMED",
		Completed: "COMPLETED",
		Canceled:  "CANCELED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:  "RECEIVED",
		Confirmed: "CONFIRMED",
		Completed: "COMPLETED",
		Canceled:  "CANCELED",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Received, Confirmed, Completed, Canceled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the uppercase wire name of the status ("RECEIVED", ...).
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses an uppercase wire status name.
// Returns an error for names that do not map to a valid status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// ChangeTo validates the transition from the current status to target for the
// given role and returns the resulting status.
//
// Allowed edges:
//   - Received -> Confirmed   (store only)
//   - Received -> Canceled    (store or customer)
//   - Confirmed -> Completed  (store only)
//   - Confirmed -> Canceled   (store or customer)
//
// Everything else fails with an InvalidTransitionError, including same-state
// requests, skips (Received -> Completed), reverts, and any transition out of
// a terminal state.
func (s Status) ChangeTo(target Status, role Role) (Status, error) {
	if err := role.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	switch target {
	case Confirmed:
		if s == Received && role == RoleStore {
			return Confirmed, nil
		}
	case Completed:
		if s == Confirmed && role == RoleStore {
			return Completed, nil
		}
	case Canceled:
		if s == Received || s == Confirmed {
			return Canceled, nil
		}
	}

	return Unknown, errs.NewInvalidTransitionErrorWithCause(
		s.String(),
		target.String(),
		fmt.Errorf("transition is not permitted for role %s", role),
	)
}
