// Package order provides domain entities and business logic for order lifecycle
// management. It implements the Order aggregate root and the status state
// machine that governs which actor may move an order between which states.
//
// The package includes:
//   - Order: the aggregate root holding identity, order lines, and lifecycle state
//   - Status: a state machine enforcing the allowed transitions
//   - Role: the actor roles (customer, store) able to drive transitions
//
// Key business rules:
//   - Orders start in Received when a customer places them against a store
//   - Received -> Confirmed and Confirmed -> Completed are store-only transitions
//   - Cancellation is allowed from Received and Confirmed by either role
//   - Completed and Canceled are terminal; no transition ever leaves them
//   - Status never reverts and never skips a state
//
// The package follows Domain-Driven Design principles: private fields,
// constructor validation, and a single mutation path through ChangeStatus.
package order
