package order

import (
	"errors"
	"fmt"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNoOrderLines is returned when an order is created without any lines.
	ErrNoOrderLines = errors.New("order must contain at least one line")
)

// Line is a value object representing one position of an order:
// an item reference, the ordered quantity, and the unit price in minor
// currency units. Lines are immutable once attached to an order.
type Line struct {
	itemID    kernel.UUID
	quantity  int
	unitPrice int64
}

// NewLine creates a validated order line.
// The item id must be valid, quantity positive, and unit price non-negative.
func NewLine(itemID kernel.UUID, quantity int, unitPrice int64) (Line, error) {
	if err := itemID.Validate(); err != nil {
		return Line{}, err
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return Line{itemID: itemID, quantity: quantity, unitPrice: unitPrice}, nil
}

// ItemID returns the referenced item's identifier.
func (l Line) ItemID() kernel.UUID {
	return l.itemID
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the price per unit in minor currency units.
func (l Line) UnitPrice() int64 {
	return l.unitPrice
}

// Subtotal returns quantity times unit price.
func (l Line) Subtotal() int64 {
	return int64(l.quantity) * l.unitPrice
}

// Order is the aggregate root that manages an order's identity, contents, and
// lifecycle. It references the submitting customer and the target store by id;
// those entities are owned elsewhere.
//
// Order follows these invariants:
//   - Must have valid unique, customer, and store identifiers
//   - Must contain at least one order line
//   - Status only ever moves forward along the allowed edges; it never reverts
//     and never skips (see Status.ChangeTo)
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; ChangeStatus is the
// only mutation path after construction.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the customer who placed the order
	customerID kernel.UUID

	// storeID references the store the order targets
	storeID kernel.UUID

	// lines are the ordered item positions
	lines []Line

	// totalPrice is the sum of line subtotals in minor currency units
	totalPrice int64

	// arrivalTime is when the customer intends to pick the order up
	arrivalTime time.Time

	// demand is the customer's free-text request attached to the order
	demand string

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Received status.
// The total price is computed from the line subtotals.
//
// Parameters:
//   - id: unique identifier for the order (must be valid UUID)
//   - customerID: the submitting customer (must be valid UUID)
//   - storeID: the target store (must be valid UUID)
//   - lines: at least one validated order line
//   - arrivalTime: intended pickup time
//   - demand: free-text request, may be empty
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	lines []Line,
	arrivalTime time.Time,
	demand string,
) (*Order, error) {
	o := &Order{
		status:        Received,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.arrivalTime = arrivalTime
	o.demand = demand
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with an explicit status
// and total price. It validates identifiers and the status value but does not
// re-run the transition rules; the stored state is taken as authoritative.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	lines []Line,
	totalPrice int64,
	arrivalTime time.Time,
	demand string,
	status Status,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.totalPrice = totalPrice
	o.arrivalTime = arrivalTime
	o.demand = demand
	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Call when reconstructing orders from external input.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// StoreID returns the identifier of the store the order targets.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// TotalPrice returns the order total in minor currency units.
func (o *Order) TotalPrice() int64 {
	return o.totalPrice
}

// ArrivalTime returns the intended pickup time.
func (o *Order) ArrivalTime() time.Time {
	return o.arrivalTime
}

// Demand returns the customer's free-text request.
func (o *Order) Demand() string {
	return o.demand
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// IsPlacedBy reports whether the given customer placed this order.
func (o *Order) IsPlacedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// ChangeStatus moves the order to target on behalf of the given role.
//
// The transition is validated against the allowed-edge table in Status.ChangeTo;
// on success the status is mutated in place. Authorization (resolving a
// requester to a role) happens before this call — the aggregate only enforces
// which role may use which edge.
//
// Returns an InvalidTransitionError when the edge is not permitted for the
// role or from the current state.
func (o *Order) ChangeStatus(role Role, target Status) error {
	newStatus, err := o.status.ChangeTo(target, role)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the customer reference.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setStoreID validates and sets the store reference.
func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

// setLines validates the lines and computes the order total.
func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrNoOrderLines
	}

	var total int64
	for _, line := range lines {
		if err := line.ItemID().Validate(); err != nil {
			return err
		}
		total += line.Subtotal()
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	o.totalPrice = total
	return nil
}
