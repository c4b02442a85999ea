package commands

import (
	"errors"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
	ErrArrivalTimeIsRequired = errors.New("arrival time is required")
)

// CreateOrderCommand represents a customer's request to place an order with a
// store. Encapsulates the target store, the requested items, and the pickup
// arrangements.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, storeID, lines, arrival, "no onions")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, inventory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	storeID     kernel.UUID
	lines       []order.Line
	arrivalTime time.Time
	demand      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates all identifiers, requires at least one line and an arrival time.
// The demand text is optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	lines []order.Line,
	arrivalTime time.Time,
	demand string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		demand: demand,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setStoreID(storeID),
		orderCommand.setLines(lines),
		orderCommand.setArrivalTime(arrivalTime),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the submitting customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// StoreID returns the identifier of the target store.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Lines returns the requested items.
func (c CreateOrderCommand) Lines() []order.Line {
	return c.lines
}

// ArrivalTime returns the intended pickup time.
func (c CreateOrderCommand) ArrivalTime() time.Time {
	return c.arrivalTime
}

// Demand returns the optional free-text request.
func (c CreateOrderCommand) Demand() string {
	return c.demand
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	c.lines = lines
	return nil
}

func (c *CreateOrderCommand) setArrivalTime(arrivalTime time.Time) error {
	if arrivalTime.IsZero() {
		return ErrArrivalTimeIsRequired
	}

	c.arrivalTime = arrivalTime
	return nil
}
