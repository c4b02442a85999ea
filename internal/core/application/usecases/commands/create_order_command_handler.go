package commands

import (
	"context"
	"log/slog"

	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Reserves stock for every requested line, persists the order in RECEIVED
// status, and notifies the store.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	inventory  ports.Inventory
	notifier   Notifier
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence, an inventory
// port for stock reservation, and a notifier for the RECEIVED dispatch.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	inventory ports.Inventory,
	notifier Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the order placement command.
// Stock is deducted line by line before the order is persisted; a failed
// deduction aborts the whole placement. The store is notified only after the
// transaction committed, and a notification failure does not undo the order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	for _, line := range cmd.Lines() {
		if err := h.inventory.Deduct(ctx, line.ItemID(), line.Quantity()); err != nil {
			return err
		}
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.StoreID(),
		cmd.Lines(),
		cmd.ArrivalTime(),
		cmd.Demand(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.Dispatch(ctx, newOrder, order.Received); err != nil {
		h.logger.WarnContext(ctx, "order placed but notification dispatch failed",
			"order", newOrder.ID(), "error", err)
	}

	return nil
}
