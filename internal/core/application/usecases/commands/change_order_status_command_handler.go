package commands

import (
	"context"
	"log/slog"

	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies status transitions to orders.
//
// The handler resolves who the requester is relative to the order (the
// customer who placed it or the operator of the target store), asks the
// aggregate to apply the transition under that role, and persists the result
// with a compare-and-set on the previous status so concurrent transitions
// serialize to exactly one winner. The notification dispatch happens after
// commit and never rolls the transition back.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	notifier Notifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the status change command.
//
// Fails with errs.ErrObjectNotFound when the order does not exist, with
// errs.ErrUnauthorized when the requester is neither party to the order, and
// with errs.ErrInvalidTransition when the transition is not in the allowed
// set for the current status and the acting role, or when a concurrent
// transition won the race.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	targetOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	role, err := h.resolveRole(ctx, uow, targetOrder, cmd)
	if err != nil {
		return err
	}

	previous := targetOrder.Status()
	if err = targetOrder.ChangeStatus(role, cmd.Target()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateStatus(ctx, targetOrder, previous); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.Dispatch(ctx, targetOrder, cmd.Target()); err != nil {
		h.logger.WarnContext(ctx, "status changed but notification dispatch failed",
			"order", targetOrder.ID(), "status", cmd.Target(), "error", err)
	}

	return nil
}

// resolveRole determines under which role the requester acts on the order.
// The customer who placed the order acts as customer; the operator of the
// order's store acts as store. Anyone else is rejected.
func (h *ChangeOrderStatusCommandHandler) resolveRole(
	ctx context.Context,
	uow UoW,
	targetOrder *order.Order,
	cmd ChangeOrderStatusCommand,
) (order.Role, error) {
	if targetOrder.IsPlacedBy(cmd.RequesterID()) {
		return order.RoleCustomer, nil
	}

	orderStore, err := uow.StoreRepository().Get(ctx, targetOrder.StoreID())
	if err != nil {
		return order.RoleUnknown, err
	}

	if orderStore.IsOperatedBy(cmd.RequesterID()) {
		return order.RoleStore, nil
	}

	return order.RoleUnknown, errs.NewUnauthorizedError(cmd.RequesterID().String())
}
