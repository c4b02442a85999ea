package commands_test

import (
	"testing"

	"lastbite/internal/core/application/usecases/commands"
	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand(t *testing.T) {
	t.Run("creates_valid_command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		requesterID := kernel.NewUUID()

		cmd, err := commands.NewChangeOrderStatusCommand(orderID, requesterID, order.Confirmed)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, requesterID, cmd.RequesterID())
		assert.Equal(t, order.Confirmed, cmd.Target())
	})

	t.Run("rejects_invalid_order_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewChangeOrderStatusCommand(zero, kernel.NewUUID(), order.Confirmed)

		require.Error(t, err)
	})

	t.Run("rejects_invalid_requester_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), zero, order.Confirmed)

		require.Error(t, err)
	})

	t.Run("rejects_unknown_target_status", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), order.Unknown)

		require.Error(t, err)
	})
}

func TestChangeOrderStatusCommand_Validate(t *testing.T) {
	t.Run("zero_value_command_fails_validation", func(t *testing.T) {
		var cmd commands.ChangeOrderStatusCommand

		err := cmd.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})
}
