package commands_test

import (
	"testing"
	"time"

	"lastbite/internal/core/application/usecases/commands"
	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLines(t *testing.T) []order.Line {
	t.Helper()

	line, err := order.NewLine(kernel.NewUUID(), 2, 450)
	require.NoError(t, err)
	return []order.Line{line}
}

func TestNewCreateOrderCommand(t *testing.T) {
	arrival := time.Now().Add(2 * time.Hour)

	t.Run("creates_valid_command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		customerID := kernel.NewUUID()
		storeID := kernel.NewUUID()
		lines := validLines(t)

		cmd, err := commands.NewCreateOrderCommand(orderID, customerID, storeID, lines, arrival, "extra bag")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, customerID, cmd.CustomerID())
		assert.Equal(t, storeID, cmd.StoreID())
		assert.Equal(t, lines, cmd.Lines())
		assert.Equal(t, arrival, cmd.ArrivalTime())
		assert.Equal(t, "extra bag", cmd.Demand())
	})

	t.Run("allows_empty_demand", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), validLines(t), arrival, "")

		require.NoError(t, err)
		assert.Empty(t, cmd.Demand())
	})

	t.Run("rejects_invalid_order_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewCreateOrderCommand(
			zero, kernel.NewUUID(), kernel.NewUUID(), validLines(t), arrival, "")

		require.Error(t, err)
	})

	t.Run("rejects_invalid_customer_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), zero, kernel.NewUUID(), validLines(t), arrival, "")

		require.Error(t, err)
	})

	t.Run("rejects_invalid_store_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), zero, validLines(t), arrival, "")

		require.Error(t, err)
	})

	t.Run("rejects_empty_lines", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, arrival, "")

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrOrderLinesAreRequired)
	})

	t.Run("rejects_zero_arrival_time", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), validLines(t), time.Time{}, "")

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrArrivalTimeIsRequired)
	})
}

func TestCreateOrderCommand_Validate(t *testing.T) {
	t.Run("zero_value_command_fails_validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
