package order_test

import (
	"testing"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLines(t *testing.T) []order.Line {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), 2, 4500)
	require.NoError(t, err)
	return []order.Line{line}
}

func TestNewLine(t *testing.T) {
	t.Run("should create valid line", func(t *testing.T) {
		itemID := kernel.NewUUID()

		line, err := order.NewLine(itemID, 3, 1200)

		require.NoError(t, err)
		assert.True(t, line.ItemID().IsEqual(itemID))
		assert.Equal(t, 3, line.Quantity())
		assert.Equal(t, int64(1200), line.UnitPrice())
		assert.Equal(t, int64(3600), line.Subtotal())
	})

	t.Run("should fail with invalid item id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := order.NewLine(invalidID, 1, 100)

		require.Error(t, err)
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), 0, 100)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("should fail with negative unit price", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), 1, -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unitPrice")
	})
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	arrival := time.Now().Add(2 * time.Hour)

	t.Run("should create valid order in received status", func(t *testing.T) {
		lines := validLines(t)

		o, err := order.NewOrder(validID, customerID, storeID, lines, arrival, "no onions please")

		require.NoError(t, err)
		assert.NotNil(t, o)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.True(t, o.StoreID().IsEqual(storeID))
		assert.Equal(t, order.Received, o.Status())
		assert.Equal(t, int64(9000), o.TotalPrice())
		assert.Equal(t, "no onions please", o.Demand())
		assert.Len(t, o.Lines(), 1)
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, customerID, storeID, validLines(t), arrival, "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail without lines", func(t *testing.T) {
		o, err := order.NewOrder(validID, customerID, storeID, nil, arrival, "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrNoOrderLines)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, invalidID, storeID, nil, arrival, "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "at least one line")
	})

	t.Run("totals sum over multiple lines", func(t *testing.T) {
		first, err := order.NewLine(kernel.NewUUID(), 2, 1000)
		require.NoError(t, err)
		second, err := order.NewLine(kernel.NewUUID(), 1, 500)
		require.NoError(t, err)

		o, err := order.NewOrder(validID, customerID, storeID, []order.Line{first, second}, arrival, "")

		require.NoError(t, err)
		assert.Equal(t, int64(2500), o.TotalPrice())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores persisted state as authoritative", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			validLines(t), 9000, time.Now(), "keep warm", order.Confirmed,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, int64(9000), o.TotalPrice())
	})

	t.Run("rejects invalid stored status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			validLines(t), 9000, time.Now(), "", order.Unknown,
		)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("nil order fails", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("zero value fails", func(t *testing.T) {
		o := &order.Order{}
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	newReceivedOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			validLines(t), time.Now().Add(time.Hour), "",
		)
		require.NoError(t, err)
		return o
	}

	t.Run("store confirms then completes", func(t *testing.T) {
		o := newReceivedOrder(t)

		require.NoError(t, o.ChangeStatus(order.RoleStore, order.Confirmed))
		assert.Equal(t, order.Confirmed, o.Status())

		require.NoError(t, o.ChangeStatus(order.RoleStore, order.Completed))
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("customer confirmation is rejected and state is unchanged", func(t *testing.T) {
		o := newReceivedOrder(t)

		err := o.ChangeStatus(order.RoleCustomer, order.Confirmed)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Received, o.Status())
	})

	t.Run("either role may cancel a confirmed order", func(t *testing.T) {
		o := newReceivedOrder(t)
		require.NoError(t, o.ChangeStatus(order.RoleStore, order.Confirmed))

		require.NoError(t, o.ChangeStatus(order.RoleCustomer, order.Canceled))
		assert.Equal(t, order.Canceled, o.Status())
	})

	t.Run("no transition leaves a terminal state", func(t *testing.T) {
		o := newReceivedOrder(t)
		require.NoError(t, o.ChangeStatus(order.RoleCustomer, order.Canceled))

		for _, target := range []order.Status{order.Received, order.Confirmed, order.Completed, order.Canceled} {
			require.Error(t, o.ChangeStatus(order.RoleStore, target))
		}
		assert.Equal(t, order.Canceled, o.Status())
	})
}

func TestOrder_IsPlacedBy(t *testing.T) {
	customerID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, kernel.NewUUID(),
		validLines(t), time.Now(), "",
	)
	require.NoError(t, err)

	assert.True(t, o.IsPlacedBy(customerID))
	assert.False(t, o.IsPlacedBy(kernel.NewUUID()))
}
