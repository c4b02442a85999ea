package notification_test

import (
	"testing"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/notification"
	"lastbite/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), 1, 900)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Line{line}, time.Now().Add(time.Hour), "",
	)
	require.NoError(t, err)
	return o
}

func TestNewNotification(t *testing.T) {
	t.Run("should create notification referencing order parties", func(t *testing.T) {
		o := newTestOrder(t)
		id := kernel.NewUUID()

		n, err := notification.NewNotification(id, o, "Order confirmed.")

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.True(t, n.ID().IsEqual(id))
		assert.True(t, n.OrderID().IsEqual(o.ID()))
		assert.True(t, n.CustomerID().IsEqual(o.CustomerID()))
		assert.True(t, n.StoreID().IsEqual(o.StoreID()))
		assert.Equal(t, "Order confirmed.", n.Content())
		assert.WithinDuration(t, time.Now(), n.CreatedAt(), time.Second)
	})

	t.Run("should fail with empty content", func(t *testing.T) {
		n, err := notification.NewNotification(kernel.NewUUID(), newTestOrder(t), "")

		require.Error(t, err)
		assert.Nil(t, n)
	})

	t.Run("should fail with unconstructed order", func(t *testing.T) {
		n, err := notification.NewNotification(kernel.NewUUID(), &order.Order{}, "msg")

		require.Error(t, err)
		assert.Nil(t, n)
	})
}

func TestRestoreNotification(t *testing.T) {
	createdAt := time.Now().Add(-time.Hour)

	n, err := notification.RestoreNotification(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Order canceled.", createdAt,
	)

	require.NoError(t, err)
	assert.Equal(t, createdAt, n.CreatedAt())
}

func TestMessageFor(t *testing.T) {
	o := newTestOrder(t)

	t.Run("is deterministic per status", func(t *testing.T) {
		first, err := notification.MessageFor(order.Confirmed, o)
		require.NoError(t, err)
		second, err := notification.MessageFor(order.Confirmed, o)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Contains(t, first, "confirmed")
		assert.Contains(t, first, o.ID().String())
	})

	t.Run("covers every valid status", func(t *testing.T) {
		for _, s := range []order.Status{order.Received, order.Confirmed, order.Completed, order.Canceled} {
			msg, err := notification.MessageFor(s, o)
			require.NoError(t, err)
			assert.NotEmpty(t, msg)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := notification.MessageFor(order.Unknown, o)
		require.Error(t, err)
	})
}

func TestAudienceFor(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected []order.Role
	}{
		{order.Received, []order.Role{order.RoleStore}},
		{order.Confirmed, []order.Role{order.RoleCustomer}},
		{order.Completed, []order.Role{order.RoleCustomer, order.RoleStore}},
		{order.Canceled, []order.Role{order.RoleStore, order.RoleCustomer}},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, notification.AudienceFor(tt.status))
		})
	}

	t.Run("unknown status has no audience", func(t *testing.T) {
		assert.Nil(t, notification.AudienceFor(order.Unknown))
	})
}

func TestRecipientID(t *testing.T) {
	o := newTestOrder(t)

	assert.True(t, notification.RecipientID(order.RoleStore, o).IsEqual(o.StoreID()))
	assert.True(t, notification.RecipientID(order.RoleCustomer, o).IsEqual(o.CustomerID()))
}
