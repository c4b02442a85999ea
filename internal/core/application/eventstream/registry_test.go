package eventstream_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"lastbite/internal/core/application/eventstream"
	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T, role order.Role) string {
	t.Helper()
	return eventstream.SubscriberKey(role, kernel.NewUUID())
}

func TestRegistry_RegisterAndChannelsFor(t *testing.T) {
	t.Run("registered channels are found by key prefix", func(t *testing.T) {
		reg := eventstream.NewRegistry(10)
		gen := eventstream.NewIDGenerator()
		key := newKey(t, order.RoleCustomer)

		reg.Register(gen.Next(key), eventstream.NewStream(1), time.Hour)
		reg.Register(gen.Next(key), eventstream.NewStream(1), time.Hour)

		assert.Len(t, reg.ChannelsFor(key), 2)
		assert.Equal(t, 2, reg.ActiveStreams())
	})

	t.Run("concurrent registrations for one key are independent entries", func(t *testing.T) {
		reg := eventstream.NewRegistry(10)
		gen := eventstream.NewIDGenerator()
		key := newKey(t, order.RoleStore)

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				reg.Register(gen.Next(key), eventstream.NewStream(1), time.Hour)
			}()
		}
		wg.Wait()

		assert.Len(t, reg.ChannelsFor(key), 50)
	})

	t.Run("unknown key yields no channels", func(t *testing.T) {
		reg := eventstream.NewRegistry(10)
		assert.Empty(t, reg.ChannelsFor("customer_missing"))
	})
}

func TestRegistry_Unregister(t *testing.T) {
	reg := eventstream.NewRegistry(10)
	gen := eventstream.NewIDGenerator()
	key := newKey(t, order.RoleCustomer)

	first := gen.Next(key)
	second := gen.Next(key)
	reg.Register(first, eventstream.NewStream(1), time.Hour)
	reg.Register(second, eventstream.NewStream(1), time.Hour)

	t.Run("removes exactly the named channel", func(t *testing.T) {
		reg.Unregister(first)

		refs := reg.ChannelsFor(key)
		require.Len(t, refs, 1)
		assert.Equal(t, second, refs[0].ID)
	})

	t.Run("is idempotent", func(t *testing.T) {
		reg.Unregister(first)
		reg.Unregister("store_unknown_0000000000000")

		assert.Len(t, reg.ChannelsFor(key), 1)
	})
}

func TestRegistry_CloseUnregisters(t *testing.T) {
	reg := eventstream.NewRegistry(10)
	gen := eventstream.NewIDGenerator()
	key := newKey(t, order.RoleStore)

	stream := eventstream.NewStream(1)
	reg.Register(gen.Next(key), stream, time.Hour)

	stream.Close()

	assert.Empty(t, reg.ChannelsFor(key))
}

func TestRegistry_EventsSince(t *testing.T) {
	reg := eventstream.NewRegistry(10)
	gen := eventstream.NewIDGenerator()
	key := newKey(t, order.RoleCustomer)

	var ids []string
	for i := range 3 {
		ev := eventstream.Event{
			ID:   gen.Next(key),
			Name: eventstream.EventNameNotification,
			Data: fmt.Sprintf("event %d", i),
		}
		ids = append(ids, ev.ID)
		reg.CacheEvent(ev)
	}

	t.Run("returns only events strictly after the given id, ascending", func(t *testing.T) {
		missed := reg.EventsSince(key, ids[0])

		require.Len(t, missed, 2)
		assert.Equal(t, ids[1], missed[0].ID)
		assert.Equal(t, ids[2], missed[1].ID)
	})

	t.Run("empty lastSeenID replays everything cached", func(t *testing.T) {
		missed := reg.EventsSince(key, "")
		assert.Len(t, missed, 3)
	})

	t.Run("returns nothing when no event qualifies", func(t *testing.T) {
		assert.Empty(t, reg.EventsSince(key, ids[2]))
	})

	t.Run("unknown key returns nothing", func(t *testing.T) {
		assert.Empty(t, reg.EventsSince("store_missing", ""))
	})
}

func TestRegistry_KeysAreIsolated(t *testing.T) {
	reg := eventstream.NewRegistry(10)
	gen := eventstream.NewIDGenerator()

	partyID := kernel.NewUUID()
	storeKey := eventstream.SubscriberKey(order.RoleStore, partyID)
	customerKey := eventstream.SubscriberKey(order.RoleCustomer, partyID)

	reg.CacheEvent(eventstream.Event{ID: gen.Next(customerKey)})

	// The same party id under a different role is a different subscriber.
	assert.Empty(t, reg.EventsSince(storeKey, ""))
	assert.Len(t, reg.EventsSince(customerKey, ""), 1)
}

func TestRegistry_CacheBound(t *testing.T) {
	reg := eventstream.NewRegistry(5)
	gen := eventstream.NewIDGenerator()
	key := newKey(t, order.RoleStore)

	for range 12 {
		reg.CacheEvent(eventstream.Event{ID: gen.Next(key)})
	}

	missed := reg.EventsSince(key, "")
	require.Len(t, missed, 5)
	for i := 1; i < len(missed); i++ {
		assert.Less(t, missed[i-1].ID, missed[i].ID)
	}
}

func TestRegistry_Sweep(t *testing.T) {
	reg := eventstream.NewRegistry(10)
	gen := eventstream.NewIDGenerator()

	idleKey := newKey(t, order.RoleCustomer)
	reg.CacheEvent(eventstream.Event{ID: gen.Next(idleKey)})

	liveKey := newKey(t, order.RoleStore)
	reg.Register(gen.Next(liveKey), eventstream.NewStream(1), time.Hour)

	t.Run("keeps entries with live streams or fresh events", func(t *testing.T) {
		dropped := reg.Sweep(time.Hour)

		assert.Zero(t, dropped)
		assert.Len(t, reg.EventsSince(idleKey, ""), 1)
	})

	t.Run("drops entries with only stale events", func(t *testing.T) {
		// A negative horizon puts the cutoff in the future, so even events
		// cached within the current millisecond count as stale.
		dropped := reg.Sweep(-time.Second)

		assert.Equal(t, 1, dropped)
		assert.Empty(t, reg.EventsSince(idleKey, ""))
		assert.Len(t, reg.ChannelsFor(liveKey), 1)
	})
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := eventstream.NewRegistry(50)
	gen := eventstream.NewIDGenerator()
	keys := []string{
		newKey(t, order.RoleCustomer),
		newKey(t, order.RoleStore),
	}

	var wg sync.WaitGroup
	for i := range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := keys[i%len(keys)]
			switch i % 4 {
			case 0:
				id := gen.Next(key)
				stream := eventstream.NewStream(4)
				reg.Register(id, stream, time.Hour)
				stream.Close()
			case 1:
				reg.CacheEvent(eventstream.Event{ID: gen.Next(key)})
			case 2:
				reg.ChannelsFor(key)
			default:
				reg.EventsSince(key, "")
			}
		}()
	}
	wg.Wait()

	// Every registered stream was closed, so no channels may remain.
	assert.Zero(t, reg.ActiveStreams())
}
