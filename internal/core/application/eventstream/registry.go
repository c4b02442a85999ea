// Package eventstream implements the per-process subscriber registry and the
// bounded event cache behind real-time order notifications.
//
// The registry is the single source of truth for "who is currently listening"
// and "what was recently sent". It is shared by every request-handling
// goroutine: subscription opens and closes race freely with dispatch
// broadcasts. All state is in-memory; replay after a reconnect is therefore
// best-effort and scoped to a single serving process.
//
// Ids follow the shape "{role}_{subscriberId}_{timestampMillis}" with a
// fixed-width timestamp, so lexical comparison of ids matches issue order
// (see IDGenerator).
package eventstream

import (
	"sort"
	"sync"
	"time"
)

// DefaultMaxEventsPerKey bounds the replay cache per subscriber key.
// The bound is a tunable, not a correctness requirement — replay is
// best-effort and clients resync via the persisted notification log.
const DefaultMaxEventsPerKey = 100

// StreamRef pairs a live stream with its full id.
type StreamRef struct {
	ID     string
	Stream *Stream
}

// subscriberEntry holds the live channels and the cached events of one
// subscriber key. Each entry has its own lock so broadcasts to one party
// never contend with broadcasts to another. An entry swept out of the index
// is marked gone under its lock; holders of a stale pointer re-resolve.
type subscriberEntry struct {
	mu      sync.Mutex
	streams map[string]*Stream
	events  []Event
	gone    bool
}

// Registry maps subscriber keys to live delivery channels and to a bounded
// history of recently sent events.
//
// Concurrency: the outer RWMutex only guards the key index; per-key state is
// guarded by the entry's own mutex. No I/O happens under either lock — Send
// on a stream is a non-blocking channel operation.
type Registry struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriberEntry

	maxEventsPerKey int
}

// NewRegistry creates an empty registry. A non-positive maxEventsPerKey
// falls back to DefaultMaxEventsPerKey.
func NewRegistry(maxEventsPerKey int) *Registry {
	if maxEventsPerKey <= 0 {
		maxEventsPerKey = DefaultMaxEventsPerKey
	}
	return &Registry{
		subscribers:     make(map[string]*subscriberEntry),
		maxEventsPerKey: maxEventsPerKey,
	}
}

// lockEntry returns the entry for a key with its mutex held, creating the
// entry when create is set. Returns nil when the key is absent and create is
// false. Entries swept concurrently are detected via the gone flag and
// re-resolved, so callers never mutate a dropped entry.
func (r *Registry) lockEntry(key string, create bool) *subscriberEntry {
	for {
		r.mu.RLock()
		entry, ok := r.subscribers[key]
		r.mu.RUnlock()

		if !ok {
			if !create {
				return nil
			}
			r.mu.Lock()
			if entry, ok = r.subscribers[key]; !ok {
				entry = &subscriberEntry{streams: make(map[string]*Stream)}
				r.subscribers[key] = entry
			}
			r.mu.Unlock()
		}

		entry.mu.Lock()
		if entry.gone {
			entry.mu.Unlock()
			continue
		}
		return entry
	}
}

// Register adds a live stream under its full id and arms its idle timeout.
// Concurrent registrations for the same subscriber key are independent
// entries, never overwrites. The stream's removal is hooked to its close,
// so completion, timeout, and delivery-failure paths all converge on
// Unregister without polling.
func (r *Registry) Register(fullID string, stream *Stream, timeout time.Duration) {
	entry := r.lockEntry(KeyOf(fullID), true)
	entry.streams[fullID] = stream
	entry.mu.Unlock()

	stream.OnClose(func() {
		r.Unregister(fullID)
	})
	stream.startIdleTimer(timeout)
}

// Unregister removes the stream with the given full id. Idempotent: removal
// of an unknown or already-removed id is a no-op. Future broadcasts skip the
// removed channel.
func (r *Registry) Unregister(fullID string) {
	entry := r.lockEntry(KeyOf(fullID), false)
	if entry == nil {
		return
	}
	delete(entry.streams, fullID)
	entry.mu.Unlock()
}

// ChannelsFor returns a snapshot of all live channels whose id starts with
// the given subscriber key. The snapshot reflects registrations and removals
// completed before the call; channels closed concurrently simply fail their
// next Send.
func (r *Registry) ChannelsFor(key string) []StreamRef {
	entry := r.lockEntry(key, false)
	if entry == nil {
		return nil
	}
	defer entry.mu.Unlock()

	refs := make([]StreamRef, 0, len(entry.streams))
	for id, stream := range entry.streams {
		refs = append(refs, StreamRef{ID: id, Stream: stream})
	}
	return refs
}

// CacheEvent appends an event to the bounded history of its subscriber key.
// When the bound is exceeded the oldest entries are evicted.
func (r *Registry) CacheEvent(ev Event) {
	entry := r.lockEntry(KeyOf(ev.ID), true)
	defer entry.mu.Unlock()

	entry.events = append(entry.events, ev)
	// Ids are issued in increasing order per key, but dispatches for the same
	// key may interleave between id generation and caching.
	sort.Slice(entry.events, func(i, j int) bool {
		return entry.events[i].ID < entry.events[j].ID
	})

	if overflow := len(entry.events) - r.maxEventsPerKey; overflow > 0 {
		entry.events = append([]Event(nil), entry.events[overflow:]...)
	}
}

// EventsSince returns all cached events for the subscriber key whose id sorts
// strictly after lastSeenID, in ascending id order. Returns nil when no event
// qualifies.
func (r *Registry) EventsSince(key, lastSeenID string) []Event {
	entry := r.lockEntry(key, false)
	if entry == nil {
		return nil
	}
	defer entry.mu.Unlock()

	idx := sort.Search(len(entry.events), func(i int) bool {
		return entry.events[i].ID > lastSeenID
	})
	if idx == len(entry.events) {
		return nil
	}

	missed := make([]Event, len(entry.events)-idx)
	copy(missed, entry.events[idx:])
	return missed
}

// ActiveStreams counts all live channels across every subscriber key.
func (r *Registry) ActiveStreams() int {
	r.mu.RLock()
	entries := make([]*subscriberEntry, 0, len(r.subscribers))
	for _, entry := range r.subscribers {
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	total := 0
	for _, entry := range entries {
		entry.mu.Lock()
		total += len(entry.streams)
		entry.mu.Unlock()
	}
	return total
}

// Sweep evicts cached events older than maxAge and drops subscriber entries
// that hold neither live channels nor cached events. Returns the number of
// entries dropped. Intended to run from a scheduled job.
func (r *Registry) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge).UnixMilli()

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for key, entry := range r.subscribers {
		entry.mu.Lock()
		kept := entry.events[:0]
		for _, ev := range entry.events {
			if timestampOf(ev.ID) >= cutoff {
				kept = append(kept, ev)
			}
		}
		entry.events = kept
		empty := len(entry.streams) == 0 && len(entry.events) == 0
		if empty {
			entry.gone = true
			delete(r.subscribers, key)
			dropped++
		}
		entry.mu.Unlock()
	}
	return dropped
}
