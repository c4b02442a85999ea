package eventstream

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
)

// timestampWidth is the zero-padded width of the millisecond component of
// event and stream ids. Fixed width keeps lexical order and numeric order
// aligned, which the replay comparison in EventsSince relies on. Thirteen
// digits cover millisecond timestamps until the year 2286.
const timestampWidth = 13

// SubscriberKey builds the registry key for one notification recipient:
// "{role}_{subscriberId}". Every id for that party — stream ids and event
// ids alike — starts with this prefix, so a party may hold several
// simultaneous channels and all of them are found by prefix lookup.
func SubscriberKey(role order.Role, subscriberID kernel.UUID) string {
	return role.String() + "_" + subscriberID.String()
}

// KeyOf returns the subscriber key prefix of a full stream or event id by
// stripping the trailing timestamp component.
func KeyOf(fullID string) string {
	idx := strings.LastIndex(fullID, "_")
	if idx < 0 {
		return fullID
	}
	return fullID[:idx]
}

// timestampOf parses the millisecond component of a full id.
// Returns zero for ids that do not carry a numeric suffix.
func timestampOf(fullID string) int64 {
	idx := strings.LastIndex(fullID, "_")
	if idx < 0 || idx+1 >= len(fullID) {
		return 0
	}
	ms, err := strconv.ParseInt(fullID[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return ms
}

// IDGenerator issues ids of the form "{role}_{subscriberId}_{timestampMillis}".
//
// The timestamp component is zero-padded to a fixed width, and ids issued for
// the same subscriber key are strictly increasing even within a single
// millisecond: a same-millisecond collision bumps the timestamp by one.
// Both properties together guarantee that lexical comparison of ids matches
// issue order, which replay depends on.
type IDGenerator struct {
	mu   sync.Mutex
	last map[string]int64

	now func() time.Time
}

// NewIDGenerator creates a generator using the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		last: make(map[string]int64),
		now:  time.Now,
	}
}

// Next issues the next id for the given subscriber key.
func (g *IDGenerator) Next(key string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if last, ok := g.last[key]; ok && ms <= last {
		ms = last + 1
	}
	g.last[key] = ms

	return fmt.Sprintf("%s_%0*d", key, timestampWidth, ms)
}
