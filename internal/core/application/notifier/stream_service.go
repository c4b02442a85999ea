package notifier

import (
	"fmt"
	"log/slog"
	"time"

	"lastbite/internal/core/application/eventstream"
	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/pkg/metrics"
)

// DefaultStreamTimeout is the idle deadline of a subscriber stream. A client
// that neither receives an event nor disconnects within this window is
// closed by the server and expected to reconnect with its last seen id.
const DefaultStreamTimeout = time.Hour

// DefaultStreamBuffer is the per-stream delivery buffer. Dispatch never
// blocks on a consumer; a consumer further behind than this is dropped.
const DefaultStreamBuffer = 32

// StreamService opens subscriber streams: it registers a fresh channel,
// confirms liveness with a synthetic opened event, and replays events the
// client missed while disconnected.
type StreamService struct {
	registry *eventstream.Registry
	ids      *eventstream.IDGenerator
	logger   *slog.Logger

	timeout time.Duration
	buffer  int
}

// NewStreamService creates a stream service with the default idle timeout
// and delivery buffer.
func NewStreamService(
	registry *eventstream.Registry,
	ids *eventstream.IDGenerator,
	logger *slog.Logger,
) *StreamService {
	return &StreamService{
		registry: registry,
		ids:      ids,
		logger:   logger.With("component", "stream_service"),
		timeout:  DefaultStreamTimeout,
		buffer:   DefaultStreamBuffer,
	}
}

// WithTimeout overrides the idle deadline applied to new streams.
func (s *StreamService) WithTimeout(d time.Duration) *StreamService {
	s.timeout = d
	return s
}

// Subscription is an open stream together with its server-assigned id. The
// id doubles as the first event id the client will see, so a reconnect that
// quotes it resumes exactly after the opened marker.
type Subscription struct {
	ID     string
	Stream *eventstream.Stream
}

// Subscribe opens a stream for the given party acting under the given role.
//
// The stream is registered before anything is written to it, so no event
// dispatched between registration and the first read can be lost. A
// synthetic opened event is pushed first; if even that cannot be delivered
// the stream is torn down and an error returned, since the registration
// would otherwise linger until the idle timeout.
//
// When lastEventID is non-empty, every cached event with a strictly greater
// id is replayed in ascending order after the opened event. Replay is
// best-effort: an empty cache yields no replay and no error.
func (s *StreamService) Subscribe(subscriberID kernel.UUID, role order.Role, lastEventID string) (*Subscription, error) {
	if err := subscriberID.Validate(); err != nil {
		return nil, err
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	key := eventstream.SubscriberKey(role, subscriberID)
	fullID := s.ids.Next(key)

	stream := eventstream.NewStream(s.buffer)
	s.registry.Register(fullID, stream, s.timeout)
	metrics.ActiveStreams.Set(float64(s.registry.ActiveStreams()))
	stream.OnClose(func() {
		metrics.ActiveStreams.Set(float64(s.registry.ActiveStreams()))
	})

	opened := eventstream.Event{
		ID:   fullID,
		Name: eventstream.EventNameNotification,
		Data: fmt.Sprintf("EventStream Created. [role=%s, subscriberId=%s]", role, subscriberID),
	}
	if err := stream.Send(opened); err != nil {
		stream.Close()
		return nil, fmt.Errorf("could not open stream for %s: %w", key, err)
	}

	if lastEventID != "" {
		s.replay(stream, key, fullID, lastEventID)
	}

	s.logger.Info("stream opened", "stream", fullID, "lastEventId", lastEventID)
	return &Subscription{ID: fullID, Stream: stream}, nil
}

// replay pushes the cached events missed since lastEventID. A push failure
// here degrades silently: the client still has the persisted notification
// log to resync from, and tearing down a freshly opened stream over replay
// would punish reconnecting clients for server-side cache pressure.
func (s *StreamService) replay(stream *eventstream.Stream, key, fullID, lastEventID string) {
	for _, ev := range s.registry.EventsSince(key, lastEventID) {
		if ev.ID == fullID {
			continue
		}
		if err := stream.Send(ev); err != nil {
			s.logger.Warn("replay aborted", "stream", fullID, "event", ev.ID, "error", err)
			return
		}
		metrics.EventsReplayedTotal.Inc()
	}
}
