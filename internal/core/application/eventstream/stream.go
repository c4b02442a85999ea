package eventstream

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrStreamClosed is returned by Send when the stream has been closed by
	// the client, the idle timeout, or a previous delivery failure.
	ErrStreamClosed = errors.New("stream is closed")

	// ErrStreamSaturated is returned by Send when the stream's buffer is full.
	// A consumer that stopped draining is treated the same as a gone consumer.
	ErrStreamSaturated = errors.New("stream buffer is full")
)

// EventNameNotification is the wire event name carried by every pushed event,
// both real notifications and the synthetic stream-opened marker.
const EventNameNotification = "orderNotification"

// Event is one unit pushed to a subscriber channel. ID is the client-visible
// event id used for replay continuation; Data is the JSON-serializable payload.
type Event struct {
	ID   string
	Name string
	Data any
}

// Stream is a live delivery channel to one connected client instance.
//
// Events are delivered through a buffered channel so that dispatching never
// blocks on a slow consumer: Send either enqueues immediately or fails.
// Close is idempotent and runs the on-close hooks registered at creation
// time, which is how the registry learns about disconnects without polling.
type Stream struct {
	ch chan Event

	mu     sync.Mutex
	closed bool
	hooks  []func()
	timer  *time.Timer
}

// NewStream creates a stream with the given delivery buffer size.
func NewStream(buffer int) *Stream {
	return &Stream{
		ch: make(chan Event, buffer),
	}
}

// Events returns the receive side of the stream. The channel is closed when
// the stream closes, so consumers can range over it.
func (s *Stream) Events() <-chan Event {
	return s.ch
}

// Send enqueues an event for delivery. It never blocks: a closed stream
// returns ErrStreamClosed and a saturated buffer returns ErrStreamSaturated.
// Either error means this channel is no longer usable and should be
// unregistered; neither affects sibling channels.
func (s *Stream) Send(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStreamClosed
	}

	select {
	case s.ch <- ev:
		return nil
	default:
		return ErrStreamSaturated
	}
}

// OnClose registers a hook to run when the stream closes. Hooks registered
// after the stream already closed run immediately.
func (s *Stream) OnClose(hook func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		hook()
		return
	}
	s.hooks = append(s.hooks, hook)
	s.mu.Unlock()
}

// Close shuts the stream down: the idle timer is stopped, the event channel
// is closed, and all on-close hooks run. Safe to call multiple times and
// from any goroutine.
func (s *Stream) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	hooks := s.hooks
	s.hooks = nil
	close(s.ch)
	s.mu.Unlock()

	// Hooks run outside the lock; they typically call back into the registry.
	for _, hook := range hooks {
		hook()
	}
}

// startIdleTimer arms the idle deadline. The stream closes itself when the
// deadline fires; clients are expected to reconnect.
func (s *Stream) startIdleTimer(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.timer = time.AfterFunc(d, s.Close)
}
