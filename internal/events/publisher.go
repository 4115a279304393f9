package events

import (
	"log/slog"
	"sync"
	"time"
)

// Publisher receives events from services after a successful commit.
// Depending on the interface rather than a concrete implementation keeps
// services decoupled and easy to test with a nil publisher.
type Publisher interface {
	Publish(event Event)
}

// Bus is an in-process fan-out publisher. Subscribers receive events on
// buffered channels; a subscriber that falls behind drops events rather than
// blocking the publishing request.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Event
	closed      bool
}

// NewBus creates an event bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber channel.
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Event, 64)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Publish delivers the event to every subscriber without blocking.
func (b *Bus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			slog.Warn("event subscriber queue full, dropping event",
				"event_type", event.Type,
				"project_id", event.ProjectID)
		}
	}
}

// Close closes all subscriber channels. Publish becomes a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
}

// Compile-time verification that *Bus implements Publisher
var _ Publisher = (*Bus)(nil)

// Publish sends an event through the given publisher, skipping silently when
// the publisher is nil (e.g. in tests).
func Publish(p Publisher, event Event) {
	if p == nil {
		return
	}
	p.Publish(event)
}
