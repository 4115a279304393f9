package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	first := bus.Subscribe()
	second := bus.Subscribe()

	projectID := uuid.New()
	bus.Publish(Event{Type: EventProjectCloned, ProjectID: projectID})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case ev := <-ch:
			assert.Equal(t, EventProjectCloned, ev.Type)
			assert.Equal(t, projectID, ev.ProjectID)
			assert.False(t, ev.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("subscriber never received the event")
		}
	}
}

func TestBusSlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	// Never drained; the buffer fills and further events drop
	_ = bus.Subscribe()

	done := make(chan struct{})
	go func() {
		for range 200 {
			bus.Publish(Event{Type: EventBoardChanged})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("publishing blocked on a slow subscriber")
	}
}

func TestBusClose(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	bus.Close()

	_, open := <-ch
	require.False(t, open, "subscriber channel should be closed")

	// Publishing after close is a no-op, not a panic
	bus.Publish(Event{Type: EventProjectCreated})
	bus.Close()
}

func TestPublishNilPublisher(t *testing.T) {
	// Services pass nil in tests; must not panic
	Publish(nil, Event{Type: EventProjectCreated})
}
