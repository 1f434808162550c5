package sysmem

import (
	"context"

	"github.com/xaionaro-go/layersink/display"
)

// EventQueue is a channel-backed input event source, fed by whatever
// simulates (or forwards) user input.
type EventQueue struct {
	ch chan display.Event
}

var _ display.EventSource = (*EventQueue)(nil)

func NewEventQueue(capacity int) *EventQueue {
	return &EventQueue{
		ch: make(chan display.Event, capacity),
	}
}

// Push enqueues an event; it reports false when the queue is full.
func (q *EventQueue) Push(ev display.Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Finish marks the end of the event stream; NextEvent reports false
// after the remaining events are drained.
func (q *EventQueue) Finish() {
	close(q.ch)
}

func (q *EventQueue) NextEvent(ctx context.Context) (display.Event, bool) {
	select {
	case <-ctx.Done():
		return display.Event{}, false
	case ev, ok := <-q.ch:
		return ev, ok
	}
}
