// Package broadcast fans mutation events out to live listeners. It is
// a pure side channel: delivery is best-effort and persistence never
// depends on it.
package broadcast

import "sync"

// Event types pushed to connected clients.
const (
	EventDataUpdate   = "data_update"
	EventConfigUpdate = "config_update"
)

// Event is one message delivered to every current subscriber.
type Event struct {
	Type    string
	Payload interface{}
}

// Publisher is the write side of the channel. Services publish through
// it so the whole channel can be disabled without touching them.
type Publisher interface {
	Publish(event Event)
}

// subscriberBuffer is how many events a listener may lag behind before
// events are dropped for it.
const subscriberBuffer = 16

// Hub is a registry of active listeners with notify-all semantics.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates a Hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned cancel func removes it
// and closes the channel; callers must invoke it when done.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking. A
// subscriber whose buffer is full misses the event.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribers reports the number of connected listeners.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// NopPublisher discards every event. It stands in for the Hub when the
// push channel is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
