package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	first, cancelFirst := hub.Subscribe()
	defer cancelFirst()
	second, cancelSecond := hub.Subscribe()
	defer cancelSecond()

	hub.Publish(Event{Type: EventConfigUpdate, Payload: 42})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case event := <-ch:
			assert.Equal(t, EventConfigUpdate, event.Type)
			assert.Equal(t, 42, event.Payload)
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	hub.Publish(Event{Type: EventDataUpdate})
	assert.Zero(t, hub.Subscribers())
}

func TestCancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Subscribe()
	require.Equal(t, 1, hub.Subscribers())

	cancel()
	assert.Zero(t, hub.Subscribers())

	_, open := <-events
	assert.False(t, open, "cancel must close the channel")

	// Second cancel is a no-op.
	cancel()
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	// One more than the buffer; the last publish must not block and
	// must be dropped for this subscriber.
	for i := 0; i <= subscriberBuffer; i++ {
		hub.Publish(Event{Type: EventDataUpdate, Payload: i})
	}

	received := 0
	for {
		select {
		case <-events:
			received++
			continue
		default:
		}
		break
	}
	assert.Equal(t, subscriberBuffer, received)
}

func TestNopPublisher(t *testing.T) {
	NopPublisher{}.Publish(Event{Type: EventDataUpdate})
}
