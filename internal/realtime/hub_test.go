package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHubPublishReachesSubscribers(t *testing.T) {
	hub := NewHub()

	events, cancel := hub.Subscribe("items")
	defer cancel()

	hub.Publish("items")

	select {
	case table := <-events:
		assert.Equal(t, "items", table)
	case <-time.After(time.Second):
		t.Fatal("expected a change event for items")
	}
}

func TestHubPublishIsScopedToTable(t *testing.T) {
	hub := NewHub()

	itemEvents, cancelItems := hub.Subscribe("items")
	defer cancelItems()
	_, cancelVehicles := hub.Subscribe("vehicles")
	defer cancelVehicles()

	hub.Publish("vehicles")

	select {
	case table := <-itemEvents:
		t.Fatalf("items subscriber received event for %q", table)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCancelReleasesSubscription(t *testing.T) {
	hub := NewHub()

	// Repeated subscribe/teardown cycles must not accumulate handlers.
	for i := 0; i < 10; i++ {
		_, cancel := hub.Subscribe("submissions")
		cancel()
	}

	assert.Equal(t, 0, hub.SubscriberCount("submissions"))
}

func TestHubCancelIsIdempotent(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe("requests")
	cancel()
	cancel()

	assert.Equal(t, 0, hub.SubscriberCount("requests"))
}

func TestHubSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe("inventory")
	defer cancel()

	// Fill the buffer and keep publishing; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish("inventory")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
