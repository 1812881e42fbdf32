package realtime

import (
	"sync"
)

// Hub fans table-change notifications out to subscribers. Each subscriber
// watches one table and receives the table name as the whole event; there is
// no payload diff and no debouncing, a burst of writes is a burst of events.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan string]struct{}),
	}
}

// Subscribe registers interest in one table. The returned cancel function
// must be called on teardown; repeated subscribe/teardown cycles must not
// accumulate handlers.
func (h *Hub) Subscribe(table string) (<-chan string, func()) {
	ch := make(chan string, 8)

	h.mu.Lock()
	if h.subscribers[table] == nil {
		h.subscribers[table] = make(map[chan string]struct{})
	}
	h.subscribers[table][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[table], ch)
			if len(h.subscribers[table]) == 0 {
				delete(h.subscribers, table)
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Publish wakes every subscriber of the table. A subscriber that is not
// keeping up gets dropped events rather than blocking the feed.
func (h *Hub) Publish(table string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[table] {
		select {
		case ch <- table:
		default:
		}
	}
}

// SubscriberCount is used by tests to verify teardown releases handlers.
func (h *Hub) SubscriberCount(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[table])
}
