// Package observe delivers change notifications from the UI-state components to
// whoever renders them. Components publish a Change after every mutation;
// subscribers receive it on a buffered channel and re-read the component's getters.
package observe

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topic identifies the component that changed.
type Topic string

const (
	TopicSelection Topic = "selection"
	TopicBookmarks Topic = "bookmarks"
	TopicDrawer    Topic = "drawer"
	TopicSettings  Topic = "settings"
)

const subscriptionBufferSize = 64

// Change describes one mutation. Field names the state that changed, e.g.
// "clusterId" or "namespaces".
type Change struct {
	Topic Topic
	Field string
	At    time.Time
}

// Subscription represents a subscription to changes on one topic, or all topics.
type Subscription struct {
	ID      string
	Topic   Topic // empty for all topics
	Channel chan Change

	mu     sync.RWMutex
	closed bool
}

// Close closes the subscription channel. Closing twice is safe.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.Channel)
		s.closed = true
	}
}

// IsClosed returns whether the subscription is closed
func (s *Subscription) IsClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// trySend delivers c without blocking. It reports false when the buffer is full
// or the subscription is closed.
func (s *Subscription) trySend(c Change) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.Channel <- c:
		return true
	default:
		return false
	}
}

// Metrics tracks delivery counters.
type Metrics struct {
	ActiveSubscriptions int
	Published           int64
	Delivered           int64
	Dropped             int64
	LastChange          time.Time
}

// Hub fans changes out to subscribers. A nil *Hub is valid and discards everything,
// so components can be built without one.
type Hub struct {
	mu            sync.RWMutex
	subscriptions map[string]*Subscription
	metrics       Metrics
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscriptions: make(map[string]*Subscription)}
}

// Subscribe creates a subscription to topic; the empty topic subscribes to all changes.
func (h *Hub) Subscribe(topic Topic) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscription{
		ID:      "sub_" + uuid.NewString(),
		Topic:   topic,
		Channel: make(chan Change, subscriptionBufferSize),
	}
	h.subscriptions[sub.ID] = sub
	h.metrics.ActiveSubscriptions++
	return sub
}

// Unsubscribe removes and closes a subscription.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.subscriptions[sub.ID]; exists {
		sub.Close()
		delete(h.subscriptions, sub.ID)
		h.metrics.ActiveSubscriptions--
	}
}

// Publish notifies subscribers of topic. Full subscriber buffers drop the change;
// a subscriber only needs to know that something changed, not every intermediate step.
func (h *Hub) Publish(topic Topic, field string) {
	if h == nil {
		return
	}
	change := Change{Topic: topic, Field: field, At: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.metrics.Published++
	h.metrics.LastChange = change.At
	for _, sub := range h.subscriptions {
		if sub.Topic != "" && sub.Topic != topic {
			continue
		}
		if sub.trySend(change) {
			h.metrics.Delivered++
		} else {
			h.metrics.Dropped++
		}
	}
}

// Metrics returns a copy of the delivery counters.
func (h *Hub) Metrics() Metrics {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.metrics
}

// Close unsubscribes everyone.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, sub := range h.subscriptions {
		sub.Close()
		delete(h.subscriptions, id)
	}
	h.metrics.ActiveSubscriptions = 0
}
