// Package stream implements the realtime subscription surface: subscribers
// receive the full current value of a topic immediately on subscribe and
// the full new value on every change. Intermediate values may be skipped;
// a subscriber always converges on the latest state.
package stream

import "sync"

// Topics mirror the two records the application keeps: the gold-rate
// mapping and the single portfolio aggregate.
const (
	TopicRates     = "goldRates"
	TopicPortfolio = "goldProfile"
)

// ValidTopic reports whether the given topic exists.
func ValidTopic(topic string) bool {
	return topic == TopicRates || topic == TopicPortfolio
}

// Hub fans the latest value of each topic out to its subscribers.
type Hub struct {
	mu      sync.RWMutex
	current map[string]any
	subs    map[string]map[*Subscription]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		current: make(map[string]any),
		subs:    make(map[string]map[*Subscription]struct{}),
	}
}

// Subscription delivers topic values on C until Cancel is called.
type Subscription struct {
	C     chan any
	hub   *Hub
	topic string
	once  sync.Once
}

// Cancel detaches the subscription from the hub. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs[s.topic], s)
		s.hub.mu.Unlock()
	})
}

// Subscribe registers a subscriber for a topic. If the topic already has a
// value, it is delivered immediately.
func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		// Capacity one: deliver is replace-then-send, so a slow consumer
		// only ever sees the most recent value.
		C:     make(chan any, 1),
		hub:   h,
		topic: topic,
	}

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	value, ok := h.current[topic]
	h.mu.Unlock()

	if ok {
		sub.deliver(value)
	}

	return sub
}

// Publish records the full new value for a topic and delivers it to every
// subscriber.
func (h *Hub) Publish(topic string, value any) {
	h.mu.Lock()
	h.current[topic] = value
	targets := make([]*Subscription, 0, len(h.subs[topic]))
	for sub := range h.subs[topic] {
		targets = append(targets, sub)
	}
	h.mu.Unlock()

	for _, sub := range targets {
		sub.deliver(value)
	}
}

// Current returns the last published value for a topic, if any.
func (h *Hub) Current(topic string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	value, ok := h.current[topic]
	return value, ok
}

func (s *Subscription) deliver(value any) {
	// Drop the stale buffered value, if any, then send the fresh one.
	for {
		select {
		case s.C <- value:
			return
		default:
			select {
			case <-s.C:
			default:
			}
		}
	}
}
