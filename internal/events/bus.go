package events

import (
	"log/slog"
	"sync"
	"time"
)

// Topic identifies a class of entity-change notifications
type Topic string

const (
	TopicPlayerUpdated Topic = "player-updated"
	TopicGameCreated   Topic = "game-created"
	TopicGameUpdated   Topic = "game-updated"
	TopicGameRemoved   Topic = "game-removed"
)

// Event is a single published entity change
type Event struct {
	Topic   Topic
	At      time.Time
	Payload any
}

// subscriberBuffer is the channel depth per subscriber. Publishes never
// block; events beyond this are dropped with a warning.
const subscriberBuffer = 64

// Bus is an in-process publish/subscribe event bus used to notify other
// subsystems of entity changes
type Bus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	subs   map[Topic]map[int]chan Event
	nextID int
	closed bool
}

// NewBus creates an event bus
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger: logger.With(slog.String("component", "events")),
		subs:   make(map[Topic]map[int]chan Event),
	}
}

// Subscribe registers interest in the given topics. The returned cancel
// function removes the subscription and closes the channel.
func (b *Bus) Subscribe(topics ...Topic) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	for _, topic := range topics {
		if b.subs[topic] == nil {
			b.subs[topic] = make(map[int]chan Event)
		}
		b.subs[topic][id] = ch
	}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		found := false
		for _, topic := range topics {
			if _, ok := b.subs[topic][id]; ok {
				delete(b.subs[topic], id)
				found = true
			}
		}
		if found {
			close(ch)
		}
	}

	return ch, cancel
}

// Publish delivers the payload to every subscriber of topic without
// blocking. Slow subscribers lose events rather than stalling publishers.
func (b *Bus) Publish(topic Topic, payload any) {
	event := Event{
		Topic:   topic,
		At:      time.Now(),
		Payload: payload,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs[topic] {
		select {
		case ch <- event:
		default:
			b.logger.Warn("event dropped - subscriber buffer full",
				slog.String("topic", string(topic)))
		}
	}
}

// Close shuts the bus down and closes all subscriber channels
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	closed := make(map[chan Event]bool)
	for _, subs := range b.subs {
		for _, ch := range subs {
			if !closed[ch] {
				close(ch)
				closed[ch] = true
			}
		}
	}
	b.subs = make(map[Topic]map[int]chan Event)
}
