package events

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// Publisher is the publishing side of the bus. Services depend on it.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// subscription is one subscriber channel and the events it wants.
type subscription struct {
	ch    chan Event
	match func(Event) bool
	label string // for drop logs
}

// Bus is an in-process pub/sub bus with optional persistence.
type Bus struct {
	mu      sync.RWMutex
	subs    []*subscription
	log     *EventLog // may be nil
	logger  *slog.Logger
	closed  bool
	dropped atomic.Int64
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		log:    log,
		logger: logger.With("component", "bus"),
	}
}

// Publish persists e (when a log is configured) and delivers it to matching
// subscribers without blocking; a full subscriber misses the event. Delivery
// happens even when persistence fails, and the persistence error is returned.
// Publishing on a closed bus is a no-op.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	var targets []*subscription
	for _, s := range b.subs {
		if s.match(e) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	var persistErr error
	if b.log != nil {
		if _, err := b.log.Append(e); err != nil {
			persistErr = fmt.Errorf("persist %s event: %w", e.EventType(), err)
		}
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range targets {
		if b.closed || !slices.Contains(b.subs, s) {
			continue
		}
		select {
		case s.ch <- e:
		default:
			b.dropped.Add(1)
			b.logger.Warn("subscriber channel full, dropping event",
				"subscriber", s.label,
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
	return persistErr
}

// Dropped returns how many deliveries were skipped because a subscriber
// channel was full.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

func (b *Bus) subscribe(label string, bufferSize int, match func(Event) bool) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, &subscription{ch: ch, match: match, label: label})
	return ch
}

// Subscribe returns a channel for events of one type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.subscribe(eventType, bufferSize, func(e Event) bool {
		return e.EventType() == eventType
	})
}

// SubscribeAll returns a channel for every event.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.subscribe("*", bufferSize, func(Event) bool { return true })
}

// SubscribeEntity returns a channel for the events of one entity, such as
// every event about one workout.
func (b *Bus) SubscribeEntity(entityType, entityID string, bufferSize int) <-chan Event {
	return b.subscribe(entityType+"/"+entityID, bufferSize, func(e Event) bool {
		return e.EntityType() == entityType && e.EntityID() == entityID
	})
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ch == ch {
			b.subs = slices.Delete(b.subs, i, i+1)
			close(s.ch)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	return nil
}
