// Package events provides an in-process event bus with an optional SQLite
// event log for replay.
package events

import "time"

// Event is something that happened to one entity.
type Event interface {
	EventType() string
	EntityType() string // workout, exercise, media, seen
	EntityID() string
	OccurredAt() time.Time
}

// BaseEvent carries the fields every event shares. Embed it.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        string    `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() string      { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps an event with the current time.
func NewBaseEvent(eventType, entityType, entityID string) BaseEvent {
	return NewBaseEventAt(eventType, entityType, entityID, time.Now())
}

// NewBaseEventAt stamps an event with at, for events describing something
// that happened at a known time.
func NewBaseEventAt(eventType, entityType, entityID string, at time.Time) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Entity:    entityType,
		ID:        entityID,
		Timestamp: at.UTC(),
	}
}
