// internal/events/registry.go
package events

import (
	"encoding/json"
	"fmt"
	"slices"
)

// EventFactory creates a new zero-value event of a specific type.
type EventFactory func() Event

// Registry maps event types to their factories for deserialization.
type Registry struct {
	factories map[string]EventFactory
}

// NewRegistry creates a new event registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]EventFactory),
	}
}

// Register adds an event type to the registry.
func (r *Registry) Register(eventType string, factory EventFactory) {
	r.factories[eventType] = factory
}

// Unmarshal deserializes a raw event into its concrete type.
func (r *Registry) Unmarshal(raw RawEvent) (Event, error) {
	factory, ok := r.factories[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", raw.EventType)
	}

	event := factory()
	if err := json.Unmarshal([]byte(raw.Payload), event); err != nil {
		return nil, fmt.Errorf("unmarshal event payload: %w", err)
	}

	return event, nil
}

// Types returns the registered event types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// DefaultRegistry returns a registry with all standard event types registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Fitness events
	r.Register(EventExerciseAdded, func() Event { return &ExerciseAdded{} })
	r.Register(EventWorkoutCommitted, func() Event { return &WorkoutCommitted{} })
	r.Register(EventPersonalBestAchieved, func() Event { return &PersonalBestAchieved{} })

	// Title events
	r.Register(EventMediaAdded, func() Event { return &MediaAdded{} })
	r.Register(EventTitleSeen, func() Event { return &TitleSeen{} })

	return r
}
