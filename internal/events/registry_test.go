// internal/events/registry_test.go
package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Unmarshal(t *testing.T) {
	registry := NewRegistry()
	registry.Register(EventPersonalBestAchieved, func() Event { return &PersonalBestAchieved{} })

	raw := RawEvent{
		EventType: EventPersonalBestAchieved,
		Payload:   `{"type":"personal_best.achieved","entity_type":"exercise","entity_id":"bench","occurred_at":"2026-01-01T00:00:00Z","user_id":"u1","workout_id":"w1","exercise_name":"Bench Press","dimension":"weight","set_idx":2,"value":"102.5"}`,
	}

	event, err := registry.Unmarshal(raw)
	require.NoError(t, err)

	pb, ok := event.(*PersonalBestAchieved)
	require.True(t, ok)
	assert.Equal(t, "bench", pb.EntityID())
	assert.Equal(t, "weight", pb.Dimension)
	assert.Equal(t, 2, pb.SetIdx)
	assert.Equal(t, "102.5", pb.Value)
}

func TestRegistry_UnmarshalUnknownType(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Unmarshal(RawEvent{EventType: "unknown.event", Payload: `{}`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestRegistry_UnmarshalInvalidJSON(t *testing.T) {
	registry := NewRegistry()
	registry.Register(EventTitleSeen, func() Event { return &TitleSeen{} })

	_, err := registry.Unmarshal(RawEvent{EventType: EventTitleSeen, Payload: `{invalid json`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal event payload")
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	assert.Equal(t, []string{
		EventExerciseAdded,
		EventMediaAdded,
		EventPersonalBestAchieved,
		EventTitleSeen,
		EventWorkoutCommitted,
	}, registry.Types())
}

func TestDefaultRegistry_RoundTripThroughLog(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	registry := DefaultRegistry()

	season, episode := 4, 9
	seen := &TitleSeen{
		BaseEvent:  NewBaseEvent(EventTitleSeen, EntitySeen, "7"),
		UserID:     "u1",
		RawTitle:   "Stranger Things: Stranger Things 4: Chapter Nine: The Piggyback",
		BaseTitle:  "Stranger Things",
		Season:     &season,
		Episode:    &episode,
		Confidence: "high",
	}
	_, err := log.Append(seen)
	require.NoError(t, err)

	raw, err := log.Recent(1)
	require.NoError(t, err)
	require.Len(t, raw, 1)

	decoded, err := registry.Unmarshal(raw[0])
	require.NoError(t, err)
	got, ok := decoded.(*TitleSeen)
	require.True(t, ok)
	assert.Equal(t, "Stranger Things", got.BaseTitle)
	require.NotNil(t, got.Season)
	assert.Equal(t, 4, *got.Season)
	assert.Nil(t, got.MediaID)
}
