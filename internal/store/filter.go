package store

import "github.com/vmunix/logbook/pkg/fitness"

// ExerciseFilter specifies criteria for listing catalog exercises.
type ExerciseFilter struct {
	Lot    *fitness.ExerciseLot
	Name   *string
	Limit  int // 0 = no limit
	Offset int
}

// WorkoutFilter specifies criteria for listing workouts.
type WorkoutFilter struct {
	UserID *string
	Limit  int
	Offset int
}

// MediaFilter specifies criteria for listing tracked media.
type MediaFilter struct {
	Kind   *MediaKind
	Limit  int
	Offset int
}

// SeenFilter specifies criteria for listing seen history.
type SeenFilter struct {
	UserID    *string
	MediaID   *int64
	Unmatched bool // only entries with no media match
	Limit     int
	Offset    int
}
