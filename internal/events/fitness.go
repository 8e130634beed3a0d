// internal/events/fitness.go
package events

// ExerciseAdded is emitted when an exercise joins the catalog.
type ExerciseAdded struct {
	BaseEvent
	Name string `json:"name"`
	Lot  string `json:"lot"`
}

// WorkoutCommitted is emitted once a workout and its aggregates are persisted.
type WorkoutCommitted struct {
	BaseEvent
	UserID                string   `json:"user_id"`
	Name                  string   `json:"name"`
	ExerciseIDs           []string `json:"exercise_ids"`
	PersonalBestsAchieved int      `json:"personal_bests_achieved"`
}

// PersonalBestAchieved is emitted for every personal best a committed
// workout set. The entity is the exercise.
type PersonalBestAchieved struct {
	BaseEvent
	UserID       string `json:"user_id"`
	WorkoutID    string `json:"workout_id"`
	ExerciseName string `json:"exercise_name"`
	Dimension    string `json:"dimension"` // weight, one_rm, volume, time, pace, reps
	SetIdx       int    `json:"set_idx"`
	Value        string `json:"value"` // exact decimal
}
