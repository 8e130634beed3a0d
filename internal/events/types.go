package events

// Event types.
const (
	EventExerciseAdded        = "exercise.added"
	EventWorkoutCommitted     = "workout.committed"
	EventPersonalBestAchieved = "personal_best.achieved"
	EventMediaAdded           = "media.added"
	EventTitleSeen            = "title.seen"
)

// Entity types.
const (
	EntityWorkout  = "workout"
	EntityExercise = "exercise"
	EntityMedia    = "media"
	EntitySeen     = "seen"
)
