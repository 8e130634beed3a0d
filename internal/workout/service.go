// Package workout commits workouts: it runs the fitness engine inside a store
// transaction, persists the workout and every updated aggregate atomically,
// and publishes the resulting events.
package workout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vmunix/logbook/internal/events"
	"github.com/vmunix/logbook/internal/store"
	"github.com/vmunix/logbook/pkg/fitness"
)

// Service commits workouts and manages the exercise catalog.
type Service struct {
	store  *store.Store
	bus    events.Publisher
	prefs  fitness.Preferences
	logger *slog.Logger
	locks  keyedMutex
	newID  func() string
}

// NewService creates a workout service. bus may be nil to disable events.
func NewService(st *store.Store, bus events.Publisher, prefs fitness.Preferences, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		bus:    bus,
		prefs:  prefs,
		logger: logger.With("component", "workout"),
		newID:  uuid.NewString,
	}
}

// Commit finalizes and persists a workout. An empty in.ID is replaced with a
// new UUID. Commits for the same user are serialised; catalog and aggregate
// reads and all writes share one transaction, so a failure persists nothing.
func (s *Service) Commit(ctx context.Context, in fitness.WorkoutInput) (*fitness.Workout, error) {
	if in.ID == "" {
		in.ID = s.newID()
	}
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", fitness.ErrInvalidWorkout)
	}

	unlock := s.locks.Lock(in.UserID)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, updates, err := s.commitTx(in)
	if err != nil {
		s.logger.Warn("workout commit failed", "workout_id", in.ID, "user_id", in.UserID, "error", err)
		return nil, err
	}

	s.logger.Info("workout committed",
		"workout_id", w.ID,
		"user_id", w.UserID,
		"exercises", len(w.Exercises),
		"personal_bests", w.Summary.Total.PersonalBestsAchieved)

	s.publish(ctx, w, updates)
	return w, nil
}

func (s *Service) commitTx(in fitness.WorkoutInput) (*fitness.Workout, []fitness.UpdatedAggregate, error) {
	tx, err := s.store.Begin()
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	w, updates, err := fitness.CommitWorkout(in, tx, tx, s.prefs)
	if err != nil {
		return nil, nil, fmt.Errorf("commit workout %s: %w", in.ID, err)
	}

	if err := tx.AddWorkout(w); err != nil {
		return nil, nil, err
	}
	for _, u := range updates {
		if err := tx.PutAggregate(u); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return w, updates, nil
}

func (s *Service) publish(ctx context.Context, w *fitness.Workout, updates []fitness.UpdatedAggregate) {
	if s.bus == nil {
		return
	}

	ids := make([]string, len(updates))
	for i, u := range updates {
		ids[i] = u.ExerciseID
	}
	s.emit(ctx, &events.WorkoutCommitted{
		BaseEvent:             events.NewBaseEvent(events.EventWorkoutCommitted, events.EntityWorkout, w.ID),
		UserID:                w.UserID,
		Name:                  w.Name,
		ExerciseIDs:           ids,
		PersonalBestsAchieved: w.Summary.Total.PersonalBestsAchieved,
	})

	for _, ex := range w.Exercises {
		for i, set := range ex.Sets {
			for _, pb := range set.PersonalBests {
				value := ""
				if v := set.Statistic.Value(pb); v != nil {
					value = v.String()
				}
				s.emit(ctx, &events.PersonalBestAchieved{
					BaseEvent:    events.NewBaseEvent(events.EventPersonalBestAchieved, events.EntityExercise, ex.ExerciseID),
					UserID:       w.UserID,
					WorkoutID:    w.ID,
					ExerciseName: ex.ExerciseName,
					Dimension:    string(pb),
					SetIdx:       i,
					Value:        value,
				})
			}
		}
	}
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if err := s.bus.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish event", "type", e.EventType(), "entity_id", e.EntityID(), "error", err)
	}
}

// Get returns a committed workout.
func (s *Service) Get(id string) (*fitness.Workout, error) {
	return s.store.GetWorkout(id)
}

// List returns a user's workouts, newest first.
func (s *Service) List(userID string, limit int) ([]*fitness.Workout, int, error) {
	return s.store.ListWorkouts(store.WorkoutFilter{UserID: &userID, Limit: limit})
}

// AddExercise adds an exercise to the catalog.
func (s *Service) AddExercise(ctx context.Context, e fitness.Exercise) error {
	if err := s.store.AddExercise(&e); err != nil {
		return err
	}
	s.logger.Info("exercise added", "exercise_id", e.ID, "lot", e.Lot)
	if s.bus != nil {
		s.emit(ctx, &events.ExerciseAdded{
			BaseEvent: events.NewBaseEvent(events.EventExerciseAdded, events.EntityExercise, e.ID),
			Name:      e.Name,
			Lot:       string(e.Lot),
		})
	}
	return nil
}

// Exercises lists the catalog.
func (s *Service) Exercises(f store.ExerciseFilter) ([]fitness.Exercise, int, error) {
	return s.store.ListExercises(f)
}

// Progress returns a user's aggregate for one exercise, or nil if the user
// has never performed it. Unknown exercises return an error.
func (s *Service) Progress(userID, exerciseID string) (*fitness.Exercise, *fitness.Aggregate, error) {
	e, err := s.store.GetExercise(exerciseID)
	if err != nil {
		return nil, nil, err
	}
	agg, err := s.store.Aggregate(userID, exerciseID)
	if err != nil {
		return nil, nil, err
	}
	return e, agg, nil
}
