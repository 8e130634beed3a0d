package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vmunix/logbook/pkg/fitness"
)

// UserExercise is the persisted aggregate for one (user, exercise) pair.
type UserExercise struct {
	UserID     string
	ExerciseID string
	Aggregate  fitness.Aggregate
	UpdatedAt  time.Time
}

func getAggregate(q querier, userID, exerciseID string) (*fitness.Aggregate, error) {
	var raw string
	err := q.QueryRow(`
		SELECT aggregate FROM user_exercises WHERE user_id = ? AND exercise_id = ?`,
		userID, exerciseID,
	).Scan(&raw)
	if err != nil {
		err = mapSQLiteError(err)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get aggregate %s/%s: %w", userID, exerciseID, err)
	}

	var agg fitness.Aggregate
	if err := json.Unmarshal([]byte(raw), &agg); err != nil {
		return nil, fmt.Errorf("decode aggregate %s/%s: %w", userID, exerciseID, err)
	}
	return &agg, nil
}

// Aggregate implements fitness.AggregateSource.
// Returns nil, nil if the user has never performed the exercise.
func (s *Store) Aggregate(userID, exerciseID string) (*fitness.Aggregate, error) {
	return getAggregate(s.db, userID, exerciseID)
}

// Aggregate implements fitness.AggregateSource within a transaction.
func (t *Tx) Aggregate(userID, exerciseID string) (*fitness.Aggregate, error) {
	return getAggregate(t.tx, userID, exerciseID)
}

func putAggregate(q querier, u fitness.UpdatedAggregate) error {
	payload, err := json.Marshal(u.Aggregate)
	if err != nil {
		return fmt.Errorf("encode aggregate %s/%s: %w", u.UserID, u.ExerciseID, err)
	}
	_, err = q.Exec(`
		INSERT INTO user_exercises (user_id, exercise_id, aggregate, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, exercise_id) DO UPDATE SET
			aggregate = excluded.aggregate,
			updated_at = excluded.updated_at`,
		u.UserID, u.ExerciseID, string(payload), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("put aggregate %s/%s: %w", u.UserID, u.ExerciseID, mapSQLiteError(err))
	}
	return nil
}

// PutAggregate replaces the aggregate for a (user, exercise) pair.
func (s *Store) PutAggregate(u fitness.UpdatedAggregate) error { return putAggregate(s.db, u) }

// PutAggregate replaces the aggregate within a transaction.
func (t *Tx) PutAggregate(u fitness.UpdatedAggregate) error { return putAggregate(t.tx, u) }

func listUserExercises(q querier, userID string) ([]UserExercise, error) {
	rows, err := q.Query(`
		SELECT user_id, exercise_id, aggregate, updated_at
		FROM user_exercises WHERE user_id = ?
		ORDER BY exercise_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user exercises: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []UserExercise
	for rows.Next() {
		var ue UserExercise
		var raw string
		if err := rows.Scan(&ue.UserID, &ue.ExerciseID, &raw, &ue.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user exercise: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &ue.Aggregate); err != nil {
			return nil, fmt.Errorf("decode aggregate %s/%s: %w", ue.UserID, ue.ExerciseID, err)
		}
		results = append(results, ue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user exercises: %w", err)
	}
	return results, nil
}

// ListUserExercises returns every aggregate recorded for a user.
func (s *Store) ListUserExercises(userID string) ([]UserExercise, error) {
	return listUserExercises(s.db, userID)
}
