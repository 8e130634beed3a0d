package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmunix/logbook/pkg/fitness"
)

const workoutColumns = "id, user_id, name, start_time, end_time, exercises, summary"

func addWorkout(q querier, w *fitness.Workout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("encode workout %s exercises: %w", w.ID, err)
	}
	summary, err := json.Marshal(w.Summary)
	if err != nil {
		return fmt.Errorf("encode workout %s summary: %w", w.ID, err)
	}
	_, err = q.Exec(`
		INSERT INTO workouts (id, user_id, name, start_time, end_time, exercises, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, w.Name, w.StartTime, w.EndTime, string(exercises), string(summary), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert workout %s: %w", w.ID, mapSQLiteError(err))
	}
	return nil
}

// AddWorkout inserts a finalized workout.
// Returns ErrDuplicate if the id already exists.
func (s *Store) AddWorkout(w *fitness.Workout) error { return addWorkout(s.db, w) }

// AddWorkout inserts a finalized workout within a transaction.
func (t *Tx) AddWorkout(w *fitness.Workout) error { return addWorkout(t.tx, w) }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(r rowScanner) (*fitness.Workout, error) {
	w := &fitness.Workout{}
	var exercises, summary string
	if err := r.Scan(&w.ID, &w.UserID, &w.Name, &w.StartTime, &w.EndTime, &exercises, &summary); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(exercises), &w.Exercises); err != nil {
		return nil, fmt.Errorf("decode workout %s exercises: %w", w.ID, err)
	}
	if err := json.Unmarshal([]byte(summary), &w.Summary); err != nil {
		return nil, fmt.Errorf("decode workout %s summary: %w", w.ID, err)
	}
	return w, nil
}

func getWorkout(q querier, id string) (*fitness.Workout, error) {
	w, err := scanWorkout(q.QueryRow("SELECT "+workoutColumns+" FROM workouts WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get workout %s: %w", id, mapSQLiteError(err))
	}
	return w, nil
}

// GetWorkout retrieves a workout by id.
// Returns ErrNotFound if the workout does not exist.
func (s *Store) GetWorkout(id string) (*fitness.Workout, error) { return getWorkout(s.db, id) }

// GetWorkout retrieves a workout by id within a transaction.
func (t *Tx) GetWorkout(id string) (*fitness.Workout, error) { return getWorkout(t.tx, id) }

func listWorkouts(q querier, f WorkoutFilter) ([]*fitness.Workout, int, error) {
	var conditions []string
	var args []any

	if f.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *f.UserID)
	}
	whereClause := where(conditions)

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM workouts "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count workouts: %w", err)
	}

	rows, err := q.Query(page("SELECT "+workoutColumns+" FROM workouts "+whereClause+" ORDER BY start_time DESC, id", f.Limit, f.Offset), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list workouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*fitness.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan workout: %w", err)
		}
		results = append(results, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate workouts: %w", err)
	}
	return results, total, nil
}

// ListWorkouts returns workouts matching the filter, newest first.
// Returns (results, totalCount, error).
func (s *Store) ListWorkouts(f WorkoutFilter) ([]*fitness.Workout, int, error) {
	return listWorkouts(s.db, f)
}
