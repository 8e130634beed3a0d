package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/vmunix/logbook/pkg/fitness"
)

func addExercise(q querier, e *fitness.Exercise) error {
	if e.ID == "" || e.Name == "" {
		return fmt.Errorf("insert exercise: id and name required: %w", ErrConstraint)
	}
	if !e.Lot.Valid() {
		return fmt.Errorf("insert exercise %s: unknown lot %q: %w", e.ID, e.Lot, ErrConstraint)
	}
	_, err := q.Exec(`
		INSERT INTO exercises (id, name, lot, created_at)
		VALUES (?, ?, ?, ?)`,
		e.ID, e.Name, e.Lot, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert exercise %s: %w", e.ID, mapSQLiteError(err))
	}
	return nil
}

// AddExercise inserts a catalog exercise.
// Returns ErrDuplicate if the id or name is taken.
func (s *Store) AddExercise(e *fitness.Exercise) error { return addExercise(s.db, e) }

// AddExercise inserts a catalog exercise within a transaction.
func (t *Tx) AddExercise(e *fitness.Exercise) error { return addExercise(t.tx, e) }

func getExercise(q querier, id string) (*fitness.Exercise, error) {
	e := &fitness.Exercise{}
	err := q.QueryRow(`SELECT id, name, lot FROM exercises WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Lot)
	if err != nil {
		return nil, fmt.Errorf("get exercise %s: %w", id, mapSQLiteError(err))
	}
	return e, nil
}

// GetExercise retrieves a catalog exercise by id.
// Returns ErrNotFound if the exercise does not exist.
func (s *Store) GetExercise(id string) (*fitness.Exercise, error) { return getExercise(s.db, id) }

// GetExercise retrieves a catalog exercise by id within a transaction.
func (t *Tx) GetExercise(id string) (*fitness.Exercise, error) { return getExercise(t.tx, id) }

// catalogExercise adapts getExercise to fitness.Catalog: a missing row
// matches both fitness.ErrExerciseNotFound and ErrNotFound.
func catalogExercise(q querier, id string) (fitness.Exercise, error) {
	e, err := getExercise(q, id)
	if errors.Is(err, ErrNotFound) {
		return fitness.Exercise{}, fmt.Errorf("%w: %s: %w", fitness.ErrExerciseNotFound, id, ErrNotFound)
	}
	if err != nil {
		return fitness.Exercise{}, err
	}
	return *e, nil
}

// Exercise implements fitness.Catalog.
func (s *Store) Exercise(id string) (fitness.Exercise, error) { return catalogExercise(s.db, id) }

// Exercise implements fitness.Catalog within a transaction.
func (t *Tx) Exercise(id string) (fitness.Exercise, error) { return catalogExercise(t.tx, id) }

func listExercises(q querier, f ExerciseFilter) ([]fitness.Exercise, int, error) {
	var conditions []string
	var args []any

	if f.Lot != nil {
		conditions = append(conditions, "lot = ?")
		args = append(args, *f.Lot)
	}
	if f.Name != nil {
		conditions = append(conditions, "name = ?")
		args = append(args, *f.Name)
	}
	whereClause := where(conditions)

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM exercises "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count exercises: %w", err)
	}

	rows, err := q.Query(page("SELECT id, name, lot FROM exercises "+whereClause+" ORDER BY name", f.Limit, f.Offset), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list exercises: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []fitness.Exercise
	for rows.Next() {
		var e fitness.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Lot); err != nil {
			return nil, 0, fmt.Errorf("scan exercise: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate exercises: %w", err)
	}
	return results, total, nil
}

// ListExercises returns catalog exercises matching the filter, ordered by name.
// Returns (results, totalCount, error).
func (s *Store) ListExercises(f ExerciseFilter) ([]fitness.Exercise, int, error) {
	return listExercises(s.db, f)
}

// ListExercises returns catalog exercises matching the filter within a transaction.
func (t *Tx) ListExercises(f ExerciseFilter) ([]fitness.Exercise, int, error) {
	return listExercises(t.tx, f)
}

func deleteExercise(q querier, id string) error {
	if _, err := q.Exec("DELETE FROM exercises WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete exercise %s: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteExercise removes a catalog exercise and every aggregate for it.
// This operation is idempotent.
func (s *Store) DeleteExercise(id string) error { return deleteExercise(s.db, id) }
