// internal/store/testutil_test.go
package store

import (
	"database/sql"
	"testing"

	"github.com/vmunix/logbook/pkg/fitness"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedExercise(t *testing.T, s *Store, id string, lot fitness.ExerciseLot) {
	t.Helper()
	if err := s.AddExercise(&fitness.Exercise{ID: id, Name: "Exercise " + id, Lot: lot}); err != nil {
		t.Fatalf("AddExercise(%s): %v", id, err)
	}
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}
