// internal/store/tx_test.go
package store

import (
	"errors"
	"testing"
	"time"

	"github.com/vmunix/logbook/pkg/fitness"
)

func TestTx_Commit(t *testing.T) {
	store := NewStore(setupTestDB(t))
	seedExercise(t, store, "bench", fitness.ExerciseLotRepsAndWeight)

	tx, err := store.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	w := sampleWorkout("w1", "u1", time.Now())
	if err := tx.AddWorkout(w); err != nil {
		t.Fatalf("AddWorkout in tx failed: %v", err)
	}
	if err := tx.PutAggregate(fitness.UpdatedAggregate{UserID: "u1", ExerciseID: "bench", Aggregate: fitness.Aggregate{NumTimesPerformed: 1}}); err != nil {
		t.Fatalf("PutAggregate in tx failed: %v", err)
	}

	// Reads inside the transaction see its writes
	agg, err := tx.Aggregate("u1", "bench")
	if err != nil || agg == nil || agg.NumTimesPerformed != 1 {
		t.Fatalf("Aggregate in tx = %v, %v", agg, err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if _, err := store.GetWorkout("w1"); err != nil {
		t.Fatalf("GetWorkout after commit failed: %v", err)
	}
	agg, err = store.Aggregate("u1", "bench")
	if err != nil || agg == nil {
		t.Fatalf("Aggregate after commit = %v, %v", agg, err)
	}
}

func TestTx_Rollback(t *testing.T) {
	store := NewStore(setupTestDB(t))
	seedExercise(t, store, "bench", fitness.ExerciseLotRepsAndWeight)

	tx, err := store.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if err := tx.AddWorkout(sampleWorkout("w1", "u1", time.Now())); err != nil {
		t.Fatalf("AddWorkout in tx failed: %v", err)
	}
	if err := tx.PutAggregate(fitness.UpdatedAggregate{UserID: "u1", ExerciseID: "bench"}); err != nil {
		t.Fatalf("PutAggregate in tx failed: %v", err)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	// Should NOT be visible outside transaction
	if _, err := store.GetWorkout("w1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after rollback, got %v", err)
	}
	if agg, err := store.Aggregate("u1", "bench"); err != nil || agg != nil {
		t.Errorf("expected no aggregate after rollback, got %v, %v", agg, err)
	}
}

func TestTx_CatalogAndMedia(t *testing.T) {
	store := NewStore(setupTestDB(t))

	tx, err := store.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.AddExercise(&fitness.Exercise{ID: "row", Name: "Row", Lot: fitness.ExerciseLotDistanceAndDuration}); err != nil {
		t.Fatalf("AddExercise in tx failed: %v", err)
	}
	if _, err := tx.Exercise("row"); err != nil {
		t.Fatalf("Exercise in tx failed: %v", err)
	}
	if _, err := tx.GetExercise("row"); err != nil {
		t.Fatalf("GetExercise in tx failed: %v", err)
	}
	if _, total, err := tx.ListExercises(ExerciseFilter{}); err != nil || total != 1 {
		t.Fatalf("ListExercises in tx = %d, %v", total, err)
	}

	m := &Media{Title: "Dark", Kind: MediaKindSeries}
	if err := tx.AddMedia(m); err != nil {
		t.Fatalf("AddMedia in tx failed: %v", err)
	}
	if err := tx.AddSeen(&SeenEntry{UserID: "u1", MediaID: &m.ID, RawTitle: "Dark", BaseTitle: "Dark", Confidence: "high", Score: 1}); err != nil {
		t.Fatalf("AddSeen in tx failed: %v", err)
	}
}
