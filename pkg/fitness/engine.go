package fitness

import (
	"errors"
	"fmt"
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

var (
	// ErrExerciseNotFound indicates a submitted exercise id is not in the catalog.
	ErrExerciseNotFound = errors.New("exercise not found")

	// ErrInvalidWorkout indicates the workout input is missing required fields.
	ErrInvalidWorkout = errors.New("invalid workout")
)

// Catalog resolves exercise definitions.
// Exercise returns an error wrapping ErrExerciseNotFound for unknown ids.
type Catalog interface {
	Exercise(id string) (Exercise, error)
}

// AggregateSource reads the prior aggregate for a (user, exercise) pair.
// Aggregate returns nil and no error when the user has never performed it.
type AggregateSource interface {
	Aggregate(userID, exerciseID string) (*Aggregate, error)
}

// DefaultSaveHistory is used when Preferences.SaveHistory is not positive.
const DefaultSaveHistory = 1

// CommitWorkout finalizes a workout. It computes per-set statistics, detects
// personal bests against prior aggregates, and returns the finalized workout
// with a replacement aggregate for every exercise performed, in first-seen
// order. Any catalog or lookup failure aborts the whole commit.
func CommitWorkout(in WorkoutInput, catalog Catalog, source AggregateSource, prefs Preferences) (*Workout, []UpdatedAggregate, error) {
	if in.ID == "" {
		return nil, nil, fmt.Errorf("%w: missing workout id", ErrInvalidWorkout)
	}
	if in.UserID == "" {
		return nil, nil, fmt.Errorf("%w: missing user id", ErrInvalidWorkout)
	}
	limit := prefs.SaveHistory
	if limit < 1 {
		limit = DefaultSaveHistory
	}

	working := make(map[string]*Aggregate)
	var order []string

	processed := make([]ProcessedExercise, 0, len(in.Exercises))
	for idx, ex := range in.Exercises {
		def, err := catalog.Exercise(ex.ExerciseID)
		if err != nil {
			return nil, nil, fmt.Errorf("exercise %q: %w", ex.ExerciseID, err)
		}

		agg, ok := working[ex.ExerciseID]
		if !ok {
			prior, err := source.Aggregate(in.UserID, ex.ExerciseID)
			if err != nil {
				return nil, nil, fmt.Errorf("load aggregate for exercise %q: %w", ex.ExerciseID, err)
			}
			next := Aggregate{}
			if prior != nil {
				next = prior.clone()
			}
			agg = &next
			working[ex.ExerciseID] = agg
			order = append(order, ex.ExerciseID)
		}

		processed = append(processed, processExercise(in.ID, idx, def, ex, agg, prefs.UnitSystem, limit))
	}

	totals := make([]Totals, len(processed))
	for i, p := range processed {
		totals[i] = p.Total
	}

	workout := &Workout{
		ID:        in.ID,
		UserID:    in.UserID,
		Name:      in.Name,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Exercises: processed,
		Summary: Summary{
			Total:     SumTotals(totals...),
			Exercises: summarize(processed),
		},
	}

	updated := make([]UpdatedAggregate, 0, len(order))
	for _, id := range order {
		updated = append(updated, UpdatedAggregate{
			UserID:     in.UserID,
			ExerciseID: id,
			Aggregate:  *working[id],
		})
	}
	return workout, updated, nil
}

// processExercise finalizes one exercise and folds it into agg.
func processExercise(workoutID string, idx int, def Exercise, ex ExerciseInput, agg *Aggregate, units UnitSystem, limit int) ProcessedExercise {
	agg.NumTimesPerformed++
	agg.History = append([]HistoryEntry{{WorkoutID: workoutID, Idx: idx}}, agg.History...)

	var total Totals
	sets := make([]SetRecord, len(ex.Sets))
	for i, in := range ex.Sets {
		stat := in.Statistic.ToMetric(units).WithDerived()
		total = total.addSet(stat)
		sets[i] = SetRecord{Lot: in.Lot, Statistic: stat, PersonalBests: []PersonalBest{}}
	}
	if ex.RestTime != nil {
		total.RestTime = *ex.RestTime * len(sets)
	}

	for _, pb := range def.Lot.PersonalBests() {
		i, value, ok := bestSetIndex(sets, pb)
		if !ok {
			continue
		}
		if prev := previousBest(agg.PersonalBests, pb); prev != nil && !value.GreaterThan(*prev) {
			continue
		}
		if len(sets[i].PersonalBests) == 0 {
			total.PersonalBestsAchieved++
		}
		sets[i].PersonalBests = append(sets[i].PersonalBests, pb)
	}

	for i, s := range sets {
		for _, pb := range s.PersonalBests {
			best := BestSet{WorkoutID: workoutID, SetIdx: i, Data: s.clone()}
			agg.PersonalBests = recordBest(agg.PersonalBests, pb, best, limit)
		}
	}
	agg.LifetimeStats = agg.LifetimeStats.Add(total)

	return ProcessedExercise{
		ExerciseID:   ex.ExerciseID,
		ExerciseName: def.Name,
		Lot:          def.Lot,
		Sets:         sets,
		Notes:        ex.Notes,
		RestTime:     ex.RestTime,
		Assets:       ex.Assets,
		Total:        total,
	}
}

// summarize picks each exercise's best set: the greatest
// duration + distance + reps + weight, first set on ties.
func summarize(exercises []ProcessedExercise) []ExerciseSummary {
	out := make([]ExerciseSummary, 0, len(exercises))
	for _, ex := range exercises {
		s := ExerciseSummary{NumSets: len(ex.Sets), Name: ex.ExerciseName, Lot: ex.Lot}
		for i := range ex.Sets {
			if s.BestSet == nil || ex.Sets[i].Statistic.score().GreaterThan(s.BestSet.Statistic.score()) {
				best := ex.Sets[i].clone()
				s.BestSet = &best
			}
		}
		out = append(out, s)
	}
	return out
}
