// Package fitness computes workout statistics, totals and personal bests.
//
// The engine is a pure transformation: it reads prior per-(user, exercise)
// aggregates through an AggregateSource and returns replacement values for
// the caller to persist. All arithmetic uses exact decimals.
package fitness

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitSystem is the unit system sets are submitted in.
type UnitSystem string

const (
	UnitSystemMetric   UnitSystem = "metric"
	UnitSystemImperial UnitSystem = "imperial"
)

// SetLot classifies the exertion context of a set.
type SetLot string

const (
	SetLotNormal  SetLot = "normal"
	SetLotWarmUp  SetLot = "warm_up"
	SetLotDrop    SetLot = "drop"
	SetLotFailure SetLot = "failure"
)

// ExerciseLot classifies what an exercise measures.
type ExerciseLot string

const (
	ExerciseLotDuration            ExerciseLot = "duration"
	ExerciseLotDistanceAndDuration ExerciseLot = "distance_and_duration"
	ExerciseLotReps                ExerciseLot = "reps"
	ExerciseLotRepsAndWeight       ExerciseLot = "reps_and_weight"
)

// Valid reports whether l is a known exercise lot.
func (l ExerciseLot) Valid() bool {
	switch l {
	case ExerciseLotDuration, ExerciseLotDistanceAndDuration, ExerciseLotReps, ExerciseLotRepsAndWeight:
		return true
	}
	return false
}

// PersonalBests returns the dimensions a personal best can be set along.
func (l ExerciseLot) PersonalBests() []PersonalBest {
	switch l {
	case ExerciseLotDuration:
		return []PersonalBest{PersonalBestTime}
	case ExerciseLotDistanceAndDuration:
		return []PersonalBest{PersonalBestPace, PersonalBestTime}
	case ExerciseLotReps:
		return []PersonalBest{PersonalBestReps}
	case ExerciseLotRepsAndWeight:
		return []PersonalBest{PersonalBestWeight, PersonalBestOneRM, PersonalBestVolume}
	default:
		return nil
	}
}

// PersonalBest is a dimension along which a record can be set.
type PersonalBest string

const (
	PersonalBestWeight PersonalBest = "weight"
	PersonalBestOneRM  PersonalBest = "one_rm"
	PersonalBestVolume PersonalBest = "volume"
	PersonalBestTime   PersonalBest = "time"
	PersonalBestPace   PersonalBest = "pace"
	PersonalBestReps   PersonalBest = "reps"
)

// SetStatistic holds the metrics of one set. Any field may be absent.
// Weight is in kilograms, distance in kilometres, duration in minutes.
type SetStatistic struct {
	Duration *decimal.Decimal `json:"duration,omitempty"`
	Distance *decimal.Decimal `json:"distance,omitempty"`
	Reps     *decimal.Decimal `json:"reps,omitempty"`
	Weight   *decimal.Decimal `json:"weight,omitempty"`
	OneRM    *decimal.Decimal `json:"one_rm,omitempty"`
	Pace     *decimal.Decimal `json:"pace,omitempty"`
	Volume   *decimal.Decimal `json:"volume,omitempty"`
}

// SetRecord is one performed set and the personal bests it broke.
type SetRecord struct {
	Lot           SetLot         `json:"lot"`
	Statistic     SetStatistic   `json:"statistic"`
	PersonalBests []PersonalBest `json:"personal_bests"`
}

func (s SetRecord) clone() SetRecord {
	s.PersonalBests = append([]PersonalBest(nil), s.PersonalBests...)
	return s
}

// BestSet points at the set that holds a record.
type BestSet struct {
	WorkoutID string    `json:"workout_id"`
	SetIdx    int       `json:"set_idx"`
	Data      SetRecord `json:"data"`
}

// BestSetHistory is the most-recent-first record history for one dimension.
// Its length never exceeds the user's save-history preference.
type BestSetHistory struct {
	Lot  PersonalBest `json:"lot"`
	Sets []BestSet    `json:"sets"`
}

// HistoryEntry records one performance of an exercise within a workout.
type HistoryEntry struct {
	WorkoutID string `json:"workout_id"`
	Idx       int    `json:"idx"`
}

// Aggregate is the durable per-(user, exercise) state.
type Aggregate struct {
	NumTimesPerformed int              `json:"num_times_performed"`
	History           []HistoryEntry   `json:"history"`
	LifetimeStats     Totals           `json:"lifetime_stats"`
	PersonalBests     []BestSetHistory `json:"personal_bests"`
}

// clone copies every slice so updates never alias the caller's snapshot.
func (a Aggregate) clone() Aggregate {
	a.History = append([]HistoryEntry(nil), a.History...)
	bests := make([]BestSetHistory, len(a.PersonalBests))
	for i, b := range a.PersonalBests {
		bests[i] = BestSetHistory{Lot: b.Lot, Sets: append([]BestSet(nil), b.Sets...)}
	}
	a.PersonalBests = bests
	return a
}

// Exercise is a catalog definition.
type Exercise struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Lot  ExerciseLot `json:"lot"`
}

// Preferences are the user settings the engine honours.
type Preferences struct {
	UnitSystem  UnitSystem
	SaveHistory int
}

// SetInput is a submitted set.
type SetInput struct {
	Lot       SetLot       `json:"lot"`
	Statistic SetStatistic `json:"statistic"`
}

// ExerciseInput is a submitted exercise with its sets in performed order.
type ExerciseInput struct {
	ExerciseID string     `json:"exercise_id"`
	Sets       []SetInput `json:"sets"`
	Notes      []string   `json:"notes,omitempty"`
	RestTime   *int       `json:"rest_time,omitempty"` // seconds between sets
	Assets     []string   `json:"assets,omitempty"`
}

// WorkoutInput is a submitted workout.
type WorkoutInput struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Exercises []ExerciseInput `json:"exercises"`
}

// ProcessedExercise is one exercise's finalized contribution to a workout.
type ProcessedExercise struct {
	ExerciseID   string      `json:"exercise_id"`
	ExerciseName string      `json:"exercise_name"`
	Lot          ExerciseLot `json:"lot"`
	Sets         []SetRecord `json:"sets"`
	Notes        []string    `json:"notes,omitempty"`
	RestTime     *int        `json:"rest_time,omitempty"`
	Assets       []string    `json:"assets,omitempty"`
	Total        Totals      `json:"total"`
}

// ExerciseSummary is the per-exercise line of a workout summary.
type ExerciseSummary struct {
	NumSets int         `json:"num_sets"`
	Name    string      `json:"name"`
	Lot     ExerciseLot `json:"lot"`
	BestSet *SetRecord  `json:"best_set,omitempty"`
}

// Summary is the workout-level rollup.
type Summary struct {
	Total     Totals            `json:"total"`
	Exercises []ExerciseSummary `json:"exercises"`
}

// Workout is a finalized workout record.
type Workout struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Name      string              `json:"name"`
	StartTime time.Time           `json:"start_time"`
	EndTime   time.Time           `json:"end_time"`
	Exercises []ProcessedExercise `json:"exercises"`
	Summary   Summary             `json:"summary"`
}

// UpdatedAggregate is a replacement aggregate the caller must persist.
type UpdatedAggregate struct {
	UserID     string
	ExerciseID string
	Aggregate  Aggregate
}
