package fitness_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/logbook/pkg/fitness"
	"github.com/vmunix/logbook/pkg/fitness/mocks"
)

type memoryCatalog map[string]fitness.Exercise

func (c memoryCatalog) Exercise(id string) (fitness.Exercise, error) {
	e, ok := c[id]
	if !ok {
		return fitness.Exercise{}, fmt.Errorf("%w: %s", fitness.ErrExerciseNotFound, id)
	}
	return e, nil
}

type memorySource map[string]*fitness.Aggregate

func (m memorySource) Aggregate(userID, exerciseID string) (*fitness.Aggregate, error) {
	return m[userID+"/"+exerciseID], nil
}

func (m memorySource) apply(updates []fitness.UpdatedAggregate) {
	for _, u := range updates {
		agg := u.Aggregate
		m[u.UserID+"/"+u.ExerciseID] = &agg
	}
}

var catalog = memoryCatalog{
	"bench":  {ID: "bench", Name: "Bench Press", Lot: fitness.ExerciseLotRepsAndWeight},
	"plank":  {ID: "plank", Name: "Plank", Lot: fitness.ExerciseLotDuration},
	"run":    {ID: "run", Name: "Running", Lot: fitness.ExerciseLotDistanceAndDuration},
	"pushup": {ID: "pushup", Name: "Push Up", Lot: fitness.ExerciseLotReps},
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func assertDecimal(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	require.NotNil(t, got, "want %s, got nil", want)
	assert.True(t, decimal.RequireFromString(want).Equal(*got), "want %s, got %s", want, got)
}

func assertDecimalValue(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assertDecimal(t, want, &got)
}

func liftSet(reps, weight string) fitness.SetInput {
	return fitness.SetInput{
		Lot:       fitness.SetLotNormal,
		Statistic: fitness.SetStatistic{Reps: dec(reps), Weight: dec(weight)},
	}
}

func workout(id string, exercises ...fitness.ExerciseInput) fitness.WorkoutInput {
	return fitness.WorkoutInput{ID: id, UserID: "u1", Name: "Session " + id, Exercises: exercises}
}

var metric = fitness.Preferences{UnitSystem: fitness.UnitSystemMetric, SaveHistory: 5}

func TestCommitWorkout_FirstPerformance(t *testing.T) {
	source := memorySource{}
	in := workout("w1", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("10", "100")}})

	w, updates, err := fitness.CommitWorkout(in, catalog, source, metric)
	require.NoError(t, err)

	require.Len(t, w.Exercises, 1)
	ex := w.Exercises[0]
	assert.Equal(t, "Bench Press", ex.ExerciseName)
	require.Len(t, ex.Sets, 1)

	set := ex.Sets[0]
	assert.Equal(t, []fitness.PersonalBest{
		fitness.PersonalBestWeight, fitness.PersonalBestOneRM, fitness.PersonalBestVolume,
	}, set.PersonalBests)
	assertDecimal(t, "1000", set.Statistic.Volume)
	assert.Equal(t, "133.33", set.Statistic.OneRM.StringFixed(2))
	assert.Nil(t, set.Statistic.Pace)

	assert.Equal(t, 1, ex.Total.PersonalBestsAchieved)
	assertDecimalValue(t, "1000", ex.Total.Weight)
	assertDecimalValue(t, "10", ex.Total.Reps)
	assert.Equal(t, 1, w.Summary.Total.PersonalBestsAchieved)

	require.Len(t, updates, 1)
	agg := updates[0].Aggregate
	assert.Equal(t, "u1", updates[0].UserID)
	assert.Equal(t, "bench", updates[0].ExerciseID)
	assert.Equal(t, 1, agg.NumTimesPerformed)
	assert.Equal(t, []fitness.HistoryEntry{{WorkoutID: "w1", Idx: 0}}, agg.History)
	require.Len(t, agg.PersonalBests, 3)
	for _, h := range agg.PersonalBests {
		require.Len(t, h.Sets, 1, h.Lot)
		assert.Equal(t, "w1", h.Sets[0].WorkoutID)
		assert.Equal(t, 0, h.Sets[0].SetIdx)
	}
	assert.True(t, agg.LifetimeStats.Equal(ex.Total))
}

func TestCommitWorkout_NoPersonalBestWhenNotBetter(t *testing.T) {
	source := memorySource{}
	first := workout("w1", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("10", "100")}})
	_, updates, err := fitness.CommitWorkout(first, catalog, source, metric)
	require.NoError(t, err)
	source.apply(updates)

	second := workout("w2", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("8", "90")}})
	w, updates, err := fitness.CommitWorkout(second, catalog, source, metric)
	require.NoError(t, err)

	assert.Empty(t, w.Exercises[0].Sets[0].PersonalBests)
	assert.Equal(t, 0, w.Summary.Total.PersonalBestsAchieved)

	agg := updates[0].Aggregate
	assert.Equal(t, 2, agg.NumTimesPerformed)
	assert.Equal(t, "w2", agg.History[0].WorkoutID)
	assert.Equal(t, "w1", agg.History[1].WorkoutID)
	for _, h := range agg.PersonalBests {
		assert.Len(t, h.Sets, 1, h.Lot)
	}
	assertDecimalValue(t, "1720", agg.LifetimeStats.Weight)
	assertDecimalValue(t, "18", agg.LifetimeStats.Reps)
}

func TestCommitWorkout_EqualValueIsNotAPersonalBest(t *testing.T) {
	source := memorySource{}
	in := workout("w1", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("10", "100")}})
	_, updates, err := fitness.CommitWorkout(in, catalog, source, metric)
	require.NoError(t, err)
	source.apply(updates)

	again := workout("w2", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("10", "100.0")}})
	w, _, err := fitness.CommitWorkout(again, catalog, source, metric)
	require.NoError(t, err)
	assert.Empty(t, w.Exercises[0].Sets[0].PersonalBests)
}

func TestCommitWorkout_SingleDimensionPersonalBest(t *testing.T) {
	source := memorySource{}
	first := workout("w1", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("10", "100")}})
	_, updates, err := fitness.CommitWorkout(first, catalog, source, metric)
	require.NoError(t, err)
	source.apply(updates)

	// heavier but fewer reps: weight record only
	second := workout("w2", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("5", "110")}})
	w, updates, err := fitness.CommitWorkout(second, catalog, source, metric)
	require.NoError(t, err)

	assert.Equal(t, []fitness.PersonalBest{fitness.PersonalBestWeight}, w.Exercises[0].Sets[0].PersonalBests)
	assert.Equal(t, 1, w.Summary.Total.PersonalBestsAchieved)

	for _, h := range updates[0].Aggregate.PersonalBests {
		switch h.Lot {
		case fitness.PersonalBestWeight:
			require.Len(t, h.Sets, 2)
			assert.Equal(t, "w2", h.Sets[0].WorkoutID)
			assert.Equal(t, "w1", h.Sets[1].WorkoutID)
		default:
			assert.Len(t, h.Sets, 1, h.Lot)
		}
	}
}

func TestCommitWorkout_TiedSetsFirstWins(t *testing.T) {
	in := workout("w1", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{
		liftSet("5", "80"), liftSet("5", "80"),
	}})
	w, _, err := fitness.CommitWorkout(in, catalog, memorySource{}, metric)
	require.NoError(t, err)

	sets := w.Exercises[0].Sets
	assert.Len(t, sets[0].PersonalBests, 3)
	assert.Empty(t, sets[1].PersonalBests)
	assert.Equal(t, 1, w.Exercises[0].Total.PersonalBestsAchieved)
}

func TestCommitWorkout_PersonalBestsAcrossSets(t *testing.T) {
	// set 0 holds the heaviest weight, set 1 the largest volume
	in := workout("w1", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{
		liftSet("1", "120"), liftSet("12", "80"),
	}})
	w, _, err := fitness.CommitWorkout(in, catalog, memorySource{}, metric)
	require.NoError(t, err)

	sets := w.Exercises[0].Sets
	assert.Contains(t, sets[0].PersonalBests, fitness.PersonalBestWeight)
	assert.Contains(t, sets[1].PersonalBests, fitness.PersonalBestVolume)
	assert.Equal(t, 2, w.Exercises[0].Total.PersonalBestsAchieved)
}

func TestCommitWorkout_HistoryBounded(t *testing.T) {
	source := memorySource{}
	prefs := fitness.Preferences{UnitSystem: fitness.UnitSystemMetric, SaveHistory: 2}

	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("w%d", i)
		in := workout(id, fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{
			liftSet("5", fmt.Sprintf("%d", 100+i*5)),
		}})
		_, updates, err := fitness.CommitWorkout(in, catalog, source, prefs)
		require.NoError(t, err)
		source.apply(updates)
	}

	agg := source["u1/bench"]
	require.NotNil(t, agg)
	assert.Equal(t, 5, agg.NumTimesPerformed)
	assert.Len(t, agg.History, 5)
	for _, h := range agg.PersonalBests {
		require.Len(t, h.Sets, 2, h.Lot)
		assert.Equal(t, "w5", h.Sets[0].WorkoutID)
		assert.Equal(t, "w4", h.Sets[1].WorkoutID)
	}
}

func TestCommitWorkout_SaveHistoryFloor(t *testing.T) {
	source := memorySource{}
	prefs := fitness.Preferences{SaveHistory: 0}

	for i, weight := range []string{"100", "110"} {
		in := workout(fmt.Sprintf("w%d", i), fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("5", weight)}})
		_, updates, err := fitness.CommitWorkout(in, catalog, source, prefs)
		require.NoError(t, err)
		source.apply(updates)
	}
	for _, h := range source["u1/bench"].PersonalBests {
		assert.Len(t, h.Sets, 1, h.Lot)
	}
}

func TestCommitWorkout_ImperialUnits(t *testing.T) {
	prefs := fitness.Preferences{UnitSystem: fitness.UnitSystemImperial, SaveHistory: 5}
	in := workout("w1",
		fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("1", "100")}},
		fitness.ExerciseInput{ExerciseID: "run", Sets: []fitness.SetInput{{
			Statistic: fitness.SetStatistic{Distance: dec("2"), Duration: dec("20")},
		}}},
	)
	w, _, err := fitness.CommitWorkout(in, catalog, memorySource{}, prefs)
	require.NoError(t, err)

	assertDecimal(t, "45.359", w.Exercises[0].Sets[0].Statistic.Weight)
	assertDecimal(t, "3.21868", w.Exercises[1].Sets[0].Statistic.Distance)
	assertDecimalValue(t, "3.21868", w.Summary.Total.Distance)
}

func TestCommitWorkout_DistanceAndDuration(t *testing.T) {
	in := workout("w1", fitness.ExerciseInput{ExerciseID: "run", Sets: []fitness.SetInput{
		{Statistic: fitness.SetStatistic{Distance: dec("10"), Duration: dec("50")}},
		{Statistic: fitness.SetStatistic{Distance: dec("5"), Duration: dec("20")}},
	}})
	w, _, err := fitness.CommitWorkout(in, catalog, memorySource{}, metric)
	require.NoError(t, err)

	sets := w.Exercises[0].Sets
	assertDecimal(t, "0.2", sets[0].Statistic.Pace)
	assertDecimal(t, "0.25", sets[1].Statistic.Pace)
	assert.Equal(t, []fitness.PersonalBest{fitness.PersonalBestTime}, sets[0].PersonalBests)
	assert.Equal(t, []fitness.PersonalBest{fitness.PersonalBestPace}, sets[1].PersonalBests)

	total := w.Exercises[0].Total
	assertDecimalValue(t, "15", total.Distance)
	assertDecimalValue(t, "70", total.Duration)
	assert.Equal(t, 2, total.PersonalBestsAchieved)
}

func TestCommitWorkout_MissingStatisticsNoRecord(t *testing.T) {
	in := workout("w1", fitness.ExerciseInput{ExerciseID: "plank", Sets: []fitness.SetInput{
		{Statistic: fitness.SetStatistic{Reps: dec("3")}},
	}})
	w, updates, err := fitness.CommitWorkout(in, catalog, memorySource{}, metric)
	require.NoError(t, err)

	assert.Empty(t, w.Exercises[0].Sets[0].PersonalBests)
	assert.Equal(t, 0, w.Summary.Total.PersonalBestsAchieved)
	assert.Empty(t, updates[0].Aggregate.PersonalBests)
	assert.Equal(t, 1, updates[0].Aggregate.NumTimesPerformed)
}

func TestCommitWorkout_RepsLot(t *testing.T) {
	in := workout("w1", fitness.ExerciseInput{ExerciseID: "pushup", Sets: []fitness.SetInput{
		{Statistic: fitness.SetStatistic{Reps: dec("20")}},
		{Statistic: fitness.SetStatistic{Reps: dec("25")}},
	}})
	w, _, err := fitness.CommitWorkout(in, catalog, memorySource{}, metric)
	require.NoError(t, err)

	sets := w.Exercises[0].Sets
	assert.Empty(t, sets[0].PersonalBests)
	assert.Equal(t, []fitness.PersonalBest{fitness.PersonalBestReps}, sets[1].PersonalBests)
	assertDecimalValue(t, "45", w.Summary.Total.Reps)
	assertDecimalValue(t, "0", w.Summary.Total.Weight)
}

func TestCommitWorkout_SameExerciseTwice(t *testing.T) {
	in := workout("w1",
		fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("5", "100")}},
		fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("5", "90")}},
	)
	w, updates, err := fitness.CommitWorkout(in, catalog, memorySource{}, metric)
	require.NoError(t, err)

	assert.Len(t, w.Exercises[0].Sets[0].PersonalBests, 3)
	assert.Empty(t, w.Exercises[1].Sets[0].PersonalBests)

	require.Len(t, updates, 1)
	agg := updates[0].Aggregate
	assert.Equal(t, 2, agg.NumTimesPerformed)
	assert.Equal(t, []fitness.HistoryEntry{{WorkoutID: "w1", Idx: 1}, {WorkoutID: "w1", Idx: 0}}, agg.History)
	assertDecimalValue(t, "950", agg.LifetimeStats.Weight)
}

func TestCommitWorkout_Summary(t *testing.T) {
	rest := 90
	in := workout("w1",
		fitness.ExerciseInput{ExerciseID: "bench", RestTime: &rest, Sets: []fitness.SetInput{
			liftSet("10", "50"), liftSet("5", "60"), liftSet("15", "50"),
		}},
		fitness.ExerciseInput{ExerciseID: "plank", Sets: []fitness.SetInput{
			{Statistic: fitness.SetStatistic{Duration: dec("2")}},
			{Statistic: fitness.SetStatistic{Duration: dec("2")}},
		}},
	)
	w, _, err := fitness.CommitWorkout(in, catalog, memorySource{}, metric)
	require.NoError(t, err)

	require.Len(t, w.Summary.Exercises, 2)
	bench := w.Summary.Exercises[0]
	assert.Equal(t, 3, bench.NumSets)
	assert.Equal(t, "Bench Press", bench.Name)
	require.NotNil(t, bench.BestSet)
	// 10+50 = 60, 5+60 = 65, 15+50 = 65: the first 65 wins
	assertDecimal(t, "60", bench.BestSet.Statistic.Weight)

	plank := w.Summary.Exercises[1]
	require.NotNil(t, plank.BestSet)
	assertDecimal(t, "2", plank.BestSet.Statistic.Duration)

	assert.Equal(t, 270, w.Exercises[0].Total.RestTime)
	assert.Equal(t, 270, w.Summary.Total.RestTime)
	assertDecimalValue(t, "4", w.Summary.Total.Duration)
	assertDecimalValue(t, "30", w.Summary.Total.Reps)

	want := fitness.SumTotals(w.Exercises[0].Total, w.Exercises[1].Total)
	assert.True(t, want.Equal(w.Summary.Total))
}

func TestCommitWorkout_EmptyExerciseHasNoBestSet(t *testing.T) {
	in := workout("w1", fitness.ExerciseInput{ExerciseID: "bench"})
	w, _, err := fitness.CommitWorkout(in, catalog, memorySource{}, metric)
	require.NoError(t, err)
	assert.Nil(t, w.Summary.Exercises[0].BestSet)
	assert.Equal(t, 0, w.Summary.Exercises[0].NumSets)
}

func TestCommitWorkout_PriorSnapshotUntouched(t *testing.T) {
	prior := &fitness.Aggregate{
		NumTimesPerformed: 1,
		History:           []fitness.HistoryEntry{{WorkoutID: "w0"}},
		PersonalBests: []fitness.BestSetHistory{{
			Lot: fitness.PersonalBestWeight,
			Sets: []fitness.BestSet{{WorkoutID: "w0", Data: fitness.SetRecord{
				Statistic: fitness.SetStatistic{Weight: dec("50"), Reps: dec("5")},
			}}},
		}},
	}
	source := memorySource{"u1/bench": prior}

	in := workout("w1", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("5", "60")}})
	_, updates, err := fitness.CommitWorkout(in, catalog, source, metric)
	require.NoError(t, err)

	assert.Equal(t, 1, prior.NumTimesPerformed)
	assert.Len(t, prior.History, 1)
	assert.Len(t, prior.PersonalBests, 1)
	assert.Len(t, prior.PersonalBests[0].Sets, 1)
	assert.Equal(t, 2, updates[0].Aggregate.NumTimesPerformed)
}

func TestCommitWorkout_InvalidInput(t *testing.T) {
	_, _, err := fitness.CommitWorkout(fitness.WorkoutInput{UserID: "u1"}, catalog, memorySource{}, metric)
	assert.ErrorIs(t, err, fitness.ErrInvalidWorkout)

	_, _, err = fitness.CommitWorkout(fitness.WorkoutInput{ID: "w1"}, catalog, memorySource{}, metric)
	assert.ErrorIs(t, err, fitness.ErrInvalidWorkout)
}

func TestCommitWorkout_UnknownExerciseAbortsCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	cat := mocks.NewMockCatalog(ctrl)
	source := mocks.NewMockAggregateSource(ctrl)

	cat.EXPECT().Exercise("bench").Return(fitness.Exercise{Name: "Bench Press", Lot: fitness.ExerciseLotRepsAndWeight}, nil)
	source.EXPECT().Aggregate("u1", "bench").Return(nil, nil)
	cat.EXPECT().Exercise("ghost").Return(fitness.Exercise{}, fmt.Errorf("%w: ghost", fitness.ErrExerciseNotFound))

	in := workout("w1",
		fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("5", "100")}},
		fitness.ExerciseInput{ExerciseID: "ghost"},
	)
	w, updates, err := fitness.CommitWorkout(in, cat, source, metric)
	require.Error(t, err)
	assert.ErrorIs(t, err, fitness.ErrExerciseNotFound)
	assert.Contains(t, err.Error(), "ghost")
	assert.Nil(t, w)
	assert.Nil(t, updates)
}

func TestCommitWorkout_AggregateLookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	cat := mocks.NewMockCatalog(ctrl)
	source := mocks.NewMockAggregateSource(ctrl)

	lookupErr := errors.New("disk on fire")
	cat.EXPECT().Exercise("bench").Return(fitness.Exercise{ID: "bench", Lot: fitness.ExerciseLotRepsAndWeight}, nil)
	source.EXPECT().Aggregate("u1", "bench").Return(nil, lookupErr)

	in := workout("w1", fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("5", "100")}})
	_, _, err := fitness.CommitWorkout(in, cat, source, metric)
	assert.ErrorIs(t, err, lookupErr)
}

func TestCommitWorkout_LoadsEachAggregateOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	cat := mocks.NewMockCatalog(ctrl)
	source := mocks.NewMockAggregateSource(ctrl)

	cat.EXPECT().Exercise("bench").Return(catalog["bench"], nil).Times(2)
	source.EXPECT().Aggregate("u1", "bench").Return(nil, nil).Times(1)

	in := workout("w1",
		fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("5", "100")}},
		fitness.ExerciseInput{ExerciseID: "bench", Sets: []fitness.SetInput{liftSet("5", "100")}},
	)
	_, updates, err := fitness.CommitWorkout(in, cat, source, metric)
	require.NoError(t, err)
	assert.Len(t, updates, 1)
}
