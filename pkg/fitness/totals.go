package fitness

import "github.com/shopspring/decimal"

// Totals is an additive workout or exercise aggregate.
type Totals struct {
	PersonalBestsAchieved int             `json:"personal_bests_achieved"`
	Weight                decimal.Decimal `json:"weight"` // sum of weight * reps
	Reps                  decimal.Decimal `json:"reps"`
	Distance              decimal.Decimal `json:"distance"`
	Duration              decimal.Decimal `json:"duration"`
	RestTime              int             `json:"rest_time"` // seconds
}

// Add returns t + o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		PersonalBestsAchieved: t.PersonalBestsAchieved + o.PersonalBestsAchieved,
		Weight:                t.Weight.Add(o.Weight),
		Reps:                  t.Reps.Add(o.Reps),
		Distance:              t.Distance.Add(o.Distance),
		Duration:              t.Duration.Add(o.Duration),
		RestTime:              t.RestTime + o.RestTime,
	}
}

// Equal compares numerically, so 1.0 equals 1.
func (t Totals) Equal(o Totals) bool {
	return t.PersonalBestsAchieved == o.PersonalBestsAchieved &&
		t.Weight.Equal(o.Weight) &&
		t.Reps.Equal(o.Reps) &&
		t.Distance.Equal(o.Distance) &&
		t.Duration.Equal(o.Duration) &&
		t.RestTime == o.RestTime
}

// SumTotals adds all totals together.
func SumTotals(ts ...Totals) Totals {
	var sum Totals
	for _, t := range ts {
		sum = sum.Add(t)
	}
	return sum
}

// addSet accumulates one set's raw metrics.
func (t Totals) addSet(s SetStatistic) Totals {
	if s.Reps != nil {
		t.Reps = t.Reps.Add(*s.Reps)
		if s.Weight != nil {
			t.Weight = t.Weight.Add(s.Weight.Mul(*s.Reps))
		}
	}
	if s.Duration != nil {
		t.Duration = t.Duration.Add(*s.Duration)
	}
	if s.Distance != nil {
		t.Distance = t.Distance.Add(*s.Distance)
	}
	return t
}
