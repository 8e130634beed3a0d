package fitness

import "github.com/shopspring/decimal"

var (
	poundsToKilograms = decimal.RequireFromString("0.45359")
	milesToKilometres = decimal.RequireFromString("1.60934")

	// Brzycki: weight * 36 / (37 - reps)
	oneRMFactor     = decimal.NewFromInt(36)
	oneRMRepCeiling = decimal.NewFromInt(37)
)

// OneRM estimates a one-rep max. It is nil when either input is missing,
// when reps >= 37, or when the estimate is not positive.
func OneRM(weight, reps *decimal.Decimal) *decimal.Decimal {
	if weight == nil || reps == nil {
		return nil
	}
	denom := oneRMRepCeiling.Sub(*reps)
	if !denom.IsPositive() {
		return nil
	}
	v := weight.Mul(oneRMFactor).Div(denom)
	if !v.IsPositive() {
		return nil
	}
	return &v
}

// Volume is weight * reps.
func Volume(weight, reps *decimal.Decimal) *decimal.Decimal {
	if weight == nil || reps == nil {
		return nil
	}
	v := weight.Mul(*reps)
	return &v
}

// Pace is distance / duration. It is nil for a zero duration.
func Pace(distance, duration *decimal.Decimal) *decimal.Decimal {
	if distance == nil || duration == nil || duration.IsZero() {
		return nil
	}
	v := distance.Div(*duration)
	return &v
}

// Value reads the statistic along one personal-best dimension.
func (s SetStatistic) Value(pb PersonalBest) *decimal.Decimal {
	switch pb {
	case PersonalBestWeight:
		return s.Weight
	case PersonalBestOneRM:
		return OneRM(s.Weight, s.Reps)
	case PersonalBestVolume:
		return Volume(s.Weight, s.Reps)
	case PersonalBestTime:
		return s.Duration
	case PersonalBestPace:
		return Pace(s.Distance, s.Duration)
	case PersonalBestReps:
		return s.Reps
	default:
		return nil
	}
}

// WithDerived returns a copy with one-rep max, volume and pace computed from
// the raw fields.
func (s SetStatistic) WithDerived() SetStatistic {
	s.OneRM = OneRM(s.Weight, s.Reps)
	s.Volume = Volume(s.Weight, s.Reps)
	s.Pace = Pace(s.Distance, s.Duration)
	return s
}

// ToMetric converts imperial weight (lb) and distance (mi) to kg and km.
func (s SetStatistic) ToMetric(u UnitSystem) SetStatistic {
	if u != UnitSystemImperial {
		return s
	}
	if s.Weight != nil {
		w := s.Weight.Mul(poundsToKilograms)
		s.Weight = &w
	}
	if s.Distance != nil {
		d := s.Distance.Mul(milesToKilometres)
		s.Distance = &d
	}
	return s
}

// score is the best-set heuristic: duration + distance + reps + weight.
func (s SetStatistic) score() decimal.Decimal {
	total := decimal.Zero
	for _, v := range []*decimal.Decimal{s.Duration, s.Distance, s.Reps, s.Weight} {
		if v != nil {
			total = total.Add(*v)
		}
	}
	return total
}
