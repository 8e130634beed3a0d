package fitness

import "github.com/shopspring/decimal"

// bestSetIndex returns the index of the set with the highest value along pb.
// The first set wins ties; sets without a value rank below any value.
// ok is false when no set has a value.
func bestSetIndex(sets []SetRecord, pb PersonalBest) (idx int, value decimal.Decimal, ok bool) {
	for i, s := range sets {
		v := s.Statistic.Value(pb)
		if v == nil {
			continue
		}
		if !ok || v.GreaterThan(value) {
			idx, value, ok = i, *v, true
		}
	}
	return idx, value, ok
}

// previousBest returns the current record value along pb, or nil.
func previousBest(bests []BestSetHistory, pb PersonalBest) *decimal.Decimal {
	for _, b := range bests {
		if b.Lot != pb {
			continue
		}
		if len(b.Sets) == 0 {
			return nil
		}
		return b.Sets[0].Data.Statistic.Value(pb)
	}
	return nil
}

// recordBest prepends best to the history for pb and caps it at limit entries.
func recordBest(bests []BestSetHistory, pb PersonalBest, best BestSet, limit int) []BestSetHistory {
	for i, b := range bests {
		if b.Lot == pb {
			bests[i].Sets = prependBounded(b.Sets, best, limit)
			return bests
		}
	}
	return append(bests, BestSetHistory{Lot: pb, Sets: []BestSet{best}})
}

// prependBounded inserts v at the front and drops entries beyond limit.
func prependBounded[T any](list []T, v T, limit int) []T {
	n := min(len(list)+1, max(limit, 1))
	out := make([]T, 0, n)
	out = append(out, v)
	return append(out, list[:n-1]...)
}
