package title

import (
	"fmt"
	"regexp"

	"github.com/hbollon/go-edlib"
)

var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Confidence is how strongly a base title matched a tracked media title.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // score < 0.70
	ConfidenceLow                      // score >= 0.70
	ConfidenceMedium                   // score >= 0.85
	ConfidenceHigh                     // score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ParseConfidence maps "low", "medium" or "high" to a Confidence.
func ParseConfidence(s string) (Confidence, error) {
	switch s {
	case "low":
		return ConfidenceLow, nil
	case "medium":
		return ConfidenceMedium, nil
	case "high":
		return ConfidenceHigh, nil
	default:
		return ConfidenceNone, fmt.Errorf("unknown confidence %q", s)
	}
}

// Match is the best candidate for a base title.
type Match struct {
	Title      string
	Score      float64 // Jaro-Winkler similarity after number adjustment, 0.0-1.0
	Confidence Confidence
}

// MatchTitle finds the candidate closest to base. Jaro-Winkler favours shared
// prefixes, which suits series titles; matching sequence numbers ("Part 2")
// earn a bonus and mismatched ones a penalty.
func MatchTitle(base string, candidates []string) Match {
	if len(candidates) == 0 {
		return Match{}
	}

	normalized := Normalize(base)
	baseNumbers := numberRegex.FindAllString(normalized, -1)

	var best Match
	for _, candidate := range candidates {
		nc := Normalize(candidate)
		score := float64(edlib.JaroWinklerSimilarity(normalized, nc))
		score = adjustForNumbers(score, baseNumbers, numberRegex.FindAllString(nc, -1))
		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Confidence = ConfidenceNone
		best.Title = ""
	}
	return best
}

func adjustForNumbers(score float64, baseNums, candidateNums []string) float64 {
	if len(baseNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range baseNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
