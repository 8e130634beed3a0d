package title

import (
	"strconv"
	"strings"
	"unicode"
)

var onesWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var tensWords = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var romanValues = map[rune]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// ResolveNumber interprets a captured token as a positive number.
// Resolution order: integer, spelled-out words ("twenty-one"), Roman numeral,
// single letter (A=1 ... Z=26), then the leading alphanumeric run of the token.
func ResolveNumber(token string) (int, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(token); err == nil {
		return positive(n)
	}
	if n, ok := parseWordNumber(token); ok {
		return positive(n)
	}
	if n, ok := parseRoman(token); ok {
		return positive(n)
	}
	if n, ok := parseLetter(token); ok {
		return n, true
	}

	if prefix := alnumPrefix(token); prefix != "" && prefix != token {
		return ResolveNumber(prefix)
	}
	return 0, false
}

func positive(n int) (int, bool) {
	if n < 1 {
		return 0, false
	}
	return n, true
}

// parseWordNumber handles "nine", "twenty", "twenty-one", "twenty and one".
// A tens word may only be followed by a single ones word.
func parseWordNumber(token string) (int, bool) {
	words := strings.FieldsFunc(strings.ToLower(token), func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})

	total := 0
	seen := 0
	lastWasTens := false
	for _, w := range words {
		if w == "and" {
			continue
		}
		if v, ok := tensWords[w]; ok {
			if seen > 0 {
				return 0, false
			}
			total += v
			lastWasTens = true
			seen++
			continue
		}
		v, ok := onesWords[w]
		if !ok {
			return 0, false
		}
		if seen > 0 && (!lastWasTens || v == 0 || v >= 10) {
			return 0, false
		}
		total += v
		lastWasTens = false
		seen++
	}
	if seen == 0 {
		return 0, false
	}
	return total, true
}

// parseRoman accepts canonical Roman numerals up to 3999, case-insensitive.
func parseRoman(token string) (int, bool) {
	s := strings.ToUpper(token)
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[rune(s[i])]
		if !ok {
			return 0, false
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	if total < 1 || total > 3999 || toRoman(total) != s {
		return 0, false
	}
	return total, true
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int) string {
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

func parseLetter(token string) (int, bool) {
	if len(token) != 1 {
		return 0, false
	}
	c := unicode.ToUpper(rune(token[0]))
	if c < 'A' || c > 'Z' {
		return 0, false
	}
	return int(c-'A') + 1, true
}

// alnumPrefix returns the leading run of letters and digits.
func alnumPrefix(token string) string {
	for i, r := range token {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return token[:i]
		}
	}
	return token
}
