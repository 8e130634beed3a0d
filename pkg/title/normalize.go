package title

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romanSuffixRegex matches Roman numerals II-IX after a space.
// Standalone "I" and "X" are skipped ("I Robot", "SPY x FAMILY").
var romanSuffixRegex = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

// NormalizeRomanNumerals converts Roman numerals II-IX that follow a space to
// Arabic digits, so "Rocky II" and "Rocky 2" compare equal.
func NormalizeRomanNumerals(s string) string {
	return romanSuffixRegex.ReplaceAllStringFunc(s, func(match string) string {
		if n, ok := parseRoman(strings.TrimSpace(match)); ok {
			return " " + string(rune('0'+n))
		}
		return match
	})
}

// Normalize prepares a base title for comparison against tracked media.
// Lowercases, converts Roman numerals, removes accents, articles and
// punctuation, and collapses whitespace.
func Normalize(title string) string {
	s := strings.ToLower(title)
	s = NormalizeRomanNumerals(s)
	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "’", "")
	s = strings.ReplaceAll(s, ".", " ")

	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(strings.TrimSpace(part))
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func stripLeadingArticle(s string) string {
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}
