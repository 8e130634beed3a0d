package title

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Whole-title patterns, tried in order.
var (
	sxxexxRegex        = regexp.MustCompile(`(?i)\bS(\d{1,3})E(\d{1,3})\b`)
	seasonEpisodeRegex = regexp.MustCompile(`(?i)\bseason\s+([^\s:()]+).*?\bepisode\s+([^\s:()]+)`)
)

// Segment patterns.
var (
	parenEpisodeRegex  = regexp.MustCompile(`(?i)\(\s*episode\s+([^()]+?)\s*\)`)
	episodeLabelRegex  = regexp.MustCompile(`(?i)\bepisode\s+([^\s()]+)`)
	chapterLabelRegex  = regexp.MustCompile(`(?i)\bchapter\s+([^\s()]+)`)
	limitedSeriesRegex = regexp.MustCompile(`(?i)\blimited\s+series\b`)
	seasonLabelRegex   = regexp.MustCompile(`(?i)\b(?:season|series|volume|book|part)\s+([^\s()]+)`)
	trailingTokenRegex = regexp.MustCompile(`^[\s\-#.]*([\p{L}\p{N}]+)$`)
	bareTokenRegex     = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
)

// defaultCleanPatterns strip release noise: bracketed tags, resolution and
// source markers, and SxxExx markers.
var defaultCleanPatterns = []string{
	`\[[^\]]*\]`,
	`\{[^}]*\}`,
	`(?i)\b(?:480|576|720|1080|2160)[pi]\b`,
	`(?i)\b(?:4k|uhd|hdr10|hdr|web-?dl|web-?rip|blu-?ray|bdrip|hdtv|dvdrip|remux|x264|x265|h\.?26[45]|hevc)\b`,
	`(?i)\bS\d{1,3}E\d{1,3}\b`,
}

const quoteChars = "\"'“”‘’«»"

// maxBareSeason bounds seasons read from an unlabeled segment ("Mix" is 1009
// as a Roman numeral).
const maxBareSeason = 100

// maxCleanPasses bounds the base-title fixed-point iteration.
const maxCleanPasses = 8

// Parser holds the compiled cleaning patterns. A Parser is immutable and safe
// for concurrent use.
type Parser struct {
	cleaners []*regexp.Regexp
}

// NewParser returns a parser using the built-in cleaning patterns plus extra.
func NewParser(extra ...*regexp.Regexp) *Parser {
	cleaners := make([]*regexp.Regexp, 0, len(defaultCleanPatterns)+len(extra))
	for _, p := range defaultCleanPatterns {
		cleaners = append(cleaners, regexp.MustCompile(p))
	}
	cleaners = append(cleaners, extra...)
	return &Parser{cleaners: cleaners}
}

// NewParserFromPatterns compiles extra cleaning patterns and returns a parser.
func NewParserFromPatterns(patterns []string) (*Parser, error) {
	extra := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile clean pattern %q: %w", p, err)
		}
		extra = append(extra, re)
	}
	return NewParser(extra...), nil
}

// ExtractBaseTitle returns the cleaned series title. Applying it to its own
// output returns the same string.
func (p *Parser) ExtractBaseTitle(title string) string {
	base := p.Parse(title).BaseTitle
	for range maxCleanPasses {
		next := p.Parse(base).BaseTitle
		if next == base {
			break
		}
		base = next
	}
	return base
}

// ExtractSeasonEpisode returns the season/episode pair when both are known.
func (p *Parser) ExtractSeasonEpisode(title string) (SeasonEpisode, bool) {
	return p.Parse(title).SeasonEpisode()
}

// Parse runs the full segment walk and reconciliation for a title.
func (p *Parser) Parse(title string) Parsed {
	title = strings.TrimSpace(title)
	segments := splitSegments(title)
	if len(segments) == 0 {
		return Parsed{BaseTitle: p.clean(title)}
	}

	w := walkSegments(segments)
	res := Parsed{
		Season:        w.season,
		Episode:       w.episode,
		EpisodeSource: w.episodeSource,
	}

	general, gs, ge := matchGeneral(title)
	res.GeneralSource = general
	if general != GeneralSourceNone {
		if w.episodeSource == EpisodeSourceEpisodeLabel && general == GeneralSourceSxxExx {
			res.Season, res.Episode = &gs, &ge
		} else {
			if res.Season == nil {
				res.Season = &gs
			}
			if res.Episode == nil {
				res.Episode = &ge
			}
		}
	}

	if res.Season == nil && res.Episode != nil && w.episodeSource.impliesFirstSeason() {
		one := 1
		res.Season = &one
	}

	switch {
	case strings.Contains(title, ":"):
		res.BaseTitle = p.clean(strings.Join(w.base, ": "))
	case strings.Contains(title, "("):
		res.BaseTitle = p.clean(title[:strings.Index(title, "(")])
	default:
		res.BaseTitle = p.clean(title)
	}
	return res
}

// splitSegments splits on ':' and normalizes each part, dropping empty ones.
func splitSegments(title string) []string {
	var segments []string
	for _, part := range strings.Split(title, ":") {
		part = strings.Trim(strings.TrimSpace(part), quoteChars)
		part = strings.Join(strings.Fields(part), " ")
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

type walkResult struct {
	season        *int
	episode       *int
	episodeSource EpisodeSource
	base          []string
}

// walkSegments classifies segments in order. Segments before the first
// recognized structure form the base title; unrecognized segments after it
// (usually the episode name) are discarded.
func walkSegments(segments []string) walkResult {
	var w walkResult
	structured := false

	setEpisode := func(n int, src EpisodeSource) {
		if w.episode == nil {
			w.episode = &n
			w.episodeSource = src
		}
		structured = true
	}
	setSeason := func(n int) {
		if w.season == nil {
			w.season = &n
		}
		structured = true
	}

	for i, seg := range segments {
		if n, ok := labelNumber(parenEpisodeRegex, seg); ok {
			setEpisode(n, EpisodeSourceParentheses)
			continue
		}
		if n, ok := labelNumber(episodeLabelRegex, seg); ok {
			setEpisode(n, EpisodeSourceEpisodeLabel)
			continue
		}
		if n, ok := labelNumber(chapterLabelRegex, seg); ok {
			setEpisode(n, EpisodeSourceChapterLabel)
			continue
		}
		if limitedSeriesRegex.MatchString(seg) {
			setSeason(1)
			continue
		}
		if n, ok := labelNumber(seasonLabelRegex, seg); ok {
			setSeason(n)
			continue
		}
		if w.season == nil && i > 0 {
			if n, ok := repeatedTitleNumber(segments[0], seg); ok {
				setSeason(n)
				continue
			}
			if bareTokenRegex.MatchString(seg) {
				if n, ok := ResolveNumber(seg); ok && n <= maxBareSeason {
					setSeason(n)
					continue
				}
			}
		}
		if !structured {
			w.base = append(w.base, seg)
		}
	}
	return w
}

func labelNumber(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return ResolveNumber(m[1])
}

// repeatedTitleNumber matches "Stranger Things 4" against first segment
// "Stranger Things" and returns the trailing number.
func repeatedTitleNumber(first, seg string) (int, bool) {
	if len(seg) <= len(first) || !strings.EqualFold(seg[:len(first)], first) {
		return 0, false
	}
	m := trailingTokenRegex.FindStringSubmatch(seg[len(first):])
	if m == nil {
		return 0, false
	}
	return ResolveNumber(m[1])
}

// matchGeneral scans the unsegmented title for SxxExx, then "Season X ... Episode Y".
func matchGeneral(title string) (GeneralSource, int, int) {
	if m := sxxexxRegex.FindStringSubmatch(title); m != nil {
		s, errS := strconv.Atoi(m[1])
		e, errE := strconv.Atoi(m[2])
		if errS == nil && errE == nil && s >= 1 && e >= 1 {
			return GeneralSourceSxxExx, s, e
		}
	}
	if m := seasonEpisodeRegex.FindStringSubmatch(title); m != nil {
		s, okS := ResolveNumber(m[1])
		e, okE := ResolveNumber(m[2])
		if okS && okE {
			return GeneralSourceSeasonEpisode, s, e
		}
	}
	return GeneralSourceNone, 0, 0
}

// clean applies the noise patterns, then collapses separators until nothing changes.
func (p *Parser) clean(s string) string {
	for _, re := range p.cleaners {
		s = re.ReplaceAllString(s, " ")
	}
	for {
		prev := s
		s = strings.ReplaceAll(s, ": :", ":")
		s = strings.ReplaceAll(s, " :", ":")
		s = strings.ReplaceAll(s, "  ", " ")
		s = strings.TrimRight(s, ":() \t")
		s = strings.TrimSpace(s)
		if s == prev {
			return s
		}
	}
}
