// Package title parses free-form catalog titles into a base title and an
// optional season/episode pair.
package title

// EpisodeSource records how an episode number was found in a title segment.
type EpisodeSource int

const (
	EpisodeSourceNone        EpisodeSource = iota
	EpisodeSourceParentheses                // "(Episode 6)"
	EpisodeSourceEpisodeLabel               // "Episode 6"
	EpisodeSourceChapterLabel               // "Chapter Nine"
)

// unknownStr is the string representation for unknown values.
const unknownStr = "unknown"

func (s EpisodeSource) String() string {
	switch s {
	case EpisodeSourceParentheses:
		return "parentheses"
	case EpisodeSourceEpisodeLabel:
		return "episode_label"
	case EpisodeSourceChapterLabel:
		return "chapter_label"
	default:
		return unknownStr
	}
}

// impliesFirstSeason reports whether an episode found this way means season 1
// when no season is given. Bare "Episode N" labels do not.
func (s EpisodeSource) impliesFirstSeason() bool {
	return s == EpisodeSourceParentheses || s == EpisodeSourceChapterLabel
}

// GeneralSource records which whole-title pattern produced a season/episode pair.
type GeneralSource int

const (
	GeneralSourceNone          GeneralSource = iota
	GeneralSourceSxxExx                      // "S02E05"
	GeneralSourceSeasonEpisode               // "Season Two ... Episode 5"
)

func (s GeneralSource) String() string {
	switch s {
	case GeneralSourceSxxExx:
		return "sxxexx"
	case GeneralSourceSeasonEpisode:
		return "season_episode"
	default:
		return unknownStr
	}
}

// SeasonEpisode is a resolved season/episode pair. Both numbers are >= 1.
type SeasonEpisode struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

// Parsed is the full result of parsing one title.
type Parsed struct {
	BaseTitle string
	Season    *int
	Episode   *int

	EpisodeSource EpisodeSource
	GeneralSource GeneralSource
}

// SeasonEpisode returns the pair only when both numbers are known.
func (p Parsed) SeasonEpisode() (SeasonEpisode, bool) {
	if p.Season == nil || p.Episode == nil {
		return SeasonEpisode{}, false
	}
	return SeasonEpisode{Season: *p.Season, Episode: *p.Episode}, true
}

var defaultParser = NewParser()

// ExtractBaseTitle returns the human-readable series title using the default parser.
func ExtractBaseTitle(title string) string {
	return defaultParser.ExtractBaseTitle(title)
}

// ExtractSeasonEpisode returns the season/episode pair using the default parser.
// ok is false unless both numbers could be determined.
func ExtractSeasonEpisode(title string) (SeasonEpisode, bool) {
	return defaultParser.ExtractSeasonEpisode(title)
}
