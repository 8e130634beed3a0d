package config

import (
	"github.com/vmunix/logbook/pkg/fitness"
	"github.com/vmunix/logbook/pkg/title"
)

// Preferences returns the fitness engine preferences.
func (c *Config) Preferences() fitness.Preferences {
	return fitness.Preferences{
		UnitSystem:  fitness.UnitSystem(c.Fitness.UnitSystem),
		SaveHistory: c.Fitness.SaveHistory,
	}
}

// Threshold returns the minimum confidence a seen title must match with.
// Unknown values fall back to medium.
func (c *Config) Threshold() title.Confidence {
	conf, err := title.ParseConfidence(c.Titles.MatchThreshold)
	if err != nil {
		return title.ConfidenceMedium
	}
	return conf
}

// TitleParser builds a parser with the configured extra clean patterns.
func (c *Config) TitleParser() (*title.Parser, error) {
	return title.NewParserFromPatterns(c.Titles.CleanPatterns)
}
