// internal/config/validate.go
package config

import (
	"fmt"
	"regexp"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "": true,
}

var validUnitSystems = map[string]bool{
	"metric": true, "imperial": true,
}

var validThresholds = map[string]bool{
	"low": true, "medium": true, "high": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be one of text, json; got %q", c.Log.Format))
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path: required")
	}
	if c.User.ID == "" {
		errs = append(errs, "user.id: required")
	}

	if !validUnitSystems[c.Fitness.UnitSystem] {
		errs = append(errs, fmt.Sprintf("fitness.unit_system: must be one of metric, imperial; got %q", c.Fitness.UnitSystem))
	}
	if c.Fitness.SaveHistory < 1 {
		errs = append(errs, fmt.Sprintf("fitness.save_history: must be at least 1, got %d", c.Fitness.SaveHistory))
	}

	if !validThresholds[c.Titles.MatchThreshold] {
		errs = append(errs, fmt.Sprintf("titles.match_threshold: must be one of low, medium, high; got %q", c.Titles.MatchThreshold))
	}
	if c.Titles.Workers < 1 {
		errs = append(errs, fmt.Sprintf("titles.workers: must be at least 1, got %d", c.Titles.Workers))
	}
	for i, p := range c.Titles.CleanPatterns {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Sprintf("titles.clean_patterns[%d]: %v", i, err))
		}
	}

	return errs
}
