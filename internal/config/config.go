// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Database DatabaseConfig `toml:"database"`
	User     UserConfig     `toml:"user"`
	Fitness  FitnessConfig  `toml:"fitness"`
	Titles   TitlesConfig   `toml:"titles"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type UserConfig struct {
	ID string `toml:"id"`
}

type FitnessConfig struct {
	UnitSystem  string `toml:"unit_system"`
	SaveHistory int    `toml:"save_history"`
}

type TitlesConfig struct {
	CleanPatterns  []string `toml:"clean_patterns"`
	MatchThreshold string   `toml:"match_threshold"`
	Workers        int      `toml:"workers"`
}

// Load reads, substitutes, decodes and validates the configuration file.
// Unresolved variables and validation failures are reported together in a
// *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and decodes the configuration file and applies
// defaults, skipping validation. Used by commands that only need partial config.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/logbook.db"
	}
	if c.User.ID == "" {
		c.User.ID = "default"
	}
	if c.Fitness.UnitSystem == "" {
		c.Fitness.UnitSystem = "metric"
	}
	if c.Fitness.SaveHistory == 0 {
		c.Fitness.SaveHistory = 5
	}
	if c.Titles.MatchThreshold == "" {
		c.Titles.MatchThreshold = "medium"
	}
	if c.Titles.Workers == 0 {
		c.Titles.Workers = 4
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} references with environment values.
// Full-line comments are copied unchanged. Unresolvable references are left
// in place and reported in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	resolve := func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if value == "" {
				return arg
			}
			return value
		case ":?":
			if value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	}

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, resolve)
	}
	return strings.Join(lines, ""), missing
}
