// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// ConfigError aggregates every problem found while loading one config file.
type ConfigError struct {
	Path    string   // Config file path
	Missing []string // Unresolved ${VAR} references, with their :? message when given
	Errors  []string // Validation errors, each prefixed with its TOML key
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "config %s:\n", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s\n", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		b.WriteString("validation failed:\n")
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// HasErrors reports whether anything was recorded.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
