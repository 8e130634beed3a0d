// internal/config/load_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[user]
id = "alice"

[fitness]
unit_system = "imperial"
save_history = 3

[titles]
match_threshold = "high"
clean_patterns = ['(?i)\bhulu\b']
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.User.ID)
	assert.Equal(t, "imperial", cfg.Fitness.UnitSystem)
	assert.Equal(t, 3, cfg.Fitness.SaveHistory)
	assert.Equal(t, "high", cfg.Titles.MatchThreshold)
	assert.Equal(t, []string{`(?i)\bhulu\b`}, cfg.Titles.CleanPatterns)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "./data/logbook.db", cfg.Database.Path)
	assert.Equal(t, "default", cfg.User.ID)
	assert.Equal(t, "metric", cfg.Fitness.UnitSystem)
	assert.Equal(t, 5, cfg.Fitness.SaveHistory)
	assert.Equal(t, "medium", cfg.Titles.MatchThreshold)
	assert.Equal(t, 4, cfg.Titles.Workers)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[database]
path = "${LOGBOOK_TEST_NONEXISTENT_DB}"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, path, cfgErr.Path)
	assert.Equal(t, []string{"LOGBOOK_TEST_NONEXISTENT_DB"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "LOGBOOK_TEST_NONEXISTENT_DB")
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[fitness]
unit_system = "furlongs"
save_history = -2
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fitness.unit_system")
	assert.Contains(t, err.Error(), "fitness.save_history")
}

func TestLoad_EnvVarDefault(t *testing.T) {
	t.Setenv("LOGBOOK_TEST_DATA", "")
	path := writeConfig(t, `
[database]
path = "${LOGBOOK_TEST_DATA:-/var/lib/logbook}/logbook.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/logbook/logbook.db", cfg.Database.Path)
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[fitness\nsave_history = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadWithoutValidation(t *testing.T) {
	path := writeConfig(t, `
[fitness]
unit_system = "furlongs"
`)

	cfg, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, "furlongs", cfg.Fitness.UnitSystem)
	assert.Equal(t, 5, cfg.Fitness.SaveHistory)
}

func TestDefault_IsValid(t *testing.T) {
	assert.Empty(t, Default().Validate())
}

func TestDefaultConfigFile_Loads(t *testing.T) {
	t.Setenv("LOGBOOK_DATA", "/srv/logbook")
	cfg, err := Load(writeConfig(t, defaultConfig))
	require.NoError(t, err)
	assert.Equal(t, "/srv/logbook/logbook.db", cfg.Database.Path)
	assert.Len(t, cfg.Titles.CleanPatterns, 1)
}
