package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a config whose database lives in a temp dir and
// returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`
[log]
level = "error"

[database]
path = %q

[user]
id = "alice"

[fitness]
unit_system = "metric"
save_history = 3

[titles]
match_threshold = "medium"
workers = 2
`, filepath.Join(dir, "logbook.db"))

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCmd executes a fresh command tree against cfgPath and returns stdout.
func runCmd(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	return runCmdWithInput(t, cfgPath, "", args...)
}

func runCmdWithInput(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), err
}

// mustRun is runCmd that fails the test on error.
func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := runCmd(t, cfgPath, args...)
	require.NoError(t, err, "logbook %s", strings.Join(args, " "))
	return out
}
