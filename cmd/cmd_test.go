package cmd

import (
	"bytes"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	prev := slog.Default()
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		configPath = ""
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "tablero dev\n", run(t, "version"))
}

func TestMigrateSQLite(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TABLERO_DATABASE_PATH", filepath.Join(t.TempDir(), "tablero.db"))

	out := run(t, "migrate", "--driver", "sqlite")
	assert.Contains(t, out, "sqlite store is up to date")
}

func TestSeedSQLite(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TABLERO_DATABASE_PATH", filepath.Join(t.TempDir(), "tablero.db"))

	out := run(t, "seed", "--driver", "sqlite", "--username", "ada")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "with 7 cards")
}

func TestSeedHonoursLogConfig(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "tablero.log")
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TABLERO_DATABASE_PATH", filepath.Join(t.TempDir(), "tablero.db"))
	t.Setenv("TABLERO_LOG_LEVEL", "debug")
	t.Setenv("TABLERO_LOG_FORMAT", "json")
	t.Setenv("TABLERO_LOG_FILE", logFile)

	run(t, "seed", "--driver", "sqlite", "--username", "grace")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"board created"`)
}
