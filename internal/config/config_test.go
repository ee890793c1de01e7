package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME at a temp dir, runs from an empty working
// directory so no .env is picked up, and clears the override variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	for _, name := range []string{
		"TABLERO_SERVER_HOST", "APP_HOST", "TABLERO_SERVER_PORT", "APP_PORT",
		"TABLERO_DATABASE_DRIVER", "TABLERO_DATABASE_URI", "MONGODB_URI",
		"TABLERO_DATABASE_NAME", "DATABASE_NAME", "TABLERO_DATABASE_PATH",
		"TABLERO_DATABASE_TIMEOUT", "TABLERO_LOG_LEVEL", "TABLERO_LOG_FORMAT",
		"TABLERO_LOG_FILE", "TABLERO_CORS_ORIGINS",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8017, cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "tablero", cfg.Database.Name)
	assert.Equal(t, 10*time.Second, cfg.Database.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolate(t)

	configDir := filepath.Join(dir, "tablero")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	content := `server:
  port: 9000
database:
  driver: sqlite
  path: /tmp/tablero-test.db
  timeout: 3s
log:
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/tablero-test.db", cfg.Database.Path)
	assert.Equal(t, 3*time.Second, cfg.Database.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)

	// unspecified values use defaults
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("APP_HOST", "0.0.0.0")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("TABLERO_SERVER_PORT", "8181")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("DATABASE_NAME", "kanban")
	t.Setenv("TABLERO_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8181", cfg.Server.Addr())
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	assert.Equal(t, "kanban", cfg.Database.Name)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
}

func TestDotEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_NAME=from_dotenv\n"), 0o644))
	// godotenv never overrides variables that are already set
	require.NoError(t, os.Unsetenv("DATABASE_NAME"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.Database.Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"sqlite without path", func(c *Config) {
			c.Database.Driver = DriverSQLite
			c.Database.Path = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestSaveConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "tablero", "config.yaml")

	cfg := Default()
	cfg.Server.Port = 9999
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, loaded.Server.Port)
}
