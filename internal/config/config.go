package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported store drivers.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig selects and locates the document store.
type DatabaseConfig struct {
	Driver  string        `yaml:"driver"`
	URI     string        `yaml:"uri"`
	Name    string        `yaml:"name"`
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "localhost",
			Port:        8017,
			CORSOrigins: []string{"http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Driver:  DriverMongo,
			URI:     "mongodb://localhost:27017",
			Name:    "tablero",
			Path:    defaultDataPath(),
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the config file at path, or the default location when path is
// empty, then applies .env and environment overrides. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := getConfigPath()
		if err == nil {
			path = p
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	cfg.applyDefaults()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" {
			return errors.New("database.uri is required for the mongo driver")
		}
		if c.Database.Name == "" {
			return errors.New("database.name is required for the mongo driver")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q (want %s or %s)", c.Database.Driver, DriverMongo, DriverSQLite)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q (want text or json)", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", l.Level, err)
	}
	return level, nil
}

// applyDefaults fills in values a partial config file left empty.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Database.Driver == "" {
		c.Database.Driver = d.Database.Driver
	}
	if c.Database.URI == "" {
		c.Database.URI = d.Database.URI
	}
	if c.Database.Name == "" {
		c.Database.Name = d.Database.Name
	}
	if c.Database.Path == "" {
		c.Database.Path = d.Database.Path
	}
	if c.Database.Timeout == 0 {
		c.Database.Timeout = d.Database.Timeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// applyEnv overrides file values. TABLERO_* names win over the unprefixed
// names kept for existing deployments.
func (c *Config) applyEnv() error {
	setString(&c.Server.Host, "TABLERO_SERVER_HOST", "APP_HOST")
	setString(&c.Database.Driver, "TABLERO_DATABASE_DRIVER")
	setString(&c.Database.URI, "TABLERO_DATABASE_URI", "MONGODB_URI")
	setString(&c.Database.Name, "TABLERO_DATABASE_NAME", "DATABASE_NAME")
	setString(&c.Database.Path, "TABLERO_DATABASE_PATH")
	setString(&c.Log.Level, "TABLERO_LOG_LEVEL")
	setString(&c.Log.Format, "TABLERO_LOG_FORMAT")
	setString(&c.Log.File, "TABLERO_LOG_FILE")

	if v := lookup("TABLERO_SERVER_PORT", "APP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := lookup("TABLERO_DATABASE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid database timeout %q: %w", v, err)
		}
		c.Database.Timeout = d
	}
	if v := lookup("TABLERO_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
	return nil
}

func lookup(names ...string) string {
	for _, name := range names {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
	}
	return ""
}

func setString(dst *string, names ...string) {
	if v := lookup(names...); v != "" {
		*dst = v
	}
}

// loadDotEnv sets variables from a .env file without overriding the real
// environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tablero", "config.yaml"), nil
}

// defaultDataPath places the SQLite file under the XDG data directory.
func defaultDataPath() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "tablero", "tablero.db")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share", "tablero", "tablero.db")
	}
	return "tablero.db"
}
