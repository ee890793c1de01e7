package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/tablero/internal/config"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// New builds a handler for cfg writing to w.
func New(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

// Init installs the application logger as the slog default. Output goes to
// cfg.File when set, stderr otherwise. The returned close func releases the
// file.
func Init(cfg config.LogConfig) (func() error, error) {
	var (
		out     io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = file
		closeFn = file.Close
	}

	logger, err := New(out, cfg)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	Logger = logger
	slog.SetDefault(Logger)

	// Redirect standard log package output (used by the mongo driver and echo) to the same place
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	return closeFn, nil
}
