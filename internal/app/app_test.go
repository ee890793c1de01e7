package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/metrics"
)

func openTestStore(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "app.db")}
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx, openTestStore(t))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	app := New(store, WithLogger(logger), WithMetrics(m))

	assert.NotNil(t, app.BoardService)
	assert.NotNil(t, app.ColumnService)
	assert.NotNil(t, app.CardService)
	assert.NotNil(t, app.UserService)
	assert.Same(t, logger, app.Logger)
	assert.Same(t, m, app.Metrics)
	assert.NoError(t, app.Store().Ping(ctx))

	assert.NoError(t, app.Close(ctx))
}

func TestNewDefaults(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx, openTestStore(t))
	require.NoError(t, err)
	defer func() { _ = store.Close(ctx) }()

	app := New(store)
	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.Metrics)
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "cassandra"})
	assert.Error(t, err)
}
