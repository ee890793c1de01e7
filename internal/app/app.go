package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/database/mongostore"
	"github.com/thenoetrevino/tablero/internal/database/sqlitestore"
	"github.com/thenoetrevino/tablero/internal/metrics"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
	cardservice "github.com/thenoetrevino/tablero/internal/services/card"
	columnservice "github.com/thenoetrevino/tablero/internal/services/column"
	userservice "github.com/thenoetrevino/tablero/internal/services/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	store database.DataStore

	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Service layer (business logic)
	BoardService  boardservice.Service
	ColumnService columnservice.Service
	CardService   cardservice.Service
	UserService   userservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(store database.DataStore, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.New()
	}

	return &App{
		store:         store,
		Logger:        cfg.logger,
		Metrics:       cfg.metrics,
		BoardService:  boardservice.NewService(store, cfg.logger),
		ColumnService: columnservice.NewService(store, cfg.logger),
		CardService:   cardservice.NewService(store, cfg.logger),
		UserService:   userservice.NewService(store, cfg.logger),
	}
}

// Store returns the underlying store, used for health checks.
func (a *App) Store() database.DataStore {
	return a.store
}

// Close releases the store.
func (a *App) Close(ctx context.Context) error {
	return a.store.Close(ctx)
}

// OpenStore connects the backend selected by cfg.Driver. MongoDB indexes
// and SQLite tables are created as part of opening.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (database.DataStore, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		store, err := mongostore.Connect(ctx, cfg.URI, cfg.Name, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite:
		store, err := sqlitestore.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
