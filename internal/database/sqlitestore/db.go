// Package sqlitestore implements the collection accessors on an embedded
// SQLite database. Each row keeps the BSON encoding of one document next to
// the few columns the finders filter on, so documents look exactly like their
// MongoDB counterparts.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store provides every accessor over one SQLite database. It composes the
// per-collection repositories using struct embedding.
type Store struct {
	db *sql.DB

	*BoardRepo
	*ColumnRepo
	*CardRepo
	*UserRepo
}

// Compile-time verification that *Store implements database.DataStore
var _ database.DataStore = (*Store)(nil)

// Open opens (creating if needed) the database at path and runs migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every mutation is a read-modify-write inside one transaction; a single
	// connection serializes them, which is what makes push/pull atomic here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			closeQuietly(db)
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return New(db), nil
}

// New wraps a database whose schema is already migrated.
func New(db *sql.DB) *Store {
	return &Store{
		db: db,
		BoardRepo: &BoardRepo{boards: &collection[models.Board]{
			db:     db,
			name:   database.BoardCollection,
			fields: []string{"destroyed"},
			id:     func(b *models.Board) string { return b.ID.Hex() },
			values: func(b *models.Board) []any { return []any{b.Destroy} },
		}},
		ColumnRepo: &ColumnRepo{columns: &collection[models.Column]{
			db:     db,
			name:   database.ColumnCollection,
			fields: []string{"board_id", "destroyed"},
			id:     func(c *models.Column) string { return c.ID.Hex() },
			values: func(c *models.Column) []any { return []any{c.BoardID.Hex(), c.Destroy} },
		}},
		CardRepo: &CardRepo{cards: &collection[models.Card]{
			db:     db,
			name:   database.CardCollection,
			fields: []string{"board_id", "column_id"},
			id:     func(c *models.Card) string { return c.ID.Hex() },
			values: func(c *models.Card) []any { return []any{c.BoardID.Hex(), c.ColumnID.Hex()} },
		}},
		UserRepo: &UserRepo{users: &collection[models.User]{
			db:     db,
			name:   database.UserCollection,
			fields: []string{"email", "email_lower", "username", "destroyed"},
			id:     func(u *models.User) string { return u.ID.Hex() },
			values: func(u *models.User) []any {
				return []any{u.Email, strings.ToLower(u.Email), u.Username, u.Destroy}
			},
		}},
	}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return database.Wrap("ping", "sqlite", s.db.PingContext(ctx))
}

// Close closes the underlying database.
func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}
