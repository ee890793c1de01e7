package sqlitestore

import (
	"context"
	"database/sql"
)

// runMigrations creates one table per collection. seq preserves insertion
// order, which is the order finders return documents in.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS boards (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			destroyed BOOLEAN NOT NULL DEFAULT 0,
			doc BLOB NOT NULL
		);

		CREATE TABLE IF NOT EXISTS columns (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			board_id TEXT NOT NULL,
			destroyed BOOLEAN NOT NULL DEFAULT 0,
			doc BLOB NOT NULL
		);

		CREATE TABLE IF NOT EXISTS cards (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			board_id TEXT NOT NULL,
			column_id TEXT NOT NULL,
			doc BLOB NOT NULL
		);

		CREATE TABLE IF NOT EXISTS users (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			email_lower TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL UNIQUE,
			destroyed BOOLEAN NOT NULL DEFAULT 0,
			doc BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_columns_board ON columns(board_id, destroyed);
		CREATE INDEX IF NOT EXISTS idx_cards_column ON cards(column_id);
		CREATE INDEX IF NOT EXISTS idx_cards_board ON cards(board_id);
	`)
	if err != nil {
		return err
	}
	return addEmailLower(ctx, db)
}

// addEmailLower upgrades users tables created before email_lower existed.
// The backfill uses SQLite's ASCII-only lower(); rows rewritten by an update
// get the Go-folded value.
func addEmailLower(ctx context.Context, db *sql.DB) error {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('users') WHERE name = 'email_lower'`).Scan(&n)
	if err != nil || n > 0 {
		return err
	}
	return withTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `ALTER TABLE users ADD COLUMN email_lower TEXT NOT NULL DEFAULT ''`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE users SET email_lower = lower(email)`)
		return err
	})
}
