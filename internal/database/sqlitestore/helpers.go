package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thenoetrevino/tablero/internal/database"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// collection stores documents of type T as BSON blobs in one table. fields
// names the extra indexed columns, and values extracts them from a document
// in the same order.
type collection[T any] struct {
	db     *sql.DB
	name   string
	fields []string
	id     func(*T) string
	values func(*T) []any
}

func (c *collection[T]) row(doc *T) ([]any, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	args := append([]any{c.id(doc)}, c.values(doc)...)
	return append(args, raw), nil
}

func (c *collection[T]) insert(ctx context.Context, doc *T) error {
	args, err := c.row(doc)
	if err != nil {
		return database.Wrap("insert", c.name, err)
	}
	cols := append(append([]string{"id"}, c.fields...), "doc")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		c.name, strings.Join(cols, ", "), placeholders(len(cols)))
	_, err = c.db.ExecContext(ctx, query, args...)
	return database.Wrap("insert", c.name, err)
}

// query returns the documents matching where in insertion order. A
// non-positive limit returns all of them.
func (c *collection[T]) query(ctx context.Context, q querier, where string, limit int, args ...any) ([]*T, error) {
	query := fmt.Sprintf("SELECT doc FROM %s WHERE %s ORDER BY seq", c.name, where)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("error closing rows", "error", err)
		}
	}()

	docs := []*T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		doc := new(T)
		if err := bson.Unmarshal(raw, doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (c *collection[T]) find(ctx context.Context, where string, args ...any) ([]*T, error) {
	docs, err := c.query(ctx, c.db, where, 0, args...)
	if err != nil {
		return nil, database.Wrap("find", c.name, err)
	}
	return docs, nil
}

// findOne returns nil, nil when nothing matches.
func (c *collection[T]) findOne(ctx context.Context, where string, args ...any) (*T, error) {
	docs, err := c.query(ctx, c.db, where, 1, args...)
	if err != nil {
		return nil, database.Wrap("find", c.name, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

func (c *collection[T]) byID(ctx context.Context, id string) (*T, error) {
	return c.findOne(ctx, "id = ?", id)
}

// update loads the document with the given id, applies fn and writes it back
// in one transaction. It returns nil, nil when the document does not exist.
func (c *collection[T]) update(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	var updated *T
	err := withTx(ctx, c.db, func(tx *sql.Tx) error {
		docs, err := c.query(ctx, tx, "id = ?", 1, id)
		if err != nil || len(docs) == 0 {
			return err
		}
		doc := docs[0]
		if err := fn(doc); err != nil {
			return err
		}

		args, err := c.row(doc)
		if err != nil {
			return err
		}
		set := make([]string, 0, len(c.fields)+1)
		for _, f := range c.fields {
			set = append(set, f+" = ?")
		}
		set = append(set, "doc = ?")
		// row leads with the id; move it to the WHERE clause.
		args = append(args[1:], id)

		query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", c.name, strings.Join(set, ", "))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, database.Wrap("update", c.name, err)
	}
	return updated, nil
}

func (c *collection[T]) delete(ctx context.Context, where string, args ...any) (int64, error) {
	res, err := c.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", c.name, where), args...)
	if err != nil {
		return 0, database.Wrap("delete", c.name, err)
	}
	n, err := res.RowsAffected()
	return n, database.Wrap("delete", c.name, err)
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// likeContains builds a LIKE pattern matching s anywhere, escaping the
// wildcard characters with a backslash.
func likeContains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
