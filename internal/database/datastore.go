// Package database defines the collection accessors shared by every store
// backend and the errors they return.
package database

import "context"

// Collection names, shared by the MongoDB collections and the SQLite tables.
const (
	BoardCollection  = "boards"
	ColumnCollection = "columns"
	CardCollection   = "cards"
	UserCollection   = "users"
)

// DataStore is the process-wide store handle. It is opened once at startup,
// injected into every service and closed once at shutdown.
type DataStore interface {
	BoardRepository
	ColumnRepository
	CardRepository
	UserRepository

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
