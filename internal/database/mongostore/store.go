// Package mongostore implements the collection accessors on MongoDB.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thenoetrevino/tablero/internal/database"
)

// Store provides every accessor over one MongoDB database. It composes the
// per-collection repositories using struct embedding.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	*BoardRepo
	*ColumnRepo
	*CardRepo
	*UserRepo
}

// Compile-time verification that *Store implements database.DataStore
var _ database.DataStore = (*Store)(nil)

// Connect opens a client, verifies it with a ping and makes sure the indexes
// exist. The returned store owns the client and closes it in Close.
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*Store, error) {
	opts := options.Client().ApplyURI(uri)
	if timeout > 0 {
		opts.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		if discErr := client.Disconnect(ctx); discErr != nil {
			slog.Error("error disconnecting mongodb client", "error", discErr)
		}
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	s := New(client.Database(dbName))
	s.client = client

	if err := s.EnsureIndexes(ctx); err != nil {
		if discErr := client.Disconnect(ctx); discErr != nil {
			slog.Error("error disconnecting mongodb client", "error", discErr)
		}
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return s, nil
}

// New wraps an existing database handle. Close is a no-op for stores built
// this way since the caller owns the client.
func New(db *mongo.Database) *Store {
	return &Store{
		db:         db,
		BoardRepo:  &BoardRepo{coll: db.Collection(database.BoardCollection)},
		ColumnRepo: &ColumnRepo{coll: db.Collection(database.ColumnCollection)},
		CardRepo:   &CardRepo{coll: db.Collection(database.CardCollection)},
		UserRepo:   &UserRepo{coll: db.Collection(database.UserCollection)},
	}
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return database.Wrap("ping", s.db.Name(), s.db.Client().Ping(ctx, nil))
}

// Close disconnects the client when the store owns it.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the lookup and uniqueness indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		database.UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		database.ColumnCollection: {
			{Keys: bson.D{{Key: "boardId", Value: 1}, {Key: "_destroy", Value: 1}}},
		},
		database.CardCollection: {
			{Keys: bson.D{{Key: "columnId", Value: 1}}},
			{Keys: bson.D{{Key: "boardId", Value: 1}}},
		},
		database.BoardCollection: {
			{Keys: bson.D{{Key: "ownerIds", Value: 1}}},
			{Keys: bson.D{{Key: "memberIds", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return database.Wrap("create indexes", name, err)
		}
	}
	return nil
}
