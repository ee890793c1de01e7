//go:build integration

package mongostore

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/database/storetest"
)

// setupMongo starts a MongoDB container and returns its connection string.
func setupMongo(t *testing.T) string {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}
	return uri
}

func TestStore(t *testing.T) {
	uri := setupMongo(t)
	var seq atomic.Int64

	storetest.Run(t, func(t *testing.T) database.DataStore {
		ctx := context.Background()
		// one database per subtest keeps documents and unique indexes isolated
		s, err := Connect(ctx, uri, fmt.Sprintf("tablero_test_%d", seq.Add(1)), 10*time.Second)
		require.NoError(t, err)
		t.Cleanup(func() {
			if err := s.db.Drop(ctx); err != nil {
				t.Logf("failed to drop database: %v", err)
			}
			if err := s.Close(ctx); err != nil {
				t.Logf("failed to close store: %v", err)
			}
		})
		return s
	})
}

func TestEnsureIndexesIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, err := Connect(ctx, setupMongo(t), "tablero_indexes", 10*time.Second)
	require.NoError(t, err)
	defer func() { _ = s.Close(ctx) }()

	require.NoError(t, s.EnsureIndexes(ctx))
	require.NoError(t, s.Ping(ctx))
}
