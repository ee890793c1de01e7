package column

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/database/sqlitestore"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupTestStore(t *testing.T) *sqlitestore.Store {
	t.Helper()
	s, err := sqlitestore.Open(context.Background(), sqlitestore.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func createTestBoard(t *testing.T, s *sqlitestore.Store) *models.Board {
	t.Helper()
	b, err := s.CreateBoard(context.Background(), models.BoardInput{
		Title:       "Board",
		Description: "Column tests",
		Type:        models.BoardTypePublic,
	})
	require.NoError(t, err)
	return b
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateColumnAppendsToBoardOrder(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	svc := NewService(s, nil)
	board := createTestBoard(t, s)

	first, err := svc.CreateColumn(ctx, models.ColumnInput{BoardID: board.ID.Hex(), Title: "Todo"})
	require.NoError(t, err)
	second, err := svc.CreateColumn(ctx, models.ColumnInput{BoardID: board.ID.Hex(), Title: "Done"})
	require.NoError(t, err)

	got, err := s.GetBoardByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.ID{first.ID, second.ID}, got.ColumnOrderIDs)
}

func TestCreateColumnErrors(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	svc := NewService(s, nil)

	_, err := svc.CreateColumn(ctx, models.ColumnInput{BoardID: types.NewID().Hex(), Title: "Todo"})
	assert.ErrorIs(t, err, ErrBoardNotFound)

	_, err = svc.CreateColumn(ctx, models.ColumnInput{BoardID: "not-an-id", Title: "x"})
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"boardId", "title"}, verr.Fields())
}

func TestArchiveColumn(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	svc := NewService(s, nil)
	board := createTestBoard(t, s)

	col, err := svc.CreateColumn(ctx, models.ColumnInput{BoardID: board.ID.Hex(), Title: "Parking lot"})
	require.NoError(t, err)

	archived, err := svc.ArchiveColumn(ctx, col.ID)
	require.NoError(t, err)
	assert.True(t, archived.Destroy)
	assert.NotNil(t, archived.UpdatedAt)

	list, err := svc.GetArchivedColumns(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, col.ID, list[0].ID)

	_, err = svc.ArchiveColumn(ctx, types.NewID())
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestUpdateColumnReordersCards(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	svc := NewService(s, nil)
	board := createTestBoard(t, s)

	col, err := svc.CreateColumn(ctx, models.ColumnInput{BoardID: board.ID.Hex(), Title: "Doing"})
	require.NoError(t, err)
	a, b := types.NewID(), types.NewID()

	updated, err := svc.UpdateColumn(ctx, col.ID, models.ColumnUpdate{CardOrderIDs: &[]string{b.Hex(), a.Hex()}})
	require.NoError(t, err)
	assert.Equal(t, []types.ID{b, a}, updated.CardOrderIDs)

	got, err := svc.GetColumnByID(ctx, col.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.CardOrderIDs, got.CardOrderIDs)
}

func TestDeleteColumnRemovesCardsAndOrder(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	svc := NewService(s, nil)
	board := createTestBoard(t, s)

	keep, err := svc.CreateColumn(ctx, models.ColumnInput{BoardID: board.ID.Hex(), Title: "Keep"})
	require.NoError(t, err)
	drop, err := svc.CreateColumn(ctx, models.ColumnInput{BoardID: board.ID.Hex(), Title: "Drop"})
	require.NoError(t, err)
	card, err := s.CreateCard(ctx, models.CardInput{BoardID: board.ID.Hex(), ColumnID: drop.ID.Hex(), Title: "Goes away"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteColumn(ctx, drop.ID))

	got, err := s.GetBoardByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.ID{keep.ID}, got.ColumnOrderIDs)

	gone, err := s.GetCardByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, svc.DeleteColumn(ctx, drop.ID), ErrColumnNotFound)
}
