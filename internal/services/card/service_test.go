package card

import (
	"context"
	"testing"

	"github.com/google/uuid"
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

type fixture struct {
	store *sqlitestore.Store
	svc   Service
	board *models.Board
	todo  *models.Column
	done  *models.Column
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s, err := sqlitestore.Open(ctx, sqlitestore.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })

	board, err := s.CreateBoard(ctx, models.BoardInput{Title: "Cards", Description: "Card tests", Type: models.BoardTypePrivate})
	require.NoError(t, err)
	todo, err := s.CreateColumn(ctx, models.ColumnInput{BoardID: board.ID.Hex(), Title: "Todo"})
	require.NoError(t, err)
	done, err := s.CreateColumn(ctx, models.ColumnInput{BoardID: board.ID.Hex(), Title: "Done"})
	require.NoError(t, err)

	return &fixture{store: s, svc: NewService(s, nil), board: board, todo: todo, done: done}
}

func (f *fixture) input(col *models.Column, title string) models.CardInput {
	return models.CardInput{BoardID: f.board.ID.Hex(), ColumnID: col.ID.Hex(), Title: title}
}

func (f *fixture) cardOrder(t *testing.T, col *models.Column) []types.ID {
	t.Helper()
	got, err := f.store.GetColumnByID(context.Background(), col.ID)
	require.NoError(t, err)
	return got.CardOrderIDs
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateCardPushesOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.svc.CreateCard(ctx, f.input(f.todo, "Card A"))
	require.NoError(t, err)
	b, err := f.svc.CreateCard(ctx, f.input(f.todo, "Card B"))
	require.NoError(t, err)

	assert.Equal(t, []types.ID{a.ID, b.ID}, f.cardOrder(t, f.todo))
}

func TestCreateCardChecksColumn(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := f.input(f.todo, "Lost")
	in.ColumnID = types.NewID().Hex()
	_, err := f.svc.CreateCard(ctx, in)
	assert.ErrorIs(t, err, ErrColumnNotFound)

	in = f.input(f.todo, "Wrong board")
	in.BoardID = types.NewID().Hex()
	_, err = f.svc.CreateCard(ctx, in)
	assert.ErrorIs(t, err, ErrColumnMismatch)

	_, err = f.svc.CreateCard(ctx, f.input(f.todo, "no"))
	assert.ErrorIs(t, err, schema.ErrValidation)
	assert.Empty(t, f.cardOrder(t, f.todo))
}

func TestUpdateCardMovesBetweenColumns(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	card, err := f.svc.CreateCard(ctx, f.input(f.todo, "Traveller"))
	require.NoError(t, err)

	target := f.done.ID.Hex()
	moved, err := f.svc.UpdateCard(ctx, card.ID, models.CardUpdate{ColumnID: &target})
	require.NoError(t, err)
	assert.Equal(t, f.done.ID, moved.ColumnID)
	assert.Equal(t, f.board.ID, moved.BoardID)
	assert.NotNil(t, moved.UpdatedAt)

	assert.Empty(t, f.cardOrder(t, f.todo))
	assert.Equal(t, []types.ID{card.ID}, f.cardOrder(t, f.done))

	// same column is a plain update
	title := "Still here"
	updated, err := f.svc.UpdateCard(ctx, card.ID, models.CardUpdate{Title: &title, ColumnID: &target})
	require.NoError(t, err)
	assert.Equal(t, "Still here", updated.Title)
	assert.Equal(t, []types.ID{card.ID}, f.cardOrder(t, f.done))
}

func TestUpdateCardErrors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	title := "Nobody"
	_, err := f.svc.UpdateCard(ctx, types.NewID(), models.CardUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrCardNotFound)

	card, err := f.svc.CreateCard(ctx, f.input(f.todo, "Stays"))
	require.NoError(t, err)

	missing := types.NewID().Hex()
	_, err = f.svc.UpdateCard(ctx, card.ID, models.CardUpdate{ColumnID: &missing})
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Equal(t, []types.ID{card.ID}, f.cardOrder(t, f.todo))
}

func TestRemoveCover(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := f.input(f.todo, "Pretty")
	in.Cover = "https://img.example.com/a.png"
	card, err := f.svc.CreateCard(ctx, in)
	require.NoError(t, err)

	got, err := f.svc.RemoveCover(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Cover)

	_, err = f.svc.RemoveCover(ctx, types.NewID())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestAddAttachment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	card, err := f.svc.CreateCard(ctx, f.input(f.todo, "With files"))
	require.NoError(t, err)

	got, err := f.svc.AddAttachment(ctx, card.ID, models.AttachmentInput{
		Name: "diagram.png",
		URL:  "https://files.example.com/diagram.png",
		Size: 4096,
	})
	require.NoError(t, err)
	require.Len(t, got.Attachment, 1)
	_, err = uuid.Parse(got.Attachment[0].ID)
	assert.NoError(t, err)

	_, err = f.svc.AddAttachment(ctx, card.ID, models.AttachmentInput{})
	assert.ErrorIs(t, err, schema.ErrValidation)

	_, err = f.svc.AddAttachment(ctx, types.NewID(), models.AttachmentInput{Name: "x", URL: "https://example.com/x"})
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestDeleteCardPullsOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.svc.CreateCard(ctx, f.input(f.todo, "Card A"))
	require.NoError(t, err)
	b, err := f.svc.CreateCard(ctx, f.input(f.todo, "Card B"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteCard(ctx, a.ID))
	assert.Equal(t, []types.ID{b.ID}, f.cardOrder(t, f.todo))

	_, err = f.svc.GetCardByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
	assert.ErrorIs(t, f.svc.DeleteCard(ctx, a.ID), ErrCardNotFound)
}
