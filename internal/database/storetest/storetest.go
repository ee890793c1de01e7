// Package storetest is a behavioral test suite shared by every
// database.DataStore implementation.
package storetest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// OpenFunc returns an empty store. The suite never closes it; register
// cleanup with t.Cleanup.
type OpenFunc func(t *testing.T) database.DataStore

// Run executes the suite, opening a fresh store per subtest.
func Run(t *testing.T, open OpenFunc) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s database.DataStore)
	}{
		{"CardCreateThenFind", testCardCreateThenFind},
		{"CardTitleBounds", testCardTitleBounds},
		{"CardUpdateKeepsImmutableFields", testCardUpdateKeepsImmutableFields},
		{"CardRemoveCoverIdempotent", testCardRemoveCoverIdempotent},
		{"CardAttachments", testCardAttachments},
		{"CardDeletes", testCardDeletes},
		{"CardOrderPushPull", testCardOrderPushPull},
		{"CardOrderScenario", testCardOrderScenario},
		{"CardOrderConcurrentPush", testCardOrderConcurrentPush},
		{"ColumnDestroyed", testColumnDestroyed},
		{"ColumnUpdate", testColumnUpdate},
		{"BoardOrderAndMembers", testBoardOrderAndMembers},
		{"BoardsByUser", testBoardsByUser},
		{"UserDestroyedVisibility", testUserDestroyedVisibility},
		{"UserSearchByEmail", testUserSearchByEmail},
		{"UserLookups", testUserLookups},
		{"UserStarredBoards", testUserStarredBoards},
		{"UserUniqueEmail", testUserUniqueEmail},
		{"MissingDocuments", testMissingDocuments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func newBoard(t *testing.T, s database.DataStore, title string, owner types.ID) *models.Board {
	t.Helper()
	b, err := s.CreateBoard(context.Background(), models.BoardInput{
		Title:       title,
		Description: "Board used by the store suite",
		Type:        models.BoardTypePrivate,
		OwnerIDs:    []string{owner.Hex()},
	})
	require.NoError(t, err)
	return b
}

func newColumn(t *testing.T, s database.DataStore, boardID types.ID, title string) *models.Column {
	t.Helper()
	c, err := s.CreateColumn(context.Background(), models.ColumnInput{BoardID: boardID.Hex(), Title: title})
	require.NoError(t, err)
	return c
}

func newCard(t *testing.T, s database.DataStore, column *models.Column, title string) *models.Card {
	t.Helper()
	c, err := s.CreateCard(context.Background(), models.CardInput{
		BoardID:  column.BoardID.Hex(),
		ColumnID: column.ID.Hex(),
		Title:    title,
	})
	require.NoError(t, err)
	return c
}

func newUser(t *testing.T, s database.DataStore, email, username string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.UserInput{
		Email:       email,
		Username:    username,
		FullName:    "Suite User",
		Password:    "correct-horse",
		AvatarColor: "#3366ff",
	})
	require.NoError(t, err)
	return u
}

func testCardCreateThenFind(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	boardID, columnID := types.NewID(), types.NewID()

	created, err := s.CreateCard(ctx, models.CardInput{
		BoardID:     boardID.Hex(),
		ColumnID:    columnID.Hex(),
		Title:       "Write release notes",
		Description: "for the spring release",
	})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	found, err := s.GetCardByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, "Write release notes", found.Title)
	assert.Equal(t, "for the spring release", found.Description)
	assert.Equal(t, boardID, found.BoardID)
	assert.Equal(t, columnID, found.ColumnID)
	assert.False(t, found.Destroy)
	assert.NotNil(t, found.Attachment)
	assert.Empty(t, found.Attachment)
	assert.Nil(t, found.UpdatedAt)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
}

func testCardTitleBounds(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	boardID := types.NewID()

	for _, title := range []string{"ab", strings.Repeat("x", models.TitleMaxLength+1)} {
		_, err := s.CreateCard(ctx, models.CardInput{
			BoardID:  boardID.Hex(),
			ColumnID: types.NewID().Hex(),
			Title:    title,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrValidation)

		var perr *database.PersistenceError
		assert.True(t, errors.As(err, &perr))
		var verr *schema.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"title"}, verr.Fields())
	}

	cards, err := s.GetCardsByBoardID(ctx, boardID)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func testCardUpdateKeepsImmutableFields(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	column := newColumn(t, s, types.NewID(), "Backlog")
	card := newCard(t, s, column, "Original title")

	body := `{"boardId":"` + types.NewID().Hex() + `","createdAt":"2001-01-01T00:00:00Z","title":"New"}`
	var patch models.CardUpdate
	require.NoError(t, json.Unmarshal([]byte(body), &patch))

	updated, err := s.UpdateCard(ctx, card.ID, patch)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, card.BoardID, updated.BoardID)
	assert.True(t, card.CreatedAt.Equal(updated.CreatedAt))

	_, err = s.UpdateCard(ctx, card.ID, models.CardUpdate{Title: ptr("no")})
	assert.ErrorIs(t, err, schema.ErrValidation)

	found, err := s.GetCardByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", found.Title)
}

func testCardRemoveCoverIdempotent(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	column := newColumn(t, s, types.NewID(), "Design")
	card, err := s.CreateCard(ctx, models.CardInput{
		BoardID:  column.BoardID.Hex(),
		ColumnID: column.ID.Hex(),
		Title:    "Hero image",
		Cover:    "https://cdn.example.com/cover.png",
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/cover.png", card.Cover)

	once, err := s.RemoveCardCover(ctx, card.ID)
	require.NoError(t, err)
	require.NotNil(t, once)
	assert.Empty(t, once.Cover)

	twice, err := s.RemoveCardCover(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func testCardAttachments(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	column := newColumn(t, s, types.NewID(), "Docs")
	card := newCard(t, s, column, "Design upload")

	att := models.Attachment{
		ID:          "a1",
		Name:        "plan.pdf",
		URL:         "https://files.example.com/plan.pdf",
		ContentType: "application/pdf",
		Size:        2048,
		UploadedAt:  schema.Now(),
	}
	updated, err := s.PushCardAttachment(ctx, card.ID, att)
	require.NoError(t, err)
	require.Len(t, updated.Attachment, 1)
	assert.Equal(t, "plan.pdf", updated.Attachment[0].Name)
	assert.True(t, att.UploadedAt.Equal(updated.Attachment[0].UploadedAt))

	// Pushes append in call order and keep repeats.
	second := att
	second.ID, second.Name = "a2", "notes.txt"
	_, err = s.PushCardAttachment(ctx, card.ID, second)
	require.NoError(t, err)
	updated, err = s.PushCardAttachment(ctx, card.ID, att)
	require.NoError(t, err)

	names := make([]string, len(updated.Attachment))
	for i, a := range updated.Attachment {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"plan.pdf", "notes.txt", "plan.pdf"}, names)
}

func testCardDeletes(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	boardID := types.NewID()
	todo := newColumn(t, s, boardID, "Todo")
	done := newColumn(t, s, boardID, "Done")
	newCard(t, s, todo, "First")
	newCard(t, s, todo, "Second")
	kept := newCard(t, s, done, "Third")

	n, err := s.DeleteCardsByColumnID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	cards, err := s.GetCardsByBoardID(ctx, boardID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, kept.ID, cards[0].ID)

	n, err = s.DeleteCardByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.DeleteCardByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func testCardOrderPushPull(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	column := newColumn(t, s, types.NewID(), "Doing")
	a := newCard(t, s, column, "Card A")
	b := newCard(t, s, column, "Card B")

	_, err := s.PushCardOrderID(ctx, a)
	require.NoError(t, err)
	before, err := s.GetColumnByID(ctx, column.ID)
	require.NoError(t, err)

	pushed, err := s.PushCardOrderID(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []types.ID{a.ID, b.ID}, pushed.CardOrderIDs)

	pulled, err := s.PullCardOrderID(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, before.CardOrderIDs, pulled.CardOrderIDs)

	// pull removes every occurrence
	_, err = s.PushCardOrderID(ctx, a)
	require.NoError(t, err)
	pulled, err = s.PullCardOrderID(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, pulled.CardOrderIDs)
}

func testCardOrderConcurrentPush(t *testing.T, s database.DataStore) {
	const n = 20
	ctx := context.Background()
	column := newColumn(t, s, types.NewID(), "Busy")
	cards := make([]*models.Card, n)
	for i := range cards {
		cards[i] = newCard(t, s, column, fmt.Sprintf("Card %02d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, card := range cards {
		wg.Add(1)
		go func(card *models.Card) {
			defer wg.Done()
			_, err := s.PushCardOrderID(ctx, card)
			errs <- err
		}(card)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.GetColumnByID(ctx, column.ID)
	require.NoError(t, err)
	require.Len(t, got.CardOrderIDs, n)
	for _, card := range cards {
		assert.Contains(t, got.CardOrderIDs, card.ID)
	}
}

func testCardOrderScenario(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	columnA := newColumn(t, s, types.NewID(), "Column A")
	require.Empty(t, columnA.CardOrderIDs)

	c1 := newCard(t, s, columnA, "Card C1")

	col, err := s.PushCardOrderID(ctx, &models.Card{ID: c1.ID, ColumnID: columnA.ID})
	require.NoError(t, err)
	assert.Equal(t, []types.ID{c1.ID}, col.CardOrderIDs)

	n, err := s.DeleteCardByID(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	col, err = s.PullCardOrderID(ctx, &models.Card{ID: c1.ID, ColumnID: columnA.ID})
	require.NoError(t, err)
	assert.NotNil(t, col.CardOrderIDs)
	assert.Empty(t, col.CardOrderIDs)
}

func testColumnDestroyed(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	boardID := types.NewID()
	live := newColumn(t, s, boardID, "Live")
	first := newColumn(t, s, boardID, "Archived one")
	second := newColumn(t, s, boardID, "Archived two")
	other := newColumn(t, s, types.NewID(), "Elsewhere")

	for _, c := range []*models.Column{first, second, other} {
		_, err := s.UpdateColumn(ctx, c.ID, models.ColumnUpdate{Destroy: ptr(true)})
		require.NoError(t, err)
	}

	destroyed, err := s.GetDestroyedColumnsInBoard(ctx, boardID)
	require.NoError(t, err)
	require.Len(t, destroyed, 2)
	assert.Equal(t, first.ID, destroyed[0].ID)
	assert.Equal(t, second.ID, destroyed[1].ID)

	all, err := s.GetColumnsByBoardID(ctx, boardID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, live.ID, all[0].ID)

	none, err := s.GetDestroyedColumnsInBoard(ctx, types.NewID())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testColumnUpdate(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	column := newColumn(t, s, types.NewID(), "Review")
	x, y := types.NewID(), types.NewID()
	now := schema.Now()

	updated, err := s.UpdateColumn(ctx, column.ID, models.ColumnUpdate{
		Title:        ptr("In review"),
		CardOrderIDs: ptr([]string{y.Hex(), x.Hex()}),
		UpdatedAt:    &now,
	})
	require.NoError(t, err)
	assert.Equal(t, "In review", updated.Title)
	assert.Equal(t, []types.ID{y, x}, updated.CardOrderIDs)
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, now.Equal(*updated.UpdatedAt))
	assert.Equal(t, column.BoardID, updated.BoardID)

	_, err = s.UpdateColumn(ctx, column.ID, models.ColumnUpdate{CardOrderIDs: ptr([]string{"nope"})})
	assert.ErrorIs(t, err, schema.ErrValidation)

	unchanged, err := s.UpdateColumn(ctx, column.ID, models.ColumnUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "In review", unchanged.Title)
}

func testBoardOrderAndMembers(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	owner, member := types.NewID(), types.NewID()
	board := newBoard(t, s, "Roadmap", owner)
	assert.Equal(t, []types.ID{owner}, board.OwnerIDs)
	assert.NotNil(t, board.MemberIDs)

	col := newColumn(t, s, board.ID, "Q1")
	updated, err := s.PushColumnOrderID(ctx, col)
	require.NoError(t, err)
	assert.Equal(t, []types.ID{col.ID}, updated.ColumnOrderIDs)

	updated, err = s.PullColumnOrderID(ctx, col)
	require.NoError(t, err)
	assert.Empty(t, updated.ColumnOrderIDs)

	for range 2 {
		updated, err = s.AddBoardMember(ctx, board.ID, member)
		require.NoError(t, err)
	}
	assert.Equal(t, []types.ID{member}, updated.MemberIDs)

	updated, err = s.UpdateBoard(ctx, board.ID, models.BoardUpdate{
		Title: ptr("Roadmap 2026"),
		Type:  ptr(models.BoardTypePublic),
	})
	require.NoError(t, err)
	assert.Equal(t, "Roadmap 2026", updated.Title)
	assert.Equal(t, models.BoardTypePublic, updated.Type)

	_, err = s.UpdateBoard(ctx, board.ID, models.BoardUpdate{Type: ptr(models.BoardType("secret"))})
	assert.ErrorIs(t, err, schema.ErrValidation)

	n, err := s.DeleteBoardByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	gone, err := s.GetBoardByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func testBoardsByUser(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	user := types.NewID()
	zeta := newBoard(t, s, "Zeta", user)
	alpha := newBoard(t, s, "Alpha", types.NewID())
	_, err := s.AddBoardMember(ctx, alpha.ID, user)
	require.NoError(t, err)
	hidden := newBoard(t, s, "Hidden", user)
	_, err = s.UpdateBoard(ctx, hidden.ID, models.BoardUpdate{Destroy: ptr(true)})
	require.NoError(t, err)
	newBoard(t, s, "Unrelated", types.NewID())

	boards, err := s.GetBoardsByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, alpha.ID, boards[0].ID)
	assert.Equal(t, zeta.ID, boards[1].ID)
}

func testUserDestroyedVisibility(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	user := newUser(t, s, "gone@example.com", "gone")

	found, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	_, err = s.UpdateUser(ctx, user.ID, models.UserUpdate{Destroy: ptr(true)})
	require.NoError(t, err)

	found, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	byEmail, err := s.GetUserByEmail(ctx, "gone@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.True(t, byEmail.Destroy)
}

func testUserSearchByEmail(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	ana := newUser(t, s, "Ana.Lopez@example.com", "ana")
	newUser(t, s, "bob@example.org", "bob")
	newUser(t, s, "anaxlopez@example.net", "anax")

	found, err := s.FindUsersByEmail(ctx, "ana.lopez")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ana.ID, found[0].ID)

	found, err = s.FindUsersByEmail(ctx, "EXAMPLE")
	require.NoError(t, err)
	assert.Len(t, found, 3)

	// Case folding is not limited to ASCII.
	emile := newUser(t, s, "Émile.Zola@example.fr", "emile")
	for _, pattern := range []string{"émile", "ÉMILE.zola"} {
		found, err = s.FindUsersByEmail(ctx, pattern)
		require.NoError(t, err)
		require.Len(t, found, 1, pattern)
		assert.Equal(t, emile.ID, found[0].ID)
	}

	found, err = s.FindUsersByEmail(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = s.FindUsersByEmail(ctx, "")
	assert.ErrorIs(t, err, database.ErrInvalidArgument)
}

func testUserLookups(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	first := newUser(t, s, "first@example.com", "first")
	second := newUser(t, s, "second@example.com", "second")
	newUser(t, s, "third@example.com", "third")

	byName, err := s.GetUserByUsername(ctx, "second")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, second.ID, byName.ID)
	assert.Equal(t, "correct-horse", byName.Password)

	all, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := s.GetUsersByIDs(ctx, []types.ID{second.ID, first.ID, types.NewID()})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.ElementsMatch(t, []types.ID{first.ID, second.ID}, []types.ID{some[0].ID, some[1].ID})

	none, err := s.GetUsersByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	updated, err := s.UpdateUser(ctx, first.ID, models.UserUpdate{FullName: ptr("First Person")})
	require.NoError(t, err)
	assert.Equal(t, "First Person", updated.FullName)
	assert.Equal(t, "first", updated.Username)
}

func testUserStarredBoards(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	user := newUser(t, s, "stars@example.com", "stars")
	board := types.NewID()

	var (
		updated *models.User
		err     error
	)
	for range 2 {
		updated, err = s.AddStarredBoard(ctx, user.ID, board)
		require.NoError(t, err)
	}
	assert.Equal(t, []types.ID{board}, updated.StarredIDs)

	updated, err = s.RemoveStarredBoard(ctx, user.ID, board)
	require.NoError(t, err)
	assert.Empty(t, updated.StarredIDs)
}

func testUserUniqueEmail(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	newUser(t, s, "taken@example.com", "taken")

	_, err := s.CreateUser(ctx, models.UserInput{
		Email:       "taken@example.com",
		Username:    "someone-else",
		FullName:    "Someone Else",
		Password:    "another-pass",
		AvatarColor: "#000000",
	})
	require.Error(t, err)
	var perr *database.PersistenceError
	assert.True(t, errors.As(err, &perr))
	assert.NotErrorIs(t, err, schema.ErrValidation)
}

func testMissingDocuments(t *testing.T, s database.DataStore) {
	ctx := context.Background()
	missing := types.NewID()

	card, err := s.GetCardByID(ctx, missing)
	require.NoError(t, err)
	assert.Nil(t, card)

	card, err = s.UpdateCard(ctx, missing, models.CardUpdate{Title: ptr("Nothing here")})
	require.NoError(t, err)
	assert.Nil(t, card)

	card, err = s.RemoveCardCover(ctx, missing)
	require.NoError(t, err)
	assert.Nil(t, card)

	column, err := s.PushCardOrderID(ctx, &models.Card{ID: types.NewID(), ColumnID: missing})
	require.NoError(t, err)
	assert.Nil(t, column)

	board, err := s.AddBoardMember(ctx, missing, types.NewID())
	require.NoError(t, err)
	assert.Nil(t, board)

	user, err := s.GetUserByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	n, err := s.DeleteColumnByID(ctx, missing)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
