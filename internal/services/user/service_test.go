package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/database/sqlitestore"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupTestService(t *testing.T) (*sqlitestore.Store, Service) {
	t.Helper()
	s, err := sqlitestore.Open(context.Background(), sqlitestore.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	svc := NewService(s, nil).(*service)
	svc.cost = bcrypt.MinCost
	return s, svc
}

func userInput(name string) models.UserInput {
	return models.UserInput{
		Email:       name + "@example.com",
		Username:    name,
		FullName:    "Test " + name,
		Password:    "s3cret-pass",
		AvatarColor: "#102030",
	}
}

// ============================================================================
// TESTS
// ============================================================================

func TestRegisterHashesPassword(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, userInput("ana"))
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")))

	got, err := svc.Authenticate(ctx, models.Credentials{Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, models.Credentials{Email: "ana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, models.Credentials{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestOverlongPasswordIsValidationError(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	in := userInput("ana")
	in.Password = strings.Repeat("p", 80)
	_, err := svc.Register(ctx, in)
	assert.ErrorIs(t, err, schema.ErrValidation)

	user, err := svc.Register(ctx, userInput("ana"))
	require.NoError(t, err)
	long := strings.Repeat("p", 80)
	_, err = svc.UpdateUser(ctx, user.ID, models.UserUpdate{Password: &long})
	assert.ErrorIs(t, err, schema.ErrValidation)
}

func TestRegisterUniqueness(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, userInput("ana"))
	require.NoError(t, err)

	dupEmail := userInput("other")
	dupEmail.Email = "ana@example.com"
	_, err = svc.Register(ctx, dupEmail)
	assert.ErrorIs(t, err, ErrEmailTaken)

	dupName := userInput("ana")
	dupName.Email = "ana2@example.com"
	_, err = svc.Register(ctx, dupName)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	bad := userInput("bad")
	bad.Email = "not-an-email"
	bad.Password = "short"
	_, err = svc.Register(ctx, bad)
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email", "password"}, verr.Fields())
}

func TestUpdateUser(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	ana, err := svc.Register(ctx, userInput("ana"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, userInput("bob"))
	require.NoError(t, err)

	taken := "bob"
	_, err = svc.UpdateUser(ctx, ana.ID, models.UserUpdate{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	same := "ana"
	pw := "brand-new-pass"
	updated, err := svc.UpdateUser(ctx, ana.ID, models.UserUpdate{Username: &same, Password: &pw})
	require.NoError(t, err)
	assert.NotNil(t, updated.UpdatedAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(pw)))

	_, err = svc.UpdateUser(ctx, types.NewID(), models.UserUpdate{Password: &pw})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserHidesDestroyed(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	ana, err := svc.Register(ctx, userInput("ana"))
	require.NoError(t, err)

	destroy := true
	_, err = svc.UpdateUser(ctx, ana.ID, models.UserUpdate{Destroy: &destroy})
	require.NoError(t, err)

	_, err = svc.GetUser(ctx, ana.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	all, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.Authenticate(ctx, models.Credentials{Email: "ana@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSearchAndMembers(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	ana, err := svc.Register(ctx, userInput("ana"))
	require.NoError(t, err)
	bob, err := svc.Register(ctx, userInput("bob"))
	require.NoError(t, err)

	found, err := svc.SearchByEmail(ctx, "BOB@")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, bob.ID, found[0].ID)

	_, err = svc.SearchByEmail(ctx, "")
	assert.ErrorIs(t, err, database.ErrInvalidArgument)

	members, err := svc.GetMembers(ctx, []string{ana.ID.Hex(), bob.ID.Hex()})
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = svc.GetMembers(ctx, []string{"zzz"})
	assert.ErrorIs(t, err, database.ErrInvalidArgument)
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestStarBoard(t *testing.T) {
	s, svc := setupTestService(t)
	ctx := context.Background()

	ana, err := svc.Register(ctx, userInput("ana"))
	require.NoError(t, err)
	board, err := s.CreateBoard(ctx, models.BoardInput{Title: "Fav", Description: "Starred", Type: models.BoardTypePublic})
	require.NoError(t, err)

	starred, err := svc.StarBoard(ctx, ana.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.ID{board.ID}, starred.StarredIDs)

	_, err = svc.StarBoard(ctx, ana.ID, types.NewID())
	assert.ErrorIs(t, err, ErrBoardNotFound)
	_, err = svc.StarBoard(ctx, types.NewID(), board.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	unstarred, err := svc.UnstarBoard(ctx, ana.ID, board.ID)
	require.NoError(t, err)
	assert.Empty(t, unstarred.StarredIDs)
}
