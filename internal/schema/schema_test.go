package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

const (
	boardHex  = "65a1b2c3d4e5f60718293a4b"
	columnHex = "65a1b2c3d4e5f60718293a4c"
)

func validCardInput() models.CardInput {
	return models.CardInput{
		BoardID:     boardHex,
		ColumnID:    columnHex,
		Title:       "Write docs",
		Description: "for the API",
	}
}

func TestValidateCardAppliesDefaults(t *testing.T) {
	card, err := ValidateCard(validCardInput())
	require.NoError(t, err)

	assert.Equal(t, boardHex, card.BoardID.Hex())
	assert.Equal(t, columnHex, card.ColumnID.Hex())
	assert.Equal(t, "Write docs", card.Title)
	assert.Equal(t, "for the API", card.Description)
	assert.NotNil(t, card.Attachment)
	assert.Empty(t, card.Attachment)
	assert.False(t, card.Destroy)
	assert.Nil(t, card.UpdatedAt)
	assert.False(t, card.CreatedAt.IsZero())
	assert.True(t, card.ID.IsZero(), "id is assigned by the store")
}

func TestValidateCardTitleBounds(t *testing.T) {
	tests := []struct {
		name  string
		title string
		ok    bool
	}{
		{"too short", "ab", false},
		{"minimum", "abc", true},
		{"maximum", strings.Repeat("x", 50), true},
		{"too long", strings.Repeat("x", 51), false},
		{"multibyte counted as runes", strings.Repeat("é", 50), true},
		{"leading space", " abc", false},
		{"trailing space", "abc ", false},
		{"inner spaces kept", "a  b  c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCardInput()
			in.Title = tt.title
			_, err := ValidateCard(in)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields(), "title")
		})
	}
}

func TestValidateCardReportsEveryViolation(t *testing.T) {
	_, err := ValidateCard(models.CardInput{
		BoardID:  "not-an-id",
		ColumnID: "",
		Title:    "x",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "card", verr.Entity)
	assert.Equal(t, []string{"boardId", "columnId", "title"}, verr.Fields())
	assert.Contains(t, err.Error(), "fails to match the Object Id pattern")
}

func TestValidateColumn(t *testing.T) {
	col, err := ValidateColumn(models.ColumnInput{BoardID: boardHex, Title: "Todo list"})
	require.NoError(t, err)
	assert.Equal(t, boardHex, col.BoardID.Hex())
	assert.NotNil(t, col.CardOrderIDs)
	assert.Empty(t, col.CardOrderIDs)

	_, err = ValidateColumn(models.ColumnInput{
		BoardID:      boardHex,
		Title:        "Todo list",
		CardOrderIDs: []string{columnHex, "zz"},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"cardOrderIds[1]"}, verr.Fields())
}

func TestValidateUser(t *testing.T) {
	in := models.UserInput{
		Email:       "ada@example.com",
		Username:    "ada",
		FullName:    "Ada Lovelace",
		Password:    "analytical",
		AvatarColor: "#ff00aa",
	}
	user, err := ValidateUser(in)
	require.NoError(t, err)
	assert.Equal(t, "analytical", user.Password, "stored as provided")
	assert.NotNil(t, user.StarredIDs)
	assert.False(t, user.Destroy)

	in.Email = "nope"
	in.Password = "short"
	in.AvatarColor = ""
	_, err = ValidateUser(in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email", "password", "avatarColor"}, verr.Fields())
}

func TestValidateBoard(t *testing.T) {
	board, err := ValidateBoard(models.BoardInput{
		Title:       "Roadmap",
		Description: "Q3 planning",
		Type:        models.BoardTypePrivate,
	})
	require.NoError(t, err)
	assert.Empty(t, board.ColumnOrderIDs)
	assert.NotNil(t, board.OwnerIDs)

	_, err = ValidateBoard(models.BoardInput{Title: "Roadmap", Description: "ok!", Type: "secret"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"type"}, verr.Fields())
}

func TestValidateUpdates(t *testing.T) {
	short := "ab"
	badID := "123"
	err := ValidateCardUpdate(models.CardUpdate{Title: &short, ColumnID: &badID})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"title", "columnId"}, verr.Fields())

	assert.NoError(t, ValidateCardUpdate(models.CardUpdate{}))

	ids := []string{types.NewID().Hex()}
	assert.NoError(t, ValidateColumnUpdate(models.ColumnUpdate{CardOrderIDs: &ids}))

	pw := "1234567"
	assert.Error(t, ValidateUserUpdate(models.UserUpdate{Password: &pw}))
}

func TestPasswordByteLimit(t *testing.T) {
	in := models.UserInput{
		Email:       "ada@example.com",
		Username:    "ada",
		FullName:    "Ada Lovelace",
		Password:    strings.Repeat("p", models.PasswordMaxBytes),
		AvatarColor: "#ff00aa",
	}
	_, err := ValidateUser(in)
	require.NoError(t, err)

	in.Password = strings.Repeat("p", 80)
	in.Email = "nope"
	_, err = ValidateUser(in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email", "password"}, verr.Fields())

	// 25 three-byte runes pass a character count but not the byte limit.
	long := strings.Repeat("€", 25)
	err = ValidateUserUpdate(models.UserUpdate{Password: &long})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"password"}, verr.Fields())
}

func TestCardUpdateDropsImmutableKeys(t *testing.T) {
	body := []byte(`{"boardId":"` + columnHex + `","createdAt":"2020-01-01T00:00:00Z","_id":"x","title":"New"}`)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	kept, dropped := StripImmutable(raw)
	assert.Equal(t, []string{"_id", "boardId", "createdAt"}, dropped)
	assert.Len(t, kept, 1)

	var patch models.CardUpdate
	require.NoError(t, json.Unmarshal(body, &patch))
	require.NotNil(t, patch.Title)
	assert.Equal(t, "New", *patch.Title)
	assert.Nil(t, patch.ColumnID)
	assert.Nil(t, patch.UpdatedAt)
}

func TestValidateAttachment(t *testing.T) {
	att, err := ValidateAttachment(models.AttachmentInput{
		Name: "notes.txt",
		URL:  "https://files.example.com/notes.txt",
		Size: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", att.Name)
	assert.Empty(t, att.ID)
	assert.False(t, att.UploadedAt.IsZero())

	_, err = ValidateAttachment(models.AttachmentInput{URL: "not a url", Size: -1})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name", "url", "size"}, verr.Fields())
}
