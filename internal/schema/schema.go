// Package schema validates candidate documents before they reach a store.
// Validators report every violated constraint at once and return a normalized
// document with defaults applied.
package schema

import (
	"slices"
	"sort"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// ImmutableFields can never be changed by an update.
var ImmutableFields = []string{"_id", "boardId", "createdAt"}

// Now is the timestamp source for createdAt and updatedAt. Stores keep
// millisecond precision, so values are truncated to match.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// StripImmutable projects a raw update payload onto its mutable keys and
// reports the keys it dropped, sorted.
func StripImmutable[V any](fields map[string]V) (map[string]V, []string) {
	kept := make(map[string]V, len(fields))
	var dropped []string
	for k, v := range fields {
		if slices.Contains(ImmutableFields, k) {
			dropped = append(dropped, k)
			continue
		}
		kept[k] = v
	}
	sort.Strings(dropped)
	return kept, dropped
}

// ValidateBoard checks a candidate board and applies defaults.
func ValidateBoard(in models.BoardInput) (*models.Board, error) {
	c := newChecker("board")
	if c.required("title", in.Title) {
		c.text("title", in.Title, models.TitleMinLength, models.TitleMaxLength)
	}
	if c.required("description", in.Description) {
		c.text("description", in.Description, models.DescriptionMinLength, models.DescriptionMaxLength)
	}
	if c.required("type", string(in.Type)) && !in.Type.Valid() {
		c.fail("type", "must be one of [%s, %s]", models.BoardTypePublic, models.BoardTypePrivate)
	}
	c.objectIDs("columnOrderIds", in.ColumnOrderIDs)
	c.objectIDs("ownerIds", in.OwnerIDs)
	c.objectIDs("memberIds", in.MemberIDs)
	if err := c.err(); err != nil {
		return nil, err
	}

	return &models.Board{
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		ColumnOrderIDs: mustParseIDs(in.ColumnOrderIDs),
		OwnerIDs:       mustParseIDs(in.OwnerIDs),
		MemberIDs:      mustParseIDs(in.MemberIDs),
		CreatedAt:      Now(),
	}, nil
}

// ValidateColumn checks a candidate column and applies defaults.
func ValidateColumn(in models.ColumnInput) (*models.Column, error) {
	c := newChecker("column")
	if c.required("boardId", in.BoardID) {
		c.objectID("boardId", in.BoardID)
	}
	if c.required("title", in.Title) {
		c.text("title", in.Title, models.TitleMinLength, models.TitleMaxLength)
	}
	c.objectIDs("cardOrderIds", in.CardOrderIDs)
	if err := c.err(); err != nil {
		return nil, err
	}

	boardID, _ := types.ParseID(in.BoardID)
	return &models.Column{
		BoardID:      boardID,
		Title:        in.Title,
		CardOrderIDs: mustParseIDs(in.CardOrderIDs),
		CreatedAt:    Now(),
	}, nil
}

// ValidateCard checks a candidate card and applies defaults.
func ValidateCard(in models.CardInput) (*models.Card, error) {
	c := newChecker("card")
	if c.required("boardId", in.BoardID) {
		c.objectID("boardId", in.BoardID)
	}
	if c.required("columnId", in.ColumnID) {
		c.objectID("columnId", in.ColumnID)
	}
	if c.required("title", in.Title) {
		c.text("title", in.Title, models.TitleMinLength, models.TitleMaxLength)
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	boardID, _ := types.ParseID(in.BoardID)
	columnID, _ := types.ParseID(in.ColumnID)
	attachments := in.Attachment
	if attachments == nil {
		attachments = []models.Attachment{}
	}
	return &models.Card{
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       in.Title,
		Description: in.Description,
		Cover:       in.Cover,
		Attachment:  attachments,
		CreatedAt:   Now(),
	}, nil
}

// ValidateAttachment checks an attachment record. The caller assigns the id.
func ValidateAttachment(in models.AttachmentInput) (*models.Attachment, error) {
	c := newChecker("attachment")
	c.required("name", in.Name)
	if c.required("url", in.URL) && !govalidator.IsURL(in.URL) {
		c.fail("url", "must be a valid uri")
	}
	if in.Size < 0 {
		c.fail("size", "must be greater than or equal to 0")
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	return &models.Attachment{
		Name:        in.Name,
		URL:         in.URL,
		ContentType: in.ContentType,
		Size:        in.Size,
		UploadedAt:  Now(),
	}, nil
}

// ValidateUser checks a candidate user and applies defaults.
func ValidateUser(in models.UserInput) (*models.User, error) {
	c := newChecker("user")
	if c.required("email", in.Email) {
		c.email("email", in.Email)
	}
	c.required("username", in.Username)
	c.required("fullName", in.FullName)
	if c.required("password", in.Password) {
		c.password("password", in.Password)
	}
	c.required("avatarColor", in.AvatarColor)
	c.objectIDs("starredIds", in.StarredIDs)
	if err := c.err(); err != nil {
		return nil, err
	}

	return &models.User{
		Email:       in.Email,
		Username:    in.Username,
		FullName:    in.FullName,
		Password:    in.Password,
		AvatarColor: in.AvatarColor,
		StarredIDs:  mustParseIDs(in.StarredIDs),
		CreatedAt:   Now(),
	}, nil
}

// ValidateBoardUpdate checks only the fields present in u.
func ValidateBoardUpdate(u models.BoardUpdate) error {
	c := newChecker("board")
	if u.Title != nil {
		c.text("title", *u.Title, models.TitleMinLength, models.TitleMaxLength)
	}
	if u.Description != nil {
		c.text("description", *u.Description, models.DescriptionMinLength, models.DescriptionMaxLength)
	}
	if u.Type != nil && !u.Type.Valid() {
		c.fail("type", "must be one of [%s, %s]", models.BoardTypePublic, models.BoardTypePrivate)
	}
	if u.ColumnOrderIDs != nil {
		c.objectIDs("columnOrderIds", *u.ColumnOrderIDs)
	}
	return c.err()
}

// ValidateColumnUpdate checks only the fields present in u.
func ValidateColumnUpdate(u models.ColumnUpdate) error {
	c := newChecker("column")
	if u.Title != nil {
		c.text("title", *u.Title, models.TitleMinLength, models.TitleMaxLength)
	}
	if u.CardOrderIDs != nil {
		c.objectIDs("cardOrderIds", *u.CardOrderIDs)
	}
	return c.err()
}

// ValidateCardUpdate checks only the fields present in u.
func ValidateCardUpdate(u models.CardUpdate) error {
	c := newChecker("card")
	if u.Title != nil {
		c.text("title", *u.Title, models.TitleMinLength, models.TitleMaxLength)
	}
	if u.ColumnID != nil {
		c.objectID("columnId", *u.ColumnID)
	}
	return c.err()
}

// ValidateUserUpdate checks only the fields present in u.
func ValidateUserUpdate(u models.UserUpdate) error {
	c := newChecker("user")
	if u.Username != nil {
		c.required("username", *u.Username)
	}
	if u.FullName != nil {
		c.required("fullName", *u.FullName)
	}
	if u.Password != nil {
		c.password("password", *u.Password)
	}
	if u.AvatarColor != nil {
		c.required("avatarColor", *u.AvatarColor)
	}
	return c.err()
}

// mustParseIDs is only called after the checker accepted every element.
func mustParseIDs(ss []string) []types.ID {
	ids, err := types.ParseIDs(ss)
	if err != nil {
		panic(err)
	}
	return ids
}
