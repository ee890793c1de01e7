package models

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/types"
)

// Board is the top-level container. Columns are displayed in ColumnOrderIDs order.
type Board struct {
	ID             types.ID   `bson:"_id" json:"_id"`
	Title          string     `bson:"title" json:"title"`
	Description    string     `bson:"description" json:"description"`
	Type           BoardType  `bson:"type" json:"type"`
	ColumnOrderIDs []types.ID `bson:"columnOrderIds" json:"columnOrderIds"`
	OwnerIDs       []types.ID `bson:"ownerIds" json:"ownerIds"`
	MemberIDs      []types.ID `bson:"memberIds" json:"memberIds"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt      *time.Time `bson:"updatedAt" json:"updatedAt"`
	Destroy        bool       `bson:"_destroy" json:"_destroy"`
}

// HasUser reports whether userID owns or is a member of the board.
func (b *Board) HasUser(userID types.ID) bool {
	return types.ContainsID(b.OwnerIDs, userID) || types.ContainsID(b.MemberIDs, userID)
}

// BoardInput is a candidate board as received from a client.
type BoardInput struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Type           BoardType `json:"type"`
	ColumnOrderIDs []string  `json:"columnOrderIds,omitempty"`
	OwnerIDs       []string  `json:"ownerIds,omitempty"`
	MemberIDs      []string  `json:"memberIds,omitempty"`
}

// BoardUpdate is a partial update. Nil fields are left untouched.
type BoardUpdate struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Type           *BoardType `json:"type,omitempty"`
	ColumnOrderIDs *[]string  `json:"columnOrderIds,omitempty"`
	Destroy        *bool      `json:"_destroy,omitempty"`
	UpdatedAt      *time.Time `json:"-"`
}

// BoardDetails is a board with its visible columns, each holding its cards
// in cardOrderIds order.
type BoardDetails struct {
	*Board
	Columns []*ColumnDetails `json:"columns"`
}

// ColumnDetails pairs a column with its cards.
type ColumnDetails struct {
	*Column
	Cards []*Card `json:"cards"`
}
