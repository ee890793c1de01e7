package models

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/types"
)

// Column belongs to exactly one board. CardOrderIDs defines the display order
// of its cards and is maintained by explicit push/pull calls.
type Column struct {
	ID           types.ID   `bson:"_id" json:"_id"`
	BoardID      types.ID   `bson:"boardId" json:"boardId"`
	Title        string     `bson:"title" json:"title"`
	CardOrderIDs []types.ID `bson:"cardOrderIds" json:"cardOrderIds"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    *time.Time `bson:"updatedAt" json:"updatedAt"`
	Destroy      bool       `bson:"_destroy" json:"_destroy"`
}

// ColumnInput is a candidate column as received from a client.
type ColumnInput struct {
	BoardID      string   `json:"boardId"`
	Title        string   `json:"title"`
	CardOrderIDs []string `json:"cardOrderIds,omitempty"`
}

// ColumnUpdate is a partial update. A non-nil CardOrderIDs replaces the whole
// sequence.
type ColumnUpdate struct {
	Title        *string    `json:"title,omitempty"`
	CardOrderIDs *[]string  `json:"cardOrderIds,omitempty"`
	Destroy      *bool      `json:"_destroy,omitempty"`
	UpdatedAt    *time.Time `json:"-"`
}
