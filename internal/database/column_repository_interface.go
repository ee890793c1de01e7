package database

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// ColumnReader defines read operations for columns.
type ColumnReader interface {
	GetColumnByID(ctx context.Context, id types.ID) (*models.Column, error)
	GetColumnsByBoardID(ctx context.Context, boardID types.ID) ([]*models.Column, error)
	// GetDestroyedColumnsInBoard lists soft-deleted columns of a board in storage order.
	GetDestroyedColumnsInBoard(ctx context.Context, boardID types.ID) ([]*models.Column, error)
}

// ColumnWriter defines write operations for columns.
type ColumnWriter interface {
	CreateColumn(ctx context.Context, in models.ColumnInput) (*models.Column, error)
	// UpdateColumn sets the non-nil patch fields. A present CardOrderIDs
	// replaces the whole sequence.
	UpdateColumn(ctx context.Context, id types.ID, patch models.ColumnUpdate) (*models.Column, error)
	// PushCardOrderID appends card.ID to the cardOrderIds of the column named
	// by card.ColumnID. Duplicates are not checked.
	PushCardOrderID(ctx context.Context, card *models.Card) (*models.Column, error)
	// PullCardOrderID removes every occurrence of card.ID from the column
	// named by card.ColumnID.
	PullCardOrderID(ctx context.Context, card *models.Card) (*models.Column, error)
	DeleteColumnByID(ctx context.Context, id types.ID) (int64, error)
}

// ColumnRepository combines all column-related operations.
type ColumnRepository interface {
	ColumnReader
	ColumnWriter
}
