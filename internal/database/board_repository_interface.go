package database

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// BoardReader defines read operations for boards.
type BoardReader interface {
	GetBoardByID(ctx context.Context, id types.ID) (*models.Board, error)
	// GetBoardsByUser lists non-destroyed boards the user owns or belongs to.
	GetBoardsByUser(ctx context.Context, userID types.ID) ([]*models.Board, error)
}

// BoardWriter defines write operations for boards.
type BoardWriter interface {
	CreateBoard(ctx context.Context, in models.BoardInput) (*models.Board, error)
	UpdateBoard(ctx context.Context, id types.ID, patch models.BoardUpdate) (*models.Board, error)
	PushColumnOrderID(ctx context.Context, column *models.Column) (*models.Board, error)
	PullColumnOrderID(ctx context.Context, column *models.Column) (*models.Board, error)
	// AddBoardMember adds userID to memberIds unless it is already there.
	AddBoardMember(ctx context.Context, boardID, userID types.ID) (*models.Board, error)
	DeleteBoardByID(ctx context.Context, id types.ID) (int64, error)
}

// BoardRepository combines all board-related operations.
type BoardRepository interface {
	BoardReader
	BoardWriter
}
