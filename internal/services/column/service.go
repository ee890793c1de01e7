package column

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// Service defines all column-related business operations
type Service interface {
	// Read operations
	GetColumnByID(ctx context.Context, id types.ID) (*models.Column, error)
	GetArchivedColumns(ctx context.Context, boardID types.ID) ([]*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, in models.ColumnInput) (*models.Column, error)
	UpdateColumn(ctx context.Context, id types.ID, patch models.ColumnUpdate) (*models.Column, error)
	ArchiveColumn(ctx context.Context, id types.ID) (*models.Column, error)
	DeleteColumn(ctx context.Context, id types.ID) error
}

type service struct {
	store  database.DataStore
	logger *slog.Logger
}

// NewService creates a new column service
func NewService(store database.DataStore, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, logger: logger.With("service", "column")}
}

func (s *service) GetColumnByID(ctx context.Context, id types.ID) (*models.Column, error) {
	column, err := s.store.GetColumnByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}
	if column == nil {
		return nil, ErrColumnNotFound
	}
	return column, nil
}

// GetArchivedColumns lists the soft-deleted columns of a board.
func (s *service) GetArchivedColumns(ctx context.Context, boardID types.ID) ([]*models.Column, error) {
	columns, err := s.store.GetDestroyedColumnsInBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get archived columns: %w", err)
	}
	return columns, nil
}

// CreateColumn stores the column and appends it to the board's columnOrderIds.
func (s *service) CreateColumn(ctx context.Context, in models.ColumnInput) (*models.Column, error) {
	// Malformed ids fall through to the validator, which reports them.
	if boardID, err := types.ParseID(in.BoardID); err == nil {
		board, err := s.store.GetBoardByID(ctx, boardID)
		if err != nil {
			return nil, fmt.Errorf("failed to get board: %w", err)
		}
		if board == nil || board.Destroy {
			return nil, ErrBoardNotFound
		}
	}

	column, err := s.store.CreateColumn(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	if _, err := s.store.PushColumnOrderID(ctx, column); err != nil {
		s.logger.Warn("column created but not ordered", "column_id", column.ID.Hex(), "board_id", column.BoardID.Hex(), "error", err)
		return nil, fmt.Errorf("failed to update board column order: %w", err)
	}
	return column, nil
}

// UpdateColumn applies a patch. A present CardOrderIDs replaces the order.
func (s *service) UpdateColumn(ctx context.Context, id types.ID, patch models.ColumnUpdate) (*models.Column, error) {
	now := schema.Now()
	patch.UpdatedAt = &now

	column, err := s.store.UpdateColumn(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}
	if column == nil {
		return nil, ErrColumnNotFound
	}
	return column, nil
}

// ArchiveColumn soft-deletes a column. It stays in the board's order and is
// listed by GetArchivedColumns.
func (s *service) ArchiveColumn(ctx context.Context, id types.ID) (*models.Column, error) {
	destroy := true
	return s.UpdateColumn(ctx, id, models.ColumnUpdate{Destroy: &destroy})
}

// DeleteColumn removes the column's cards, the column itself and finally its
// entry in the board's columnOrderIds.
func (s *service) DeleteColumn(ctx context.Context, id types.ID) error {
	column, err := s.store.GetColumnByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get column: %w", err)
	}
	if column == nil {
		return ErrColumnNotFound
	}

	removed, err := s.store.DeleteCardsByColumnID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete cards: %w", err)
	}
	if _, err := s.store.DeleteColumnByID(ctx, id); err != nil {
		s.logger.Warn("column delete interrupted", "column_id", id.Hex(), "cards_removed", removed, "error", err)
		return fmt.Errorf("failed to delete column: %w", err)
	}
	if _, err := s.store.PullColumnOrderID(ctx, column); err != nil {
		s.logger.Warn("column deleted but still ordered", "column_id", id.Hex(), "board_id", column.BoardID.Hex(), "error", err)
		return fmt.Errorf("failed to update board column order: %w", err)
	}

	s.logger.Debug("column deleted", "column_id", id.Hex(), "cards_removed", removed)
	return nil
}
