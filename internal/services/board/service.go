package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// Service defines all board-related business operations
type Service interface {
	// Read operations
	GetBoardDetails(ctx context.Context, id types.ID) (*models.BoardDetails, error)
	GetBoardsForUser(ctx context.Context, userID types.ID) ([]*models.Board, error)

	// Write operations
	CreateBoard(ctx context.Context, creatorID types.ID, in models.BoardInput) (*models.Board, error)
	UpdateBoard(ctx context.Context, id types.ID, patch models.BoardUpdate) (*models.Board, error)
	AddMember(ctx context.Context, boardID, userID types.ID) (*models.Board, error)
	DeleteBoard(ctx context.Context, id types.ID) error
}

type service struct {
	store  database.DataStore
	logger *slog.Logger
}

// NewService creates a new board service
func NewService(store database.DataStore, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, logger: logger.With("service", "board")}
}

// CreateBoard stores a board with the creator listed as an owner.
func (s *service) CreateBoard(ctx context.Context, creatorID types.ID, in models.BoardInput) (*models.Board, error) {
	if creatorID.IsZero() {
		return nil, ErrInvalidOwner
	}
	creator := creatorID.Hex()
	owners := []string{creator}
	for _, id := range in.OwnerIDs {
		if id != creator {
			owners = append(owners, id)
		}
	}
	in.OwnerIDs = owners

	board, err := s.store.CreateBoard(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	s.logger.Debug("board created", "board_id", board.ID.Hex(), "creator", creator)
	return board, nil
}

// GetBoardDetails assembles a board with its columns in columnOrderIds order
// and each column's cards in cardOrderIds order. Soft-deleted columns and
// cards are hidden.
func (s *service) GetBoardDetails(ctx context.Context, id types.ID) (*models.BoardDetails, error) {
	board, err := s.store.GetBoardByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	if board == nil || board.Destroy {
		return nil, ErrBoardNotFound
	}

	columns, err := s.store.GetColumnsByBoardID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	cards, err := s.store.GetCardsByBoardID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}

	cardsByColumn := make(map[types.ID][]*models.Card)
	for _, card := range cards {
		if !card.Destroy {
			cardsByColumn[card.ColumnID] = append(cardsByColumn[card.ColumnID], card)
		}
	}

	visible := make([]*models.Column, 0, len(columns))
	for _, col := range columns {
		if !col.Destroy {
			visible = append(visible, col)
		}
	}

	details := &models.BoardDetails{Board: board, Columns: []*models.ColumnDetails{}}
	for _, col := range orderByIDs(visible, board.ColumnOrderIDs, func(c *models.Column) types.ID { return c.ID }) {
		details.Columns = append(details.Columns, &models.ColumnDetails{
			Column: col,
			Cards:  orderByIDs(cardsByColumn[col.ID], col.CardOrderIDs, func(c *models.Card) types.ID { return c.ID }),
		})
	}
	return details, nil
}

// GetBoardsForUser lists the boards a user owns or belongs to, by title.
func (s *service) GetBoardsForUser(ctx context.Context, userID types.ID) ([]*models.Board, error) {
	boards, err := s.store.GetBoardsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

func (s *service) UpdateBoard(ctx context.Context, id types.ID, patch models.BoardUpdate) (*models.Board, error) {
	now := schema.Now()
	patch.UpdatedAt = &now

	board, err := s.store.UpdateBoard(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	return board, nil
}

// AddMember adds an existing user to the board's members.
func (s *service) AddMember(ctx context.Context, boardID, userID types.ID) (*models.Board, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	board, err := s.store.AddBoardMember(ctx, boardID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	return board, nil
}

// DeleteBoard removes the board together with its columns and their cards.
// Cards go first so an interrupted delete never leaves cards without a column.
func (s *service) DeleteBoard(ctx context.Context, id types.ID) error {
	board, err := s.store.GetBoardByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}
	if board == nil {
		return ErrBoardNotFound
	}

	columns, err := s.store.GetColumnsByBoardID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get columns: %w", err)
	}
	for _, col := range columns {
		if _, err := s.store.DeleteCardsByColumnID(ctx, col.ID); err != nil {
			s.logger.Warn("board delete interrupted", "board_id", id.Hex(), "column_id", col.ID.Hex(), "error", err)
			return fmt.Errorf("failed to delete cards: %w", err)
		}
		if _, err := s.store.DeleteColumnByID(ctx, col.ID); err != nil {
			s.logger.Warn("board delete interrupted", "board_id", id.Hex(), "column_id", col.ID.Hex(), "error", err)
			return fmt.Errorf("failed to delete column: %w", err)
		}
	}

	if _, err := s.store.DeleteBoardByID(ctx, id); err != nil {
		s.logger.Warn("board delete interrupted", "board_id", id.Hex(), "error", err)
		return fmt.Errorf("failed to delete board: %w", err)
	}
	s.logger.Debug("board deleted", "board_id", id.Hex(), "columns", len(columns))
	return nil
}

// orderByIDs returns items sorted by their position in order. Items missing
// from order keep their relative order and go last.
func orderByIDs[T any](items []T, order []types.ID, id func(T) types.ID) []T {
	byID := make(map[types.ID]T, len(items))
	for _, it := range items {
		byID[id(it)] = it
	}

	out := make([]T, 0, len(items))
	placed := make(map[types.ID]bool, len(items))
	for _, oid := range order {
		if it, ok := byID[oid]; ok && !placed[oid] {
			out = append(out, it)
			placed[oid] = true
		}
	}
	for _, it := range items {
		if !placed[id(it)] {
			out = append(out, it)
		}
	}
	return out
}
