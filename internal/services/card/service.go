package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// Service defines all card-related business operations
type Service interface {
	// Read operations
	GetCardByID(ctx context.Context, id types.ID) (*models.Card, error)

	// Write operations
	CreateCard(ctx context.Context, in models.CardInput) (*models.Card, error)
	UpdateCard(ctx context.Context, id types.ID, patch models.CardUpdate) (*models.Card, error)
	RemoveCover(ctx context.Context, id types.ID) (*models.Card, error)
	AddAttachment(ctx context.Context, id types.ID, in models.AttachmentInput) (*models.Card, error)
	DeleteCard(ctx context.Context, id types.ID) error
}

type service struct {
	store  database.DataStore
	logger *slog.Logger
}

// NewService creates a new card service
func NewService(store database.DataStore, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, logger: logger.With("service", "card")}
}

func (s *service) GetCardByID(ctx context.Context, id types.ID) (*models.Card, error) {
	card, err := s.store.GetCardByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// CreateCard stores the card and appends it to its column's cardOrderIds.
func (s *service) CreateCard(ctx context.Context, in models.CardInput) (*models.Card, error) {
	// Malformed ids fall through to the validator, which reports them.
	if columnID, err := types.ParseID(in.ColumnID); err == nil {
		if _, err := s.targetColumn(ctx, columnID, in.BoardID); err != nil {
			return nil, err
		}
	}

	card, err := s.store.CreateCard(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	if _, err := s.store.PushCardOrderID(ctx, card); err != nil {
		s.logger.Warn("card created but not ordered", "card_id", card.ID.Hex(), "column_id", card.ColumnID.Hex(), "error", err)
		return nil, fmt.Errorf("failed to update column card order: %w", err)
	}
	return card, nil
}

// UpdateCard applies a patch. When ColumnID names another column the card is
// moved: pulled from the old column's order and pushed onto the new one.
func (s *service) UpdateCard(ctx context.Context, id types.ID, patch models.CardUpdate) (*models.Card, error) {
	current, err := s.GetCardByID(ctx, id)
	if err != nil {
		return nil, err
	}

	moving := false
	if patch.ColumnID != nil {
		// Malformed ids fall through to the validator inside UpdateCard.
		if columnID, err := types.ParseID(*patch.ColumnID); err == nil && columnID != current.ColumnID {
			if _, err := s.targetColumn(ctx, columnID, current.BoardID.Hex()); err != nil {
				return nil, err
			}
			moving = true
		}
	}

	now := schema.Now()
	patch.UpdatedAt = &now

	updated, err := s.store.UpdateCard(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	if updated == nil {
		return nil, ErrCardNotFound
	}
	if !moving {
		return updated, nil
	}

	if _, err := s.store.PullCardOrderID(ctx, current); err != nil {
		s.logger.Warn("card moved but still ordered in old column", "card_id", id.Hex(), "column_id", current.ColumnID.Hex(), "error", err)
		return nil, fmt.Errorf("failed to update old column card order: %w", err)
	}
	if _, err := s.store.PushCardOrderID(ctx, updated); err != nil {
		s.logger.Warn("card moved but not ordered in new column", "card_id", id.Hex(), "column_id", updated.ColumnID.Hex(), "error", err)
		return nil, fmt.Errorf("failed to update new column card order: %w", err)
	}
	s.logger.Debug("card moved", "card_id", id.Hex(), "from", current.ColumnID.Hex(), "to", updated.ColumnID.Hex())
	return updated, nil
}

func (s *service) RemoveCover(ctx context.Context, id types.ID) (*models.Card, error) {
	card, err := s.store.RemoveCardCover(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cover: %w", err)
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// AddAttachment validates the record, gives it a fresh id and appends it.
func (s *service) AddAttachment(ctx context.Context, id types.ID, in models.AttachmentInput) (*models.Card, error) {
	att, err := schema.ValidateAttachment(in)
	if err != nil {
		return nil, err
	}
	att.ID = uuid.NewString()

	card, err := s.store.PushCardAttachment(ctx, id, *att)
	if err != nil {
		return nil, fmt.Errorf("failed to add attachment: %w", err)
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// DeleteCard removes the card, then its entry in the column's cardOrderIds.
func (s *service) DeleteCard(ctx context.Context, id types.ID) error {
	card, err := s.GetCardByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.store.DeleteCardByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if _, err := s.store.PullCardOrderID(ctx, card); err != nil {
		s.logger.Warn("card deleted but still ordered", "card_id", id.Hex(), "column_id", card.ColumnID.Hex(), "error", err)
		return fmt.Errorf("failed to update column card order: %w", err)
	}
	return nil
}

// targetColumn loads a live column and checks it belongs to boardID.
func (s *service) targetColumn(ctx context.Context, columnID types.ID, boardID string) (*models.Column, error) {
	column, err := s.store.GetColumnByID(ctx, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}
	if column == nil || column.Destroy {
		return nil, ErrColumnNotFound
	}
	if id, err := types.ParseID(boardID); err == nil && id != column.BoardID {
		return nil, ErrColumnMismatch
	}
	return column, nil
}
