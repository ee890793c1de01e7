package sqlitestore

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// CardRepo handles the cards table.
type CardRepo struct {
	cards *collection[models.Card]
}

func (r *CardRepo) CreateCard(ctx context.Context, in models.CardInput) (*models.Card, error) {
	card, err := schema.ValidateCard(in)
	if err != nil {
		return nil, database.Wrap("insert", r.cards.name, err)
	}
	card.ID = types.NewID()
	if err := r.cards.insert(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (r *CardRepo) GetCardByID(ctx context.Context, id types.ID) (*models.Card, error) {
	return r.cards.byID(ctx, id.Hex())
}

func (r *CardRepo) GetCardsByBoardID(ctx context.Context, boardID types.ID) ([]*models.Card, error) {
	return r.cards.find(ctx, "board_id = ?", boardID.Hex())
}

func (r *CardRepo) UpdateCard(ctx context.Context, id types.ID, patch models.CardUpdate) (*models.Card, error) {
	if err := schema.ValidateCardUpdate(patch); err != nil {
		return nil, database.Wrap("update", r.cards.name, err)
	}
	var columnID *types.ID
	if patch.ColumnID != nil {
		parsed, err := types.ParseID(*patch.ColumnID)
		if err != nil {
			return nil, database.Wrap("update", r.cards.name, err)
		}
		columnID = &parsed
	}

	return r.cards.update(ctx, id.Hex(), func(c *models.Card) error {
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if columnID != nil {
			c.ColumnID = *columnID
		}
		if patch.Cover != nil {
			c.Cover = *patch.Cover
		}
		if patch.Destroy != nil {
			c.Destroy = *patch.Destroy
		}
		if patch.UpdatedAt != nil {
			c.UpdatedAt = patch.UpdatedAt
		}
		return nil
	})
}

func (r *CardRepo) RemoveCardCover(ctx context.Context, id types.ID) (*models.Card, error) {
	return r.cards.update(ctx, id.Hex(), func(c *models.Card) error {
		c.Cover = ""
		return nil
	})
}

func (r *CardRepo) PushCardAttachment(ctx context.Context, id types.ID, attachment models.Attachment) (*models.Card, error) {
	return r.cards.update(ctx, id.Hex(), func(c *models.Card) error {
		c.Attachment = append(c.Attachment, attachment)
		return nil
	})
}

func (r *CardRepo) DeleteCardsByColumnID(ctx context.Context, columnID types.ID) (int64, error) {
	return r.cards.delete(ctx, "column_id = ?", columnID.Hex())
}

func (r *CardRepo) DeleteCardByID(ctx context.Context, id types.ID) (int64, error) {
	return r.cards.delete(ctx, "id = ?", id.Hex())
}
