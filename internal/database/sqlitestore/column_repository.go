package sqlitestore

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// ColumnRepo handles the columns table.
type ColumnRepo struct {
	columns *collection[models.Column]
}

func (r *ColumnRepo) CreateColumn(ctx context.Context, in models.ColumnInput) (*models.Column, error) {
	column, err := schema.ValidateColumn(in)
	if err != nil {
		return nil, database.Wrap("insert", r.columns.name, err)
	}
	column.ID = types.NewID()
	if err := r.columns.insert(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (r *ColumnRepo) GetColumnByID(ctx context.Context, id types.ID) (*models.Column, error) {
	return r.columns.byID(ctx, id.Hex())
}

func (r *ColumnRepo) GetColumnsByBoardID(ctx context.Context, boardID types.ID) ([]*models.Column, error) {
	return r.columns.find(ctx, "board_id = ?", boardID.Hex())
}

func (r *ColumnRepo) GetDestroyedColumnsInBoard(ctx context.Context, boardID types.ID) ([]*models.Column, error) {
	return r.columns.find(ctx, "board_id = ? AND destroyed = ?", boardID.Hex(), true)
}

func (r *ColumnRepo) UpdateColumn(ctx context.Context, id types.ID, patch models.ColumnUpdate) (*models.Column, error) {
	if err := schema.ValidateColumnUpdate(patch); err != nil {
		return nil, database.Wrap("update", r.columns.name, err)
	}
	var cardOrder []types.ID
	if patch.CardOrderIDs != nil {
		ids, err := types.ParseIDs(*patch.CardOrderIDs)
		if err != nil {
			return nil, database.Wrap("update", r.columns.name, err)
		}
		cardOrder = ids
	}

	return r.columns.update(ctx, id.Hex(), func(c *models.Column) error {
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if cardOrder != nil {
			c.CardOrderIDs = cardOrder
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

func (r *ColumnRepo) PushCardOrderID(ctx context.Context, card *models.Card) (*models.Column, error) {
	return r.columns.update(ctx, card.ColumnID.Hex(), func(c *models.Column) error {
		c.CardOrderIDs = append(c.CardOrderIDs, card.ID)
		return nil
	})
}

func (r *ColumnRepo) PullCardOrderID(ctx context.Context, card *models.Card) (*models.Column, error) {
	return r.columns.update(ctx, card.ColumnID.Hex(), func(c *models.Column) error {
		c.CardOrderIDs = types.RemoveID(c.CardOrderIDs, card.ID)
		return nil
	})
}

func (r *ColumnRepo) DeleteColumnByID(ctx context.Context, id types.ID) (int64, error) {
	return r.columns.delete(ctx, "id = ?", id.Hex())
}
