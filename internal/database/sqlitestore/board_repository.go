package sqlitestore

import (
	"context"
	"sort"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// BoardRepo handles the boards table.
type BoardRepo struct {
	boards *collection[models.Board]
}

func (r *BoardRepo) CreateBoard(ctx context.Context, in models.BoardInput) (*models.Board, error) {
	board, err := schema.ValidateBoard(in)
	if err != nil {
		return nil, database.Wrap("insert", r.boards.name, err)
	}
	board.ID = types.NewID()
	if err := r.boards.insert(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (r *BoardRepo) GetBoardByID(ctx context.Context, id types.ID) (*models.Board, error) {
	return r.boards.byID(ctx, id.Hex())
}

// GetBoardsByUser filters membership in memory; ownerIds and memberIds live
// only inside the document.
func (r *BoardRepo) GetBoardsByUser(ctx context.Context, userID types.ID) ([]*models.Board, error) {
	all, err := r.boards.find(ctx, "destroyed = ?", false)
	if err != nil {
		return nil, err
	}
	boards := []*models.Board{}
	for _, b := range all {
		if b.HasUser(userID) {
			boards = append(boards, b)
		}
	}
	sort.SliceStable(boards, func(i, j int) bool { return boards[i].Title < boards[j].Title })
	return boards, nil
}

func (r *BoardRepo) UpdateBoard(ctx context.Context, id types.ID, patch models.BoardUpdate) (*models.Board, error) {
	if err := schema.ValidateBoardUpdate(patch); err != nil {
		return nil, database.Wrap("update", r.boards.name, err)
	}
	var columnOrder []types.ID
	if patch.ColumnOrderIDs != nil {
		ids, err := types.ParseIDs(*patch.ColumnOrderIDs)
		if err != nil {
			return nil, database.Wrap("update", r.boards.name, err)
		}
		columnOrder = ids
	}

	return r.boards.update(ctx, id.Hex(), func(b *models.Board) error {
		if patch.Title != nil {
			b.Title = *patch.Title
		}
		if patch.Description != nil {
			b.Description = *patch.Description
		}
		if patch.Type != nil {
			b.Type = *patch.Type
		}
		if columnOrder != nil {
			b.ColumnOrderIDs = columnOrder
		}
		if patch.Destroy != nil {
			b.Destroy = *patch.Destroy
		}
		if patch.UpdatedAt != nil {
			b.UpdatedAt = patch.UpdatedAt
		}
		return nil
	})
}

func (r *BoardRepo) PushColumnOrderID(ctx context.Context, column *models.Column) (*models.Board, error) {
	return r.boards.update(ctx, column.BoardID.Hex(), func(b *models.Board) error {
		b.ColumnOrderIDs = append(b.ColumnOrderIDs, column.ID)
		return nil
	})
}

func (r *BoardRepo) PullColumnOrderID(ctx context.Context, column *models.Column) (*models.Board, error) {
	return r.boards.update(ctx, column.BoardID.Hex(), func(b *models.Board) error {
		b.ColumnOrderIDs = types.RemoveID(b.ColumnOrderIDs, column.ID)
		return nil
	})
}

func (r *BoardRepo) AddBoardMember(ctx context.Context, boardID, userID types.ID) (*models.Board, error) {
	return r.boards.update(ctx, boardID.Hex(), func(b *models.Board) error {
		if !types.ContainsID(b.MemberIDs, userID) {
			b.MemberIDs = append(b.MemberIDs, userID)
		}
		return nil
	})
}

func (r *BoardRepo) DeleteBoardByID(ctx context.Context, id types.ID) (int64, error) {
	return r.boards.delete(ctx, "id = ?", id.Hex())
}
