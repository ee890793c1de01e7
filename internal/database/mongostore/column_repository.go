package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// ColumnRepo handles the columns collection.
type ColumnRepo struct {
	coll *mongo.Collection
}

func (r *ColumnRepo) CreateColumn(ctx context.Context, in models.ColumnInput) (*models.Column, error) {
	column, err := schema.ValidateColumn(in)
	if err != nil {
		return nil, database.Wrap("insert", r.coll.Name(), err)
	}
	column.ID = types.NewID()
	if err := insertOne(ctx, r.coll, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (r *ColumnRepo) GetColumnByID(ctx context.Context, id types.ID) (*models.Column, error) {
	return findOne[models.Column](ctx, r.coll, byID(id))
}

func (r *ColumnRepo) GetColumnsByBoardID(ctx context.Context, boardID types.ID) ([]*models.Column, error) {
	return findMany[models.Column](ctx, r.coll, bson.M{"boardId": boardID})
}

func (r *ColumnRepo) GetDestroyedColumnsInBoard(ctx context.Context, boardID types.ID) ([]*models.Column, error) {
	return aggregate[models.Column](ctx, r.coll, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "boardId", Value: boardID},
			{Key: "_destroy", Value: true},
		}}},
	})
}

func (r *ColumnRepo) UpdateColumn(ctx context.Context, id types.ID, patch models.ColumnUpdate) (*models.Column, error) {
	if err := schema.ValidateColumnUpdate(patch); err != nil {
		return nil, database.Wrap("update", r.coll.Name(), err)
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.CardOrderIDs != nil {
		ids, err := types.ParseIDs(*patch.CardOrderIDs)
		if err != nil {
			return nil, database.Wrap("update", r.coll.Name(), err)
		}
		set["cardOrderIds"] = ids
	}
	if patch.Destroy != nil {
		set["_destroy"] = *patch.Destroy
	}
	if patch.UpdatedAt != nil {
		set["updatedAt"] = *patch.UpdatedAt
	}
	if len(set) == 0 {
		return r.GetColumnByID(ctx, id)
	}

	return findOneAndUpdate[models.Column](ctx, r.coll, "update", byID(id), bson.M{"$set": set})
}

func (r *ColumnRepo) PushCardOrderID(ctx context.Context, card *models.Card) (*models.Column, error) {
	return findOneAndUpdate[models.Column](ctx, r.coll, "update", byID(card.ColumnID),
		bson.M{"$push": bson.M{"cardOrderIds": card.ID}})
}

func (r *ColumnRepo) PullCardOrderID(ctx context.Context, card *models.Card) (*models.Column, error) {
	return findOneAndUpdate[models.Column](ctx, r.coll, "update", byID(card.ColumnID),
		bson.M{"$pull": bson.M{"cardOrderIds": card.ID}})
}

func (r *ColumnRepo) DeleteColumnByID(ctx context.Context, id types.ID) (int64, error) {
	return deleteOne(ctx, r.coll, byID(id))
}
