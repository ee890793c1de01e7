package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// BoardRepo handles the boards collection.
type BoardRepo struct {
	coll *mongo.Collection
}

func (r *BoardRepo) CreateBoard(ctx context.Context, in models.BoardInput) (*models.Board, error) {
	board, err := schema.ValidateBoard(in)
	if err != nil {
		return nil, database.Wrap("insert", r.coll.Name(), err)
	}
	board.ID = types.NewID()
	if err := insertOne(ctx, r.coll, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (r *BoardRepo) GetBoardByID(ctx context.Context, id types.ID) (*models.Board, error) {
	return findOne[models.Board](ctx, r.coll, byID(id))
}

func (r *BoardRepo) GetBoardsByUser(ctx context.Context, userID types.ID) ([]*models.Board, error) {
	filter := bson.M{
		"_destroy": false,
		"$or": bson.A{
			bson.M{"ownerIds": userID},
			bson.M{"memberIds": userID},
		},
	}
	return findMany[models.Board](ctx, r.coll, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
}

func (r *BoardRepo) UpdateBoard(ctx context.Context, id types.ID, patch models.BoardUpdate) (*models.Board, error) {
	if err := schema.ValidateBoardUpdate(patch); err != nil {
		return nil, database.Wrap("update", r.coll.Name(), err)
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.ColumnOrderIDs != nil {
		ids, err := types.ParseIDs(*patch.ColumnOrderIDs)
		if err != nil {
			return nil, database.Wrap("update", r.coll.Name(), err)
		}
		set["columnOrderIds"] = ids
	}
	if patch.Destroy != nil {
		set["_destroy"] = *patch.Destroy
	}
	if patch.UpdatedAt != nil {
		set["updatedAt"] = *patch.UpdatedAt
	}
	if len(set) == 0 {
		return r.GetBoardByID(ctx, id)
	}

	return findOneAndUpdate[models.Board](ctx, r.coll, "update", byID(id), bson.M{"$set": set})
}

func (r *BoardRepo) PushColumnOrderID(ctx context.Context, column *models.Column) (*models.Board, error) {
	return findOneAndUpdate[models.Board](ctx, r.coll, "update", byID(column.BoardID),
		bson.M{"$push": bson.M{"columnOrderIds": column.ID}})
}

func (r *BoardRepo) PullColumnOrderID(ctx context.Context, column *models.Column) (*models.Board, error) {
	return findOneAndUpdate[models.Board](ctx, r.coll, "update", byID(column.BoardID),
		bson.M{"$pull": bson.M{"columnOrderIds": column.ID}})
}

func (r *BoardRepo) AddBoardMember(ctx context.Context, boardID, userID types.ID) (*models.Board, error) {
	return findOneAndUpdate[models.Board](ctx, r.coll, "update", byID(boardID),
		bson.M{"$addToSet": bson.M{"memberIds": userID}})
}

func (r *BoardRepo) DeleteBoardByID(ctx context.Context, id types.ID) (int64, error) {
	return deleteOne(ctx, r.coll, byID(id))
}
