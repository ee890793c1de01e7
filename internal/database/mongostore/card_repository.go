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

// CardRepo handles the cards collection.
type CardRepo struct {
	coll *mongo.Collection
}

// CreateCard validates the input, converts its references and inserts it.
func (r *CardRepo) CreateCard(ctx context.Context, in models.CardInput) (*models.Card, error) {
	card, err := schema.ValidateCard(in)
	if err != nil {
		return nil, database.Wrap("insert", r.coll.Name(), err)
	}
	card.ID = types.NewID()
	if err := insertOne(ctx, r.coll, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (r *CardRepo) GetCardByID(ctx context.Context, id types.ID) (*models.Card, error) {
	return findOne[models.Card](ctx, r.coll, byID(id))
}

func (r *CardRepo) GetCardsByBoardID(ctx context.Context, boardID types.ID) ([]*models.Card, error) {
	return findMany[models.Card](ctx, r.coll, bson.M{"boardId": boardID})
}

// UpdateCard sets the fields present in patch and leaves the rest untouched.
func (r *CardRepo) UpdateCard(ctx context.Context, id types.ID, patch models.CardUpdate) (*models.Card, error) {
	if err := schema.ValidateCardUpdate(patch); err != nil {
		return nil, database.Wrap("update", r.coll.Name(), err)
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ColumnID != nil {
		columnID, err := types.ParseID(*patch.ColumnID)
		if err != nil {
			return nil, database.Wrap("update", r.coll.Name(), err)
		}
		set["columnId"] = columnID
	}
	if patch.Cover != nil {
		set["cover"] = *patch.Cover
	}
	if patch.Destroy != nil {
		set["_destroy"] = *patch.Destroy
	}
	if patch.UpdatedAt != nil {
		set["updatedAt"] = *patch.UpdatedAt
	}
	if len(set) == 0 {
		return r.GetCardByID(ctx, id)
	}

	return findOneAndUpdate[models.Card](ctx, r.coll, "update", byID(id), bson.M{"$set": set})
}

func (r *CardRepo) RemoveCardCover(ctx context.Context, id types.ID) (*models.Card, error) {
	return findOneAndUpdate[models.Card](ctx, r.coll, "update", byID(id),
		bson.M{"$unset": bson.M{"cover": ""}})
}

func (r *CardRepo) PushCardAttachment(ctx context.Context, id types.ID, attachment models.Attachment) (*models.Card, error) {
	return findOneAndUpdate[models.Card](ctx, r.coll, "update", byID(id),
		bson.M{"$push": bson.M{"attachment": attachment}})
}

func (r *CardRepo) DeleteCardsByColumnID(ctx context.Context, columnID types.ID) (int64, error) {
	return deleteMany(ctx, r.coll, bson.M{"columnId": columnID})
}

func (r *CardRepo) DeleteCardByID(ctx context.Context, id types.ID) (int64, error) {
	return deleteOne(ctx, r.coll, byID(id))
}
