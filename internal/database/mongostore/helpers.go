package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/types"
)

// returnAfter makes FindOneAndUpdate hand back the post-update document.
var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

func byID(id types.ID) bson.M {
	return bson.M{"_id": id}
}

// findOne decodes a single document, returning (nil, nil) when nothing matches.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Wrap("find", coll.Name(), err)
	}
	return &doc, nil
}

// findMany drains a find cursor. The result is never nil.
func findMany[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, database.Wrap("find", coll.Name(), err)
	}
	docs := []*T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, database.Wrap("find", coll.Name(), err)
	}
	return docs, nil
}

// aggregate runs a pipeline and drains the cursor. The result is never nil.
func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]*T, error) {
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, database.Wrap("aggregate", coll.Name(), err)
	}
	docs := []*T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, database.Wrap("aggregate", coll.Name(), err)
	}
	return docs, nil
}

// findOneAndUpdate applies one atomic update and returns the post-update
// document, or (nil, nil) when no document matches filter.
func findOneAndUpdate[T any](ctx context.Context, coll *mongo.Collection, op string, filter, update any) (*T, error) {
	var doc T
	err := coll.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Wrap(op, coll.Name(), err)
	}
	return &doc, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	_, err := coll.InsertOne(ctx, doc)
	return database.Wrap("insert", coll.Name(), err)
}

func deleteOne(ctx context.Context, coll *mongo.Collection, filter any) (int64, error) {
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, database.Wrap("delete", coll.Name(), err)
	}
	return res.DeletedCount, nil
}

func deleteMany(ctx context.Context, coll *mongo.Collection, filter any) (int64, error) {
	res, err := coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, database.Wrap("delete", coll.Name(), err)
	}
	return res.DeletedCount, nil
}
