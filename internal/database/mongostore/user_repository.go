package mongostore

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// UserRepo handles the users collection.
type UserRepo struct {
	coll *mongo.Collection
}

func (r *UserRepo) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	user, err := schema.ValidateUser(in)
	if err != nil {
		return nil, database.Wrap("insert", r.coll.Name(), err)
	}
	user.ID = types.NewID()
	if err := insertOne(ctx, r.coll, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, id types.ID) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"_id": id, "_destroy": false})
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"email": email})
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"username": username})
}

func (r *UserRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return findMany[models.User](ctx, r.coll, bson.M{})
}

func (r *UserRepo) FindUsersByEmail(ctx context.Context, pattern string) ([]*models.User, error) {
	if pattern == "" {
		return nil, database.Wrap("find", r.coll.Name(), database.ErrInvalidArgument)
	}
	filter := bson.M{"email": primitive.Regex{Pattern: regexp.QuoteMeta(pattern), Options: "i"}}
	return findMany[models.User](ctx, r.coll, filter)
}

func (r *UserRepo) GetUsersByIDs(ctx context.Context, ids []types.ID) ([]*models.User, error) {
	if ids == nil {
		ids = []types.ID{}
	}
	return aggregate[models.User](ctx, r.coll, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}}},
	})
}

func (r *UserRepo) UpdateUser(ctx context.Context, id types.ID, patch models.UserUpdate) (*models.User, error) {
	if err := schema.ValidateUserUpdate(patch); err != nil {
		return nil, database.Wrap("update", r.coll.Name(), err)
	}

	set := bson.M{}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.FullName != nil {
		set["fullName"] = *patch.FullName
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if patch.AvatarColor != nil {
		set["avatarColor"] = *patch.AvatarColor
	}
	if patch.Destroy != nil {
		set["_destroy"] = *patch.Destroy
	}
	if patch.UpdatedAt != nil {
		set["updatedAt"] = *patch.UpdatedAt
	}
	if len(set) == 0 {
		return findOne[models.User](ctx, r.coll, byID(id))
	}

	return findOneAndUpdate[models.User](ctx, r.coll, "update", byID(id), bson.M{"$set": set})
}

// AddStarredBoard treats starredIds as a set.
func (r *UserRepo) AddStarredBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error) {
	return findOneAndUpdate[models.User](ctx, r.coll, "update", byID(userID),
		bson.M{"$addToSet": bson.M{"starredIds": boardID}})
}

func (r *UserRepo) RemoveStarredBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error) {
	return findOneAndUpdate[models.User](ctx, r.coll, "update", byID(userID),
		bson.M{"$pull": bson.M{"starredIds": boardID}})
}
