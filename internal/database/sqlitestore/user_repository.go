package sqlitestore

import (
	"context"
	"strings"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// UserRepo handles the users table.
type UserRepo struct {
	users *collection[models.User]
}

func (r *UserRepo) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	user, err := schema.ValidateUser(in)
	if err != nil {
		return nil, database.Wrap("insert", r.users.name, err)
	}
	user.ID = types.NewID()
	if err := r.users.insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, id types.ID) (*models.User, error) {
	return r.users.findOne(ctx, "id = ? AND destroyed = ?", id.Hex(), false)
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.users.findOne(ctx, "email = ?", email)
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.users.findOne(ctx, "username = ?", username)
}

func (r *UserRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return r.users.find(ctx, "1 = 1")
}

// FindUsersByEmail matches against email_lower, lowercased in Go, because
// SQLite's LIKE and lower() only fold ASCII letters.
func (r *UserRepo) FindUsersByEmail(ctx context.Context, pattern string) ([]*models.User, error) {
	if pattern == "" {
		return nil, database.Wrap("find", r.users.name, database.ErrInvalidArgument)
	}
	return r.users.find(ctx, `email_lower LIKE ? ESCAPE '\'`, likeContains(strings.ToLower(pattern)))
}

func (r *UserRepo) GetUsersByIDs(ctx context.Context, ids []types.ID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.Hex()
	}
	return r.users.find(ctx, "id IN ("+placeholders(len(ids))+")", args...)
}

func (r *UserRepo) UpdateUser(ctx context.Context, id types.ID, patch models.UserUpdate) (*models.User, error) {
	if err := schema.ValidateUserUpdate(patch); err != nil {
		return nil, database.Wrap("update", r.users.name, err)
	}

	return r.users.update(ctx, id.Hex(), func(u *models.User) error {
		if patch.Username != nil {
			u.Username = *patch.Username
		}
		if patch.FullName != nil {
			u.FullName = *patch.FullName
		}
		if patch.Password != nil {
			u.Password = *patch.Password
		}
		if patch.AvatarColor != nil {
			u.AvatarColor = *patch.AvatarColor
		}
		if patch.Destroy != nil {
			u.Destroy = *patch.Destroy
		}
		if patch.UpdatedAt != nil {
			u.UpdatedAt = patch.UpdatedAt
		}
		return nil
	})
}

func (r *UserRepo) AddStarredBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error) {
	return r.users.update(ctx, userID.Hex(), func(u *models.User) error {
		if !types.ContainsID(u.StarredIDs, boardID) {
			u.StarredIDs = append(u.StarredIDs, boardID)
		}
		return nil
	})
}

func (r *UserRepo) RemoveStarredBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error) {
	return r.users.update(ctx, userID.Hex(), func(u *models.User) error {
		u.StarredIDs = types.RemoveID(u.StarredIDs, boardID)
		return nil
	})
}
