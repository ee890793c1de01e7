package database

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// UserReader defines read operations for users.
//
// GetUserByID is the only read that hides soft-deleted users; every other
// finder returns documents regardless of _destroy.
type UserReader interface {
	GetUserByID(ctx context.Context, id types.ID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	// FindUsersByEmail matches pattern as a case-insensitive substring of the
	// email. An empty pattern fails with ErrInvalidArgument.
	FindUsersByEmail(ctx context.Context, pattern string) ([]*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []types.ID) ([]*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id types.ID, patch models.UserUpdate) (*models.User, error)
	AddStarredBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error)
	RemoveStarredBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error)
}

// UserRepository combines all user-related operations.
type UserRepository interface {
	UserReader
	UserWriter
}
