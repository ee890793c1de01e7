package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// Service defines all user-related business operations
type Service interface {
	// Read operations
	GetUser(ctx context.Context, id types.ID) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	SearchByEmail(ctx context.Context, pattern string) ([]*models.User, error)
	GetMembers(ctx context.Context, ids []string) ([]*models.User, error)
	Authenticate(ctx context.Context, creds models.Credentials) (*models.User, error)

	// Write operations
	Register(ctx context.Context, in models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id types.ID, patch models.UserUpdate) (*models.User, error)
	StarBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error)
	UnstarBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error)
}

type service struct {
	store  database.DataStore
	logger *slog.Logger
	cost   int
}

// NewService creates a new user service
func NewService(store database.DataStore, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, logger: logger.With("service", "user"), cost: bcrypt.DefaultCost}
}

// GetUser hides soft-deleted users.
func (s *service) GetUser(ctx context.Context, id types.ID) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.store.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SearchByEmail matches pattern anywhere in the email, ignoring case.
func (s *service) SearchByEmail(ctx context.Context, pattern string) ([]*models.User, error) {
	users, err := s.store.FindUsersByEmail(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// GetMembers resolves a list of user ids, skipping unknown ones.
func (s *service) GetMembers(ctx context.Context, ids []string) ([]*models.User, error) {
	parsed, err := types.ParseIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", database.ErrInvalidArgument, err)
	}
	users, err := s.store.GetUsersByIDs(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	return users, nil
}

// Authenticate checks an email and password pair. Unknown, deleted and
// mismatching accounts all yield ErrInvalidCredentials.
func (s *service) Authenticate(ctx context.Context, creds models.Credentials) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.Destroy {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}
	return user, nil
}

// Register validates the account, enforces unique email and username and
// stores a bcrypt hash in place of the password.
func (s *service) Register(ctx context.Context, in models.UserInput) (*models.User, error) {
	if _, err := schema.ValidateUser(in); err != nil {
		return nil, err
	}

	existing, err := s.store.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	if err := s.checkUsername(ctx, in.Username, types.NilID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	in.Password = string(hash)

	user, err := s.store.CreateUser(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.Info("user registered", "user_id", user.ID.Hex(), "username", user.Username)
	return user, nil
}

// UpdateUser applies a patch, re-hashing the password when one is given.
func (s *service) UpdateUser(ctx context.Context, id types.ID, patch models.UserUpdate) (*models.User, error) {
	if err := schema.ValidateUserUpdate(patch); err != nil {
		return nil, err
	}
	if patch.Username != nil {
		if err := s.checkUsername(ctx, *patch.Username, id); err != nil {
			return nil, err
		}
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	now := schema.Now()
	patch.UpdatedAt = &now

	user, err := s.store.UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// StarBoard adds an existing board to the user's starred set.
func (s *service) StarBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error) {
	board, err := s.store.GetBoardByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	if board == nil || board.Destroy {
		return nil, ErrBoardNotFound
	}

	user, err := s.store.AddStarredBoard(ctx, userID, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to star board: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UnstarBoard does not require the board to still exist.
func (s *service) UnstarBoard(ctx context.Context, userID, boardID types.ID) (*models.User, error) {
	user, err := s.store.RemoveStarredBoard(ctx, userID, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to unstar board: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// checkUsername fails when another user than self already uses username.
func (s *service) checkUsername(ctx context.Context, username string, self types.ID) error {
	existing, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil && existing.ID != self {
		return ErrUsernameTaken
	}
	return nil
}
