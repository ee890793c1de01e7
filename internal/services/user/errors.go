package user

import "errors"

// User-related errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBoardNotFound      = errors.New("board not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
