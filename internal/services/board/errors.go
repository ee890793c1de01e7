package board

import "errors"

// Board-related errors
var (
	ErrInvalidOwner  = errors.New("invalid board owner")
	ErrBoardNotFound = errors.New("board not found")
	ErrUserNotFound  = errors.New("user not found")
)
