package column

import "errors"

// Column-related errors
var (
	ErrColumnNotFound = errors.New("column not found")
	ErrBoardNotFound  = errors.New("board not found")
)
