package card

import "errors"

// Card-related errors
var (
	ErrCardNotFound   = errors.New("card not found")
	ErrColumnNotFound = errors.New("column not found")
	// ErrColumnMismatch is returned when a card would land in a column of a
	// different board.
	ErrColumnMismatch = errors.New("column belongs to a different board")
)
