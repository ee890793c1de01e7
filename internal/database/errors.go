package database

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for arguments a store cannot query with,
// such as an empty search pattern.
var ErrInvalidArgument = errors.New("invalid argument")

// PersistenceError wraps any failure raised while talking to the store. The
// cause is kept for errors.Is/As but is not classified.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Wrap returns nil for a nil err and a *PersistenceError otherwise.
func Wrap(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var perr *PersistenceError
	if errors.As(err, &perr) {
		return err
	}
	return &PersistenceError{Op: op, Collection: collection, Err: err}
}
