package types

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is the document identifier shared by every collection: a 12-byte
// ObjectID, written as 24 hexadecimal characters on the wire.
type ID = primitive.ObjectID

// ErrInvalidID is returned when a string is not a 24 character hex identifier.
var ErrInvalidID = errors.New("invalid identifier")

// NilID is the zero identifier. Documents never carry it once stored.
var NilID = primitive.NilObjectID

// NewID allocates a fresh identifier.
func NewID() ID {
	return primitive.NewObjectID()
}

// ParseID converts a hex string into an ID. Surrounding whitespace is an
// error, as it is for ids inside request bodies.
func ParseID(s string) (ID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return NilID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// ParseIDs converts every element, failing on the first malformed one.
// The result is never nil so it encodes as an empty array.
func ParseIDs(ss []string) ([]ID, error) {
	ids := make([]ID, 0, len(ss))
	for _, s := range ss {
		id, err := ParseID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ContainsID reports whether id is present in ids.
func ContainsID(ids []ID, id ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// RemoveID returns ids without any occurrence of id, keeping order.
func RemoveID(ids []ID, id ID) []ID {
	out := make([]ID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
