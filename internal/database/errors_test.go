package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap("find", CardCollection, nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap("insert", ColumnCollection, cause)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "insert", perr.Op)
	assert.Equal(t, ColumnCollection, perr.Collection)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "insert columns: connection reset", err.Error())
}

func TestWrapDoesNotNest(t *testing.T) {
	inner := Wrap("update", UserCollection, ErrInvalidArgument)
	outer := Wrap("find", UserCollection, inner)
	assert.Same(t, inner, outer)
	assert.ErrorIs(t, outer, ErrInvalidArgument)
}
