package apierr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_IsSentinel(t *testing.T) {
	err := New("bad username", ErrBadCredentials)
	assert.ErrorIs(t, err, ErrBadCredentials)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func Test_WrapDB(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapDB("could not open store", cause)
	assert.ErrorIs(t, err, ErrDB)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "could not open store")
}

func Test_Error_messageFallsBackToCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := New("", cause)
	assert.Equal(t, "underlying failure", err.Error())
}

func Test_Error_Is_structuralEquality(t *testing.T) {
	a := New("same msg", ErrNotFound)
	b := New("same msg", ErrNotFound)
	assert.True(t, errors.Is(a, b))

	c := New("different msg", ErrNotFound)
	assert.False(t, errors.Is(a, c))
}
