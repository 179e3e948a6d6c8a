package inmem

import (
	"context"
	"testing"

	"github.com/dekarrin/symcalc/internal/history"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_store_CreateAndGetByID(t *testing.T) {
	s := New()
	ctx := context.Background()

	rec, err := s.Create(ctx, history.Record{Kind: history.KindEvaluate, Input: "2+2"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.Created.IsZero())

	got, err := s.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "2+2", got.Input)
}

func Test_store_GetByID_notFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func Test_store_GetAll_returnsEverything(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, history.Record{Input: "a"})
	require.NoError(t, err)
	_, err = s.Create(ctx, history.Record{Input: "b"})
	require.NoError(t, err)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func Test_store_Close(t *testing.T) {
	s := New()
	assert.NoError(t, s.Close())
}
