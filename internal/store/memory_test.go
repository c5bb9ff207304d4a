package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meermanr/whathifi/internal/review"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	ok, err := s.Exists(ctx, "http://example.com/a")
	require.NoError(t, err)
	assert.False(t, ok)

	rec := &review.Record{URL: "http://example.com/a", Name: "A", Price: 100, Rating: 4}
	require.NoError(t, s.Insert(ctx, rec))

	ok, err = s.Exists(ctx, "http://example.com/a")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	records, err := s.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, *rec, records[0])
}

func TestMemoryInsertDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	rec := &review.Record{URL: "http://example.com/a"}
	require.NoError(t, s.Insert(ctx, rec))

	err := s.Insert(ctx, rec)
	assert.ErrorIs(t, err, review.ErrDuplicate)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryScanAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Insert(ctx, &review.Record{URL: "http://example.com/a", Price: 100}))

	records, err := s.ScanAll(ctx)
	require.NoError(t, err)
	records[0].Price = 999

	again, err := s.ScanAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, again[0].Price)
}
