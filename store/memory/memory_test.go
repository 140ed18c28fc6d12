package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smallnest/semrouter/router"
)

func entry(id, destination string, vector ...float32) router.Entry {
	return router.Entry{ID: id, Destination: destination, Description: id, Vector: vector}
}

func TestIndexAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("first entry establishes dimension", func(t *testing.T) {
		idx := NewIndex()

		assert.Equal(t, 0, idx.Dimension())
		assert.NoError(t, idx.Add(ctx, entry("a", "billing", 1, 0, 0)))
		assert.Equal(t, 3, idx.Dimension())

		count, err := idx.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects mismatched dimension", func(t *testing.T) {
		idx := NewIndex()
		assert.NoError(t, idx.Add(ctx, entry("a", "billing", 1, 0, 0)))

		err := idx.Add(ctx, entry("b", "billing", 1, 0))
		assert.ErrorIs(t, err, router.ErrDimensionMismatch)

		count, _ := idx.Count(ctx)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects empty vector", func(t *testing.T) {
		idx := NewIndex()
		err := idx.Add(ctx, entry("a", "billing"))
		assert.ErrorIs(t, err, router.ErrDimensionMismatch)
	})
}

func TestIndexSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by descending similarity", func(t *testing.T) {
		idx := NewIndex()
		assert.NoError(t, idx.Add(ctx, entry("a", "east", 1, 0)))
		assert.NoError(t, idx.Add(ctx, entry("b", "north", 0, 1)))
		assert.NoError(t, idx.Add(ctx, entry("c", "northeast", 1, 1)))

		matches, err := idx.Search(ctx, []float32{1, 0.2}, 3)
		assert.NoError(t, err)
		assert.Len(t, matches, 3)
		assert.Equal(t, "east", matches[0].Destination)
		assert.Equal(t, "northeast", matches[1].Destination)
		assert.Equal(t, "north", matches[2].Destination)
		assert.True(t, matches[0].Score >= matches[1].Score)
		assert.True(t, matches[1].Score >= matches[2].Score)
	})

	t.Run("truncates to topK", func(t *testing.T) {
		idx := NewIndex()
		assert.NoError(t, idx.Add(ctx, entry("a", "east", 1, 0)))
		assert.NoError(t, idx.Add(ctx, entry("b", "north", 0, 1)))

		matches, err := idx.Search(ctx, []float32{1, 0}, 1)
		assert.NoError(t, err)
		assert.Len(t, matches, 1)
		assert.Equal(t, "east", matches[0].Destination)
	})

	t.Run("topK larger than index returns everything", func(t *testing.T) {
		idx := NewIndex()
		assert.NoError(t, idx.Add(ctx, entry("a", "east", 1, 0)))

		matches, err := idx.Search(ctx, []float32{1, 0}, 100)
		assert.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("rejects topK below one", func(t *testing.T) {
		idx := NewIndex()
		assert.NoError(t, idx.Add(ctx, entry("a", "east", 1, 0)))

		_, err := idx.Search(ctx, []float32{1, 0}, 0)
		assert.ErrorIs(t, err, router.ErrInvalidTopK)
	})

	t.Run("empty index returns no matches", func(t *testing.T) {
		idx := NewIndex()

		matches, err := idx.Search(ctx, []float32{1, 0}, 5)
		assert.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("rejects query with wrong dimension", func(t *testing.T) {
		idx := NewIndex()
		assert.NoError(t, idx.Add(ctx, entry("a", "east", 1, 0, 0)))

		_, err := idx.Search(ctx, []float32{1, 0}, 1)
		assert.ErrorIs(t, err, router.ErrDimensionMismatch)
	})

	t.Run("equal scores keep insertion order", func(t *testing.T) {
		idx := NewIndex()
		assert.NoError(t, idx.Add(ctx, entry("a", "first", 0, 1)))
		assert.NoError(t, idx.Add(ctx, entry("b", "second", 0, 1)))

		matches, err := idx.Search(ctx, []float32{0, 1}, 2)
		assert.NoError(t, err)
		assert.Equal(t, "first", matches[0].Destination)
		assert.Equal(t, "second", matches[1].Destination)
	})
}

func TestIndexRemove(t *testing.T) {
	ctx := context.Background()

	idx := NewIndex()
	assert.NoError(t, idx.Add(ctx, entry("a", "billing", 1, 0)))
	assert.NoError(t, idx.Add(ctx, entry("b", "billing", 0.9, 0.1)))
	assert.NoError(t, idx.Add(ctx, entry("c", "technical", 0, 1)))

	assert.NoError(t, idx.Remove(ctx, "billing"))

	count, err := idx.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	matches, err := idx.Search(ctx, []float32{1, 0}, 5)
	assert.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, "technical", matches[0].Destination)

	// Removing an unknown destination is a no-op.
	assert.NoError(t, idx.Remove(ctx, "missing"))
}

func TestIndexClose(t *testing.T) {
	ctx := context.Background()

	idx := NewIndex()
	assert.NoError(t, idx.Add(ctx, entry("a", "billing", 1, 0)))
	assert.NoError(t, idx.Close())

	count, err := idx.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, idx.Dimension())

	// A closed index behaves like a fresh one.
	assert.NoError(t, idx.Add(ctx, entry("b", "technical", 0, 1, 0)))
	assert.Equal(t, 3, idx.Dimension())
}
