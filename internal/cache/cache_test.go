package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_CachesWithinTTL(t *testing.T) {
	fetches := 0
	c := newCell(time.Minute, func(context.Context) (int, error) {
		fetches++
		return fetches, nil
	})
	ctx := context.Background()

	first, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second, "read within the window must not refetch")
	assert.Equal(t, 1, fetches)
}

func TestCell_InvalidateForcesSynchronousRefetch(t *testing.T) {
	fetches := 0
	c := newCell(time.Minute, func(context.Context) (int, error) {
		fetches++
		return fetches, nil
	})
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)

	c.Invalidate()
	value, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, value)
	assert.Equal(t, 2, fetches)
}

func TestCell_PatchSkipsEmptyCache(t *testing.T) {
	c := newCell(time.Minute, func(context.Context) (int, error) { return 7, nil })

	c.Patch(func(int) int { return 42 })

	value, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, value, "patching an unfetched cell must stay a no-op")
}

func TestCell_PatchUpdatesWithoutRefetch(t *testing.T) {
	fetches := 0
	c := newCell(time.Minute, func(context.Context) (int, error) {
		fetches++
		return 7, nil
	})
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)

	c.Patch(func(int) int { return 42 })

	value, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 1, fetches, "optimistic patch replaces the fetch")
}

// A fetch that completes after the cell moved on (invalidate or patch) must
// be discarded, not installed over the newer state.
func TestCell_LateFetchResultIsDiscarded(t *testing.T) {
	c := newCell(time.Minute, func(context.Context) (int, error) { return 1, nil })
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)

	staleVersion := c.version
	c.Patch(func(int) int { return 99 })

	c.install(1, staleVersion)

	value, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99, value)
}
