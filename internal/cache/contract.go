package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

// RunContract checks that a Store implementation honours the cache contract.
func RunContract(t *testing.T, store Store) {
	ctx := context.Background()
	found := 1
	tr := trace.Trace{
		{Array: []int{1, 3}, Highlights: []int{}, Swaps: []int{}, Line: 1, Kind: trace.KindInit, Description: "Initializing"},
		{Array: []int{1, 3}, Highlights: []int{1}, Swaps: []int{}, Found: &found, Line: 4, Kind: trace.KindFound, Description: "Found"},
	}

	t.Run("Miss", func(t *testing.T) {
		got, ok, err := store.Get(ctx, "contract-missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "contract-key", tr))

		got, ok, err := store.Get(ctx, "contract-key")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, tr, got)
	})

	t.Run("Returned trace is independent", func(t *testing.T) {
		got, _, err := store.Get(ctx, "contract-key")
		require.NoError(t, err)
		got[0].Array[0] = 99

		again, _, err := store.Get(ctx, "contract-key")
		require.NoError(t, err)
		assert.Equal(t, 1, again[0].Array[0])
	})

	t.Run("Overwrite", func(t *testing.T) {
		short := tr[:1].Clone()
		require.NoError(t, store.Put(ctx, "contract-key", short))

		got, ok, err := store.Get(ctx, "contract-key")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Len(t, got, 1)
	})

	t.Run("Reject empty", func(t *testing.T) {
		assert.ErrorIs(t, store.Put(ctx, "contract-empty", trace.Trace{}), trace.ErrEmptyTrace)
	})
}
