package ai

import (
	"sync"
	"testing"

	"github.com/rocketscienceinc/piskvorky-backend/internal/gomoku"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionCache(t *testing.T) {
	t.Run("Keeps the deeper entry", func(t *testing.T) {
		cache := NewTranspositionCache(64)

		cache.Store(42, CacheEntry{Value: 10, Depth: 2})
		cache.Store(42, CacheEntry{Value: 99, Depth: 1})

		entry, ok := cache.Probe(42)
		require.True(t, ok)
		assert.Equal(t, 10, entry.Value)

		cache.Store(42, CacheEntry{Value: 7, Depth: 3})
		entry, _ = cache.Probe(42)
		assert.Equal(t, 7, entry.Value)
	})

	t.Run("Drops a full stripe instead of growing", func(t *testing.T) {
		cache := NewTranspositionCache(cacheStripes)

		// same stripe, limit of one entry per stripe
		cache.Store(0, CacheEntry{Value: 1})
		cache.Store(cacheStripes, CacheEntry{Value: 2})

		_, ok := cache.Probe(0)
		assert.False(t, ok)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("Clear empties every stripe", func(t *testing.T) {
		cache := NewTranspositionCache(1024)
		for key := uint64(0); key < 100; key++ {
			cache.Store(key, CacheEntry{Value: int(key)})
		}

		cache.Clear()

		assert.Zero(t, cache.Len())
	})

	t.Run("Concurrent use is safe", func(t *testing.T) {
		cache := NewTranspositionCache(1 << 12)

		var wg sync.WaitGroup
		for worker := 0; worker < 8; worker++ {
			wg.Add(1)
			go func(worker int) {
				defer wg.Done()
				for key := uint64(0); key < 500; key++ {
					cache.Store(key*uint64(worker+1), CacheEntry{Value: worker, Depth: worker})
					cache.Probe(key)
				}
			}(worker)
		}
		wg.Wait()

		assert.Positive(t, cache.Len())
	})
}

func TestCacheEntry_Usable(t *testing.T) {
	exact := CacheEntry{Value: 5, Depth: 2, Bound: BoundExact}
	lower := CacheEntry{Value: 5, Depth: 2, Bound: BoundLower}
	upper := CacheEntry{Value: 5, Depth: 2, Bound: BoundUpper}

	assert.True(t, exact.usable(2, 0, 10))
	assert.False(t, exact.usable(3, 0, 10), "shallower entry")

	assert.True(t, lower.usable(1, 0, 5))
	assert.False(t, lower.usable(1, 0, 6))

	assert.True(t, upper.usable(1, 5, 10))
	assert.False(t, upper.usable(1, 4, 10))
}

func TestFingerprint(t *testing.T) {
	t.Run("Depends on contents, not move order", func(t *testing.T) {
		a := boardWith(t, x(7, 7), o(7, 8), x(6, 6))
		b := boardWith(t, x(6, 6), o(7, 8), x(7, 7))

		assert.Equal(t, Fingerprint(a, gomoku.Second, gomoku.Second), Fingerprint(b, gomoku.Second, gomoku.Second))
	})

	t.Run("Includes the side to move and the perspective", func(t *testing.T) {
		board := midGame(t)

		base := Fingerprint(board, gomoku.Second, gomoku.Second)
		assert.NotEqual(t, base, Fingerprint(board, gomoku.First, gomoku.Second))
		assert.NotEqual(t, base, Fingerprint(board, gomoku.Second, gomoku.First))
	})

	t.Run("Distinguishes the marks on a cell", func(t *testing.T) {
		assert.NotEqual(t,
			Fingerprint(boardWith(t, x(3, 3)), gomoku.First, gomoku.First),
			Fingerprint(boardWith(t, o(3, 3)), gomoku.First, gomoku.First),
		)
	})
}
