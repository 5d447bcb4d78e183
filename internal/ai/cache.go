package ai

import "sync"

type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

const (
	DefaultCacheSize = 1 << 16
	cacheStripes     = 16
)

// CacheEntry is a memoized search value. Depth is the remaining search depth
// the value was computed with.
type CacheEntry struct {
	Value int
	Depth int
	Bound Bound
}

// usable reports whether the entry answers a node searched to depth with the
// window (alpha, beta).
func (e CacheEntry) usable(depth, alpha, beta int) bool {
	if e.Depth < depth {
		return false
	}

	switch e.Bound {
	case BoundLower:
		return e.Value >= beta
	case BoundUpper:
		return e.Value <= alpha
	default:
		return true
	}
}

// TranspositionCache maps position fingerprints to search values. Keys are
// spread over independently locked stripes, so one cache may serve
// concurrent searches.
type TranspositionCache struct {
	stripes     [cacheStripes]cacheStripe
	stripeLimit int
}

type cacheStripe struct {
	mu      sync.RWMutex
	entries map[uint64]CacheEntry
}

func NewTranspositionCache(size int) *TranspositionCache {
	if size < cacheStripes {
		size = cacheStripes
	}

	cache := &TranspositionCache{stripeLimit: size / cacheStripes}
	for i := range cache.stripes {
		cache.stripes[i].entries = make(map[uint64]CacheEntry)
	}

	return cache
}

func (that *TranspositionCache) stripe(key uint64) *cacheStripe {
	return &that.stripes[key%cacheStripes]
}

func (that *TranspositionCache) Probe(key uint64) (CacheEntry, bool) {
	s := that.stripe(key)

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]

	return entry, ok
}

// Store keeps the deeper of the old and new entries. A full stripe is
// dropped wholesale before the write.
func (that *TranspositionCache) Store(key uint64, entry CacheEntry) {
	s := that.stripe(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.entries[key]
	if ok && old.Depth > entry.Depth {
		return
	}

	if !ok && len(s.entries) >= that.stripeLimit {
		s.entries = make(map[uint64]CacheEntry)
	}

	s.entries[key] = entry
}

func (that *TranspositionCache) Len() int {
	total := 0
	for i := range that.stripes {
		s := &that.stripes[i]
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}

	return total
}

func (that *TranspositionCache) Clear() {
	for i := range that.stripes {
		s := &that.stripes[i]
		s.mu.Lock()
		s.entries = make(map[uint64]CacheEntry)
		s.mu.Unlock()
	}
}
