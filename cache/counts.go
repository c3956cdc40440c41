package cache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/groupcache/lru"

	"github.com/TFMV/codemetrics/types"
)

// DefaultSize is the number of entries kept when no size is given.
const DefaultSize = 4096

// Key identifies a source text under a counting mode.
type Key struct {
	Mode string
	Sum  uint64
	Len  int
}

// KeyFor hashes text for the given counting mode.
func KeyFor(mode, text string) Key {
	return Key{Mode: mode, Sum: xxhash.Sum64String(text), Len: len(text)}
}

// CountsCache caches lexical counts of source texts by content hash.
type CountsCache struct {
	cache *lru.Cache
	mu    sync.Mutex // lru.Cache reorders on Get, so reads need the lock too

	hits   uint64
	misses uint64
}

// NewCountsCache creates a cache holding at most size entries.
func NewCountsCache(size int) *CountsCache {
	if size <= 0 {
		size = DefaultSize
	}
	return &CountsCache{
		cache: lru.New(size),
	}
}

// Get returns the cached counts for key, if available.
func (c *CountsCache) Get(key Key) (types.RawCounts, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if val, ok := c.cache.Get(key); ok {
		c.hits++
		return val.(types.RawCounts), true
	}
	c.misses++
	return types.RawCounts{}, false
}

// Put stores counts for key.
func (c *CountsCache) Put(key Key, counts types.RawCounts) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(key, counts)
}

// Counts returns the counts of text under mode, computing and storing
// them with count on a miss. count runs outside the lock.
func (c *CountsCache) Counts(mode, text string, count func(string) types.RawCounts) types.RawCounts {
	key := KeyFor(mode, text)
	if counts, ok := c.Get(key); ok {
		return counts
	}

	counts := count(text)
	c.Put(key, counts)
	return counts
}

// Stats returns the hit and miss counters.
func (c *CountsCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached entries.
func (c *CountsCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// Clear clears the cache.
func (c *CountsCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Clear()
	c.hits, c.misses = 0, 0
}
