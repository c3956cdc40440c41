package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TFMV/codemetrics/cache"
	"github.com/TFMV/codemetrics/types"
)

func TestCountsCache_ComputesOnce(t *testing.T) {
	c := cache.NewCountsCache(10)
	calls := 0
	count := func(string) types.RawCounts {
		calls++
		return types.RawCounts{If: 2, Methods: 1}
	}

	first := c.Counts("substring", "if (a) if (b)", count)
	second := c.Counts("substring", "if (a) if (b)", count)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCountsCache_ModeIsPartOfKey(t *testing.T) {
	c := cache.NewCountsCache(10)
	c.Put(cache.KeyFor("substring", "x"), types.RawCounts{If: 1})

	_, ok := c.Get(cache.KeyFor("strict", "x"))
	assert.False(t, ok)

	got, ok := c.Get(cache.KeyFor("substring", "x"))
	assert.True(t, ok)
	assert.Equal(t, 1, got.If)
}

func TestCountsCache_Evicts(t *testing.T) {
	c := cache.NewCountsCache(2)
	c.Put(cache.KeyFor("m", "a"), types.RawCounts{If: 1})
	c.Put(cache.KeyFor("m", "b"), types.RawCounts{If: 2})
	c.Put(cache.KeyFor("m", "c"), types.RawCounts{If: 3})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(cache.KeyFor("m", "a"))
	assert.False(t, ok)
}

func TestCountsCache_Clear(t *testing.T) {
	c := cache.NewCountsCache(0)
	c.Put(cache.KeyFor("m", "a"), types.RawCounts{})
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCountsCache_Concurrent(t *testing.T) {
	c := cache.NewCountsCache(8)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := c.Counts("m", "while", func(string) types.RawCounts {
				return types.RawCounts{While: 1}
			})
			assert.Equal(t, 1, got.While)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
