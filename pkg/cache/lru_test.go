package cache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mydatashare/mdscore/pkg/cache"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLRU_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.New[string, int](3, 0)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
			val, ok := c.Get(key)
			assert.True(t, ok)
			assert.Equal(t, want, val)
		}
		assert.Equal(t, 3, c.Len())
	})

	t.Run("get non-existent", func(t *testing.T) {
		c := cache.New[string, int](3, 0)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, val)
	})

	t.Run("update existing", func(t *testing.T) {
		c := cache.New[string, int](3, 0)

		c.Put("a", 1)
		c.Put("a", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})
}

func TestLRU_Eviction(t *testing.T) {
	t.Run("evict least recently used", func(t *testing.T) {
		c := cache.New[string, int](2, 0)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		_, ok := c.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get updates recency", func(t *testing.T) {
		c := cache.New[string, int](2, 0)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("b")
		assert.False(t, ok)
	})

	t.Run("capacity of 1", func(t *testing.T) {
		c := cache.New[string, int](1, 0)

		c.Put("a", 1)
		c.Put("b", 2)

		_, ok := c.Get("a")
		assert.False(t, ok)
		val, ok := c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
	})
}

func TestLRU_Expiry(t *testing.T) {
	clk := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := cache.New[string, string](4, time.Minute)
	c.SetClock(clk.Now)

	c.Put("issuer", "doc")
	clk.Advance(59 * time.Second)
	val, ok := c.Get("issuer")
	assert.True(t, ok)
	assert.Equal(t, "doc", val)

	clk.Advance(time.Second)
	_, ok = c.Get("issuer")
	assert.False(t, ok, "expired at exactly the ttl")
	assert.Equal(t, 0, c.Len(), "expired items are dropped on access")

	c.Put("issuer", "doc")
	clk.Advance(30 * time.Second)
	c.Put("issuer", "doc2")
	clk.Advance(45 * time.Second)
	val, ok = c.Get("issuer")
	assert.True(t, ok, "put restarts the ttl")
	assert.Equal(t, "doc2", val)
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := cache.New[string, int](3, 0)
	c.Put("a", 1)
	c.Put("b", 2)

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok)
}

func TestLRU_Panics(t *testing.T) {
	assert.Panics(t, func() { cache.New[string, int](0, 0) })
	assert.Panics(t, func() { cache.New[string, int](-1, time.Second) })
}

func TestLRU_Concurrent(t *testing.T) {
	c := cache.New[string, int](50, time.Hour)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("key-%d", (i*100+j)%75)
				c.Put(key, j)
				c.Get(key)
				if j%10 == 0 {
					c.Remove(key)
				}
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
