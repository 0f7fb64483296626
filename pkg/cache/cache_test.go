package cache_test

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/sandrolain/gometapath/pkg/cache"
)

func TestCacheNew(t *testing.T) {
	c := cache.New[int](10)
	if got := c.Len(); got != 0 {
		t.Fatalf("expected empty cache, got %d", got)
	}
	if got := c.Capacity(); got != 10 {
		t.Fatalf("expected capacity 10, got %d", got)
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := cache.New[int](0)
	if got := c.Capacity(); got != cache.DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", cache.DefaultCapacity, got)
	}
}

func TestCacheSetGet(t *testing.T) {
	c := cache.New[[]string](4)
	value := []string{"a", "b"}
	c.Set("k", value)
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || &got[0] != &value[0] {
		t.Fatal("expected the stored slice")
	}
}

func TestCacheMiss(t *testing.T) {
	c := cache.New[int](4)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected cache miss")
	}
}

func TestCacheReplace(t *testing.T) {
	c := cache.New[int](4)
	c.Set("k", 1)
	c.Set("k", 2)
	if got, _ := c.Get("k"); got != 2 {
		t.Fatalf("expected replaced value 2, got %d", got)
	}
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := cache.New[int](3)
	for i, k := range []string{"a", "b", "c", "d"} {
		c.Set(k, i)
	}
	if got := c.Len(); got != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", got)
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal(`expected "a" to be evicted (LRU)`)
	}
	if _, ok := c.Get("d"); !ok {
		t.Fatal(`expected most-recently-inserted "d" to survive`)
	}
}

func TestCacheGetPromotes(t *testing.T) {
	c := cache.New[int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Get("a")
	c.Set("d", 4)
	if _, ok := c.Get("a"); !ok {
		t.Fatal(`expected recently read "a" to survive`)
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal(`expected "b" to be evicted`)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := cache.New[int](4)
	c.Set("k", 1)
	c.Invalidate("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after Invalidate")
	}
	c.Invalidate("never-set")
}

func TestCacheClear(t *testing.T) {
	c := cache.New[int](4)
	for i, k := range []string{"a", "b", "c"} {
		c.Set(k, i)
	}
	c.Clear()
	if got := c.Len(); got != 0 {
		t.Fatalf("expected 0 after Clear, got %d", got)
	}
}

func TestCacheGetOrLoad(t *testing.T) {
	c := cache.New[string](4)
	callCount := 0
	load := func() (string, error) {
		callCount++
		return "value", nil
	}

	v1, err := c.GetOrLoad("k", load)
	if err != nil || v1 != "value" {
		t.Fatalf("first GetOrLoad: %q, %v", v1, err)
	}
	v2, err := c.GetOrLoad("k", load)
	if err != nil || v2 != "value" {
		t.Fatalf("second GetOrLoad: %q, %v", v2, err)
	}
	if callCount != 1 {
		t.Fatalf("expected 1 load call (cached), got %d", callCount)
	}
}

func TestCacheGetOrLoadErrorNotCached(t *testing.T) {
	c := cache.New[string](4)
	boom := errors.New("boom")
	if _, err := c.GetOrLoad("k", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatal("expected errors not to be cached")
	}
	v, err := c.GetOrLoad("k", func() (string, error) { return "ok", nil })
	if err != nil || v != "ok" {
		t.Fatalf("expected retry to load, got %q, %v", v, err)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := cache.New[int](16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := strconv.Itoa((g + i) % 32)
				c.Set(k, i)
				c.Get(k)
			}
		}(g)
	}
	wg.Wait()
	if got := c.Len(); got > 16 {
		t.Fatalf("expected at most 16 entries, got %d", got)
	}
}
