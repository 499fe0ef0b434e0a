package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrLoadCachesWithinTTL(t *testing.T) {
	c := New(Options{TTL: time.Minute, MaxEntries: 10})

	var calls int32
	load := func(ctx context.Context) string {
		atomic.AddInt32(&calls, 1)
		return "Ana"
	}

	if got := c.GetOrLoad(context.Background(), "author:1", load); got != "Ana" {
		t.Errorf("Expected 'Ana', got '%s'", got)
	}
	if got := c.GetOrLoad(context.Background(), "author:1", load); got != "Ana" {
		t.Errorf("Expected cached 'Ana', got '%s'", got)
	}

	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected loader to run once, ran %d times", calls)
	}
}

func TestGetOrLoadExpires(t *testing.T) {
	c := New(Options{TTL: 10 * time.Millisecond, MaxEntries: 10})

	var calls int32
	load := func(ctx context.Context) string {
		atomic.AddInt32(&calls, 1)
		return "value"
	}

	c.GetOrLoad(context.Background(), "k", load)
	time.Sleep(20 * time.Millisecond)
	c.GetOrLoad(context.Background(), "k", load)

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Expected loader to run twice after expiry, ran %d times", calls)
	}
}

func TestGetOrLoadDoesNotCacheEmpty(t *testing.T) {
	c := New(Options{TTL: time.Minute, MaxEntries: 10})

	var calls int32
	load := func(ctx context.Context) string {
		atomic.AddInt32(&calls, 1)
		return ""
	}

	c.GetOrLoad(context.Background(), "missing", load)
	c.GetOrLoad(context.Background(), "missing", load)

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Empty results should not be cached, loader ran %d times", calls)
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d entries", c.Len())
	}
}

func TestMaxEntriesEviction(t *testing.T) {
	c := New(Options{TTL: time.Minute, MaxEntries: 2})

	ctx := context.Background()
	c.GetOrLoad(ctx, "a", func(ctx context.Context) string { return "1" })
	c.GetOrLoad(ctx, "b", func(ctx context.Context) string { return "2" })
	c.GetOrLoad(ctx, "c", func(ctx context.Context) string { return "3" })

	if c.Len() != 2 {
		t.Errorf("Expected 2 entries after eviction, got %d", c.Len())
	}

	// "a" was the oldest entry and should have been evicted
	var reloaded bool
	c.GetOrLoad(ctx, "a", func(ctx context.Context) string {
		reloaded = true
		return "1"
	})
	if !reloaded {
		t.Error("Expected oldest entry to be evicted and reloaded")
	}
}

func TestConcurrentLoadsCollapse(t *testing.T) {
	c := New(Options{TTL: time.Minute, MaxEntries: 10})

	var calls int32
	load := func(ctx context.Context) string {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return "shared"
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.GetOrLoad(context.Background(), "hot", load); got != "shared" {
				t.Errorf("Expected 'shared', got '%s'", got)
			}
		}()
	}
	wg.Wait()

	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected singleflight to collapse loads to 1, got %d", calls)
	}
}

func TestNilCachePassesThrough(t *testing.T) {
	var c *Cache

	if got := c.GetOrLoad(context.Background(), "k", func(ctx context.Context) string { return "direct" }); got != "direct" {
		t.Errorf("Nil cache should invoke loader directly, got '%s'", got)
	}
	if c.Len() != 0 {
		t.Error("Nil cache should report zero entries")
	}
}
