// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestLRU[V any](capacity int, ttl time.Duration) (*LRU[V], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[V](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_BasicOperations(t *testing.T) {
	cache, _ := newTestLRU[[]string](3, time.Minute)

	cache.Add("a", []string{"Dune"})
	cache.Add("b", []string{"Emma"})
	cache.Add("c", nil)

	for _, key := range []string{"a", "b", "c"} {
		if _, found := cache.Get(key); !found {
			t.Errorf("Expected to find key %q", key)
		}
	}

	if got, _ := cache.Get("a"); len(got) != 1 || got[0] != "Dune" {
		t.Errorf("Get(a) = %v, want [Dune]", got)
	}

	if cache.Len() != 3 {
		t.Errorf("Expected len 3, got %d", cache.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	cache, _ := newTestLRU[int](3, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	// Access 'a' to make it most recently used
	cache.Get("a")

	// 'b' is now the least recently used
	cache.Add("d", 4)

	if _, found := cache.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := cache.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	cache, clock := newTestLRU[int](10, time.Minute)

	cache.Add("a", 1)

	if _, found := cache.Get("a"); !found {
		t.Error("Expected to find key 'a' immediately")
	}

	clock.Advance(time.Minute + time.Second)

	if _, found := cache.Get("a"); found {
		t.Error("Expected key 'a' to be expired")
	}
	if cache.Len() != 0 {
		t.Errorf("Expected expired entry to be dropped, len %d", cache.Len())
	}
}

func TestLRU_Remove(t *testing.T) {
	cache, _ := newTestLRU[int](10, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)

	if !cache.Remove("a") {
		t.Error("Expected Remove to return true for existing key")
	}
	if cache.Remove("a") {
		t.Error("Expected Remove to return false for non-existing key")
	}
	if _, found := cache.Get("b"); !found {
		t.Error("Expected key 'b' to still be present")
	}
}

func TestLRU_Clear(t *testing.T) {
	cache, _ := newTestLRU[int](10, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got len %d", cache.Len())
	}
	if _, found := cache.Get("a"); found {
		t.Error("Expected no items after Clear")
	}

	cache.Add("c", 3)
	if _, found := cache.Get("c"); !found {
		t.Error("Expected cache to work after Clear")
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	cache, clock := newTestLRU[int](10, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	clock.Advance(2 * time.Minute)
	cache.Add("d", 4)

	if removed := cache.CleanupExpired(); removed != 3 {
		t.Errorf("Expected 3 expired items removed, got %d", removed)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected 1 item remaining, got %d", cache.Len())
	}
}

func TestLRU_Stats(t *testing.T) {
	cache, _ := newTestLRU[int](10, time.Minute)

	cache.Add("a", 1)
	cache.Get("a")        // hit
	cache.Get("a")        // hit
	cache.Get("nonexist") // miss

	hits, misses, size := cache.Stats()
	if hits != 2 {
		t.Errorf("Expected 2 hits, got %d", hits)
	}
	if misses != 1 {
		t.Errorf("Expected 1 miss, got %d", misses)
	}
	if size != 1 {
		t.Errorf("Expected size 1, got %d", size)
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	cache, _ := newTestLRU[string](3, time.Minute)

	cache.Add("a", "first")
	cache.Add("a", "second")

	if cache.Len() != 1 {
		t.Errorf("Expected len 1 after update, got %d", cache.Len())
	}
	if val, found := cache.Get("a"); !found || val != "second" {
		t.Errorf("Get(a) = %q, %v; want second, true", val, found)
	}
}

func TestLRU_Defaults(t *testing.T) {
	cache := NewLRU[int](0, 0)
	if cache.capacity != 10000 {
		t.Errorf("capacity = %d, want 10000", cache.capacity)
	}
	if cache.ttl != 5*time.Minute {
		t.Errorf("ttl = %v, want 5m", cache.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	cache := NewLRU[int](1000, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (id+j)%26)
				cache.Add(key, j)
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()

	cache.Add("test", 1)
	if _, found := cache.Get("test"); !found {
		t.Error("Cache should still work after concurrent access")
	}
}

func BenchmarkLRU_Get(b *testing.B) {
	cache := NewLRU[int](10000, time.Minute)
	for i := 0; i < 1000; i++ {
		cache.Add(fmt.Sprintf("k%d", i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(fmt.Sprintf("k%d", i%1000))
	}
}
