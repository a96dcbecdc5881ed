// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lrucache

import (
	"slices"
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("ValidSize", func(t *testing.T) {
		t.Parallel()

		cache, err := New[string, int](3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cache.Len() != 0 {
			t.Errorf("expected cache length to be 0, got %d", cache.Len())
		}
	})

	t.Run("InvalidSize", func(t *testing.T) {
		t.Parallel()

		cache, err := New[string, int](0)
		if err == nil {
			t.Fatal("expected error when creating cache of size 0, got nil")
		}

		if cache != nil {
			t.Error("expected no cache to be returned on error")
		}
	})
}

// TestCache_AddAndGet verifies retrieval and eviction once the capacity is reached.
func TestCache_AddAndGet(t *testing.T) {
	t.Parallel()

	cache, err := New[string, string](2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.Add("foo", "bar") {
		t.Error("eviction should not occur when the cache is not full")
	}

	if value, ok := cache.Get("foo"); !ok || value != "bar" {
		t.Errorf("expected 'bar', got %q (found=%v)", value, ok)
	}

	cache.Add("hello", "world")

	// "foo" is now the least recently used entry.
	if !cache.Add("key3", "value3") {
		t.Error("expected eviction when adding third key to size 2 cache")
	}

	if _, ok := cache.Get("foo"); ok {
		t.Error("expected 'foo' to be evicted, but it still exists")
	}

	if cache.Len() != 2 {
		t.Errorf("expected cache length 2, got %d", cache.Len())
	}
}

func TestCache_GetRefreshesOrder(t *testing.T) {
	t.Parallel()

	cache, _ := New[int, int](2)
	cache.Add(1, 1)
	cache.Add(2, 2)
	cache.Get(1)
	cache.Add(3, 3)

	if got := cache.Keys(); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("Keys() = %v, want [1 3]", got)
	}

	// Peek does not refresh.
	cache.Peek(1)
	cache.Add(4, 4)

	if got := cache.Keys(); !slices.Equal(got, []int{3, 4}) {
		t.Errorf("Keys() = %v, want [3 4]", got)
	}
}

func TestCache_UpdateAndRemove(t *testing.T) {
	t.Parallel()

	cache, _ := New[string, int](2)
	cache.Add("a", 1)

	if cache.Add("a", 2) {
		t.Error("updating an existing key must not evict")
	}

	if v, _ := cache.Peek("a"); v != 2 {
		t.Errorf("expected updated value 2, got %d", v)
	}

	if !cache.Remove("a") {
		t.Error("expected Remove to report the key as present")
	}

	if cache.Remove("a") {
		t.Error("expected second Remove to report the key as absent")
	}

	cache.Add("b", 1)
	cache.Purge()

	if cache.Len() != 0 {
		t.Errorf("expected empty cache after Purge, got %d", cache.Len())
	}
}

func TestCache_GetOrAdd(t *testing.T) {
	t.Parallel()

	cache, _ := New[string, int](4)
	calls := 0

	create := func() int {
		calls++

		return 42
	}

	for range 3 {
		if v := cache.GetOrAdd("answer", create); v != 42 {
			t.Fatalf("GetOrAdd() = %d, want 42", v)
		}
	}

	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

// TestCache_Concurrent exercises the cache from many goroutines; run with -race.
func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	cache, _ := New[string, int](16)

	var wg sync.WaitGroup

	for g := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 200 {
				key := strconv.Itoa((g * i) % 32)
				cache.GetOrAdd(key, func() int { return i })
				cache.Get(key)
			}
		}()
	}

	wg.Wait()

	if cache.Len() > 16 {
		t.Errorf("cache grew past its capacity: %d", cache.Len())
	}
}
