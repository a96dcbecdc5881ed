// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache.
The cache evicts the least recently used entry when it reaches capacity.

The runtime uses it to keep compiled placeholder templates of the strings rendered most
often, so hot UI strings are scanned once.
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// Cache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [New]; the zero value is not ready for use.
type Cache[K comparable, V any] struct {
	size      int                 // Maximum capacity of the cache (number of entries)
	evictList *list.List          // Eviction order, most recently used at the front
	items     map[K]*list.Element // Maps keys to their linked-list elements
	lock      sync.Mutex
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates a cache holding at most size entries.
//
// It returns an error if size is not a positive integer.
func New[K comparable, V any](size int) (*Cache[K, V], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	return &Cache[K, V]{
		size:      size,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
	}, nil
}

// Add adds or updates the value for key.
//
// If the key exists, it becomes the most recently used.
// If the cache is at capacity, the least recently used item is evicted.
// Add reports whether an eviction occurred.
func (c *Cache[K, V]) Add(key K, value V) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.add(key, value)
}

func (c *Cache[K, V]) add(key K, value V) bool {
	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry[K, V]).value = value

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value})

	evicted := c.evictList.Len() > c.size
	if evicted {
		c.removeElement(c.evictList.Back())
	}

	return evicted
}

// Get retrieves the value for key and marks it as most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	ent, ok := c.items[key]
	if !ok {
		var zero V

		return zero, false
	}

	c.evictList.MoveToFront(ent)

	return ent.Value.(*entry[K, V]).value, true
}

// GetOrAdd returns the cached value for key, computing and storing it with
// create on a miss. create runs under the cache lock and must not call back
// into the cache.
func (c *Cache[K, V]) GetOrAdd(key K, create func() V) V {
	c.lock.Lock()
	defer c.lock.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)

		return ent.Value.(*entry[K, V]).value
	}

	v := create()
	c.add(key, v)

	return v
}

// Peek retrieves the value for key without modifying the LRU order.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	ent, ok := c.items[key]
	if !ok {
		var zero V

		return zero, false
	}

	return ent.Value.(*entry[K, V]).value, true
}

// Remove deletes the entry associated with key from the cache.
//
// Remove reports whether the key was present and removed.
func (c *Cache[K, V]) Remove(key K) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)

		return true
	}

	return false
}

// Purge empties the cache.
func (c *Cache[K, V]) Purge() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.evictList.Init()
	clear(c.items)
}

// Keys returns all keys in the cache, from the oldest to the newest.
func (c *Cache[K, V]) Keys() []K {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]K, 0, len(c.items))

	// The back of the list is the oldest entry.
	for ent := c.evictList.Back(); ent != nil; ent = ent.Prev() {
		keys = append(keys, ent.Value.(*entry[K, V]).key)
	}

	return keys
}

// Len returns the current number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.evictList.Len()
}

func (c *Cache[K, V]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	delete(c.items, e.Value.(*entry[K, V]).key)
}
