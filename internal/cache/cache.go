// Package cache provides a small fixed-capacity LRU used to memoize rendered
// previews.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is safe for concurrent use; previews are rendered off the event loop.
type LRU[K comparable, V any] struct {
	items *lru.Cache[K, V]
}

// New returns an LRU holding at most size entries. Sizes below one are
// treated as one.
func New[K comparable, V any](size int) *LRU[K, V] {
	if size < 1 {
		size = 1
	}
	// lru.New only fails for non-positive sizes.
	items, _ := lru.New[K, V](size)
	return &LRU[K, V]{items: items}
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.items.Get(key)
}

func (c *LRU[K, V]) Put(key K, value V) {
	c.items.Add(key, value)
}

func (c *LRU[K, V]) Len() int {
	return c.items.Len()
}

func (c *LRU[K, V]) Purge() {
	c.items.Purge()
}
