// Copyright 2026 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lru provides a map with least-recently-used eviction.
//
// Recency order is kept in an intrusive list threaded through the map's own
// entries, so a lookup reorders the entry with two pointer splices and no
// allocation.
//
// The cache is not thread-safe.
package lru

import (
	"gvisor.dev/ilist/pkg/ilist"
)

type entry[K comparable, V any] struct {
	key   K
	value V
	node  ilist.Node[entry[K, V]]
}

// Cache maps keys to values, evicting the least recently used entry once a
// capacity is exceeded. The recency list runs from least to most recently
// used.
type Cache[K comparable, V any] struct {
	entries  map[K]*entry[K, V]
	order    *ilist.List[entry[K, V]]
	capacity int
}

// New returns an empty cache holding at most capacity entries. A capacity of
// zero means unbounded.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*entry[K, V]),
		order: ilist.New(func(e *entry[K, V]) *ilist.Node[entry[K, V]] {
			return &e.node
		}),
		capacity: capacity,
	}
}

// Get returns the value stored under key and marks the entry as most
// recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.Remove(e)
	c.order.Push(e)
	return e.value, true
}

// Peek returns the value stored under key without touching recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key as the most recently used entry, evicting the
// least recently used entry if the cache is over capacity. It reports
// whether an existing value was replaced.
func (c *Cache[K, V]) Set(key K, value V) bool {
	if e, ok := c.entries[key]; ok {
		e.value = value
		c.order.Remove(e)
		c.order.Push(e)
		return true
	}
	e := &entry[K, V]{key: key, value: value}
	c.entries[key] = e
	c.order.Push(e)
	if c.capacity > 0 && len(c.entries) > c.capacity {
		evicted := c.order.Pop()
		delete(c.entries, evicted.key)
	}
	return false
}

// Delete removes the entry stored under key, reporting whether it existed.
func (c *Cache[K, V]) Delete(key K) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(e)
	delete(c.entries, key)
	return true
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Keys returns the cached keys from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.entries))
	for e := c.order.Front(); e != nil; e = c.order.Next(e) {
		keys = append(keys, e.key)
	}
	return keys
}
