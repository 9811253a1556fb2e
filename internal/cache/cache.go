// Copyright (c) 2026 dotandev
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"sync"
	"sync/atomic"

	"github.com/dotandev/svginvert/internal/logger"
)

// InvertFunc computes the inverted form of a color literal.
type InvertFunc func(literal string) (string, error)

// Stats holds cache counters
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Cache memoizes InvertFunc per literal. Entries are never evicted: the value
// is a pure function of the key. A literal that fails to invert is cached as
// itself so the failing parse is not repeated.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
	invert  InvertFunc

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache that fills misses with fn
func New(fn InvertFunc) *Cache {
	return &Cache{
		entries: make(map[string]string),
		invert:  fn,
	}
}

// LookupOrCompute returns the cached value for literal, computing and storing
// it on a miss.
func (c *Cache) LookupOrCompute(literal string) string {
	v, _ := c.Get(literal)
	return v
}

// Get is LookupOrCompute that also reports whether the value was already
// cached. Two goroutines missing on the same literal may both compute it; the
// first insert wins and both observe the same value.
func (c *Cache) Get(literal string) (string, bool) {
	c.mu.RLock()
	v, ok := c.entries[literal]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return v, true
	}

	c.misses.Add(1)
	v, err := c.invert(literal)
	if err != nil {
		logger.Logger.Debug("Color left unchanged", "literal", literal, "error", err)
		v = literal
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[literal]; ok {
		return existing, false
	}
	c.entries[literal] = v
	return v, false
}

// Lookup returns the cached value without computing on a miss.
func (c *Cache) Lookup(literal string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[literal]
	return v, ok
}

// Len returns the number of cached literals
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of the counters
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.Len(),
	}
}
