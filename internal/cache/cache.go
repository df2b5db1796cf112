// SPDX-License-Identifier: MIT

// Package cache provides a small in-memory store with idle expiry.
package cache

import (
	"sync"
	"time"
)

// Stats holds cache counters.
type Stats struct {
	Hits        int64 // Get found a live entry
	Misses      int64 // Get found nothing or an expired entry
	Sets        int64 // Set calls
	Evictions   int64 // expired entries removed by the janitor
	CurrentSize int   // entries currently held
}

type entry[V any] struct {
	value      V
	ttl        time.Duration
	expiration time.Time
}

func (e *entry[V]) isExpired(now time.Time) bool {
	return now.After(e.expiration)
}

// Memory is a thread-safe map whose entries expire after a period without access.
// Every successful Get pushes the entry's expiry forward by its TTL.
type Memory[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	stats   Stats
	now     func() time.Time
	onEvict func(key string, value V)

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewMemory creates a store. When cleanupInterval > 0 a janitor goroutine removes
// expired entries until Stop is called. onEvict, if non-nil, is called for each
// entry the janitor removes, outside the lock.
func NewMemory[V any](cleanupInterval time.Duration, onEvict func(key string, value V)) *Memory[V] {
	c := &Memory[V]{
		entries: make(map[string]*entry[V]),
		now:     time.Now,
		onEvict: onEvict,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.janitor(cleanupInterval)
	} else {
		close(c.done)
	}
	return c
}

// Get returns a live entry and refreshes its expiry.
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, ok := c.entries[key]
	if !ok || e.isExpired(now) {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	e.expiration = now.Add(e.ttl)
	c.stats.Hits++
	return e.value, true
}

// Set stores value under key with the given idle TTL.
func (c *Memory[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry[V]{value: value, ttl: ttl, expiration: c.now().Add(ttl)}
	c.stats.Sets++
}

// Delete removes key and reports whether a live entry was present.
func (c *Memory[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	delete(c.entries, key)
	return ok && !e.isExpired(c.now())
}

// Len returns the number of entries, expired ones not yet collected included.
func (c *Memory[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the counters.
func (c *Memory[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.CurrentSize = len(c.entries)
	return stats
}

// DeleteExpired removes all expired entries and returns how many were removed.
func (c *Memory[V]) DeleteExpired() int {
	type evicted struct {
		key   string
		value V
	}
	var gone []evicted

	c.mu.Lock()
	now := c.now()
	for key, e := range c.entries {
		if e.isExpired(now) {
			delete(c.entries, key)
			gone = append(gone, evicted{key, e.value})
		}
	}
	c.stats.Evictions += int64(len(gone))
	c.mu.Unlock()

	if c.onEvict != nil {
		for _, g := range gone {
			c.onEvict(g.key, g.value)
		}
	}
	return len(gone)
}

// Stop ends the janitor goroutine and waits for it to exit. It is safe to call
// more than once.
func (c *Memory[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}

func (c *Memory[V]) janitor(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.DeleteExpired()
		case <-c.stop:
			return
		}
	}
}
