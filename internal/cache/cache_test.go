// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// SPDX-License-Identifier: MIT

package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

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

func newTestMemory(t *testing.T) (*Memory[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemory[string](0, nil)
	c.now = clock.Now
	return c, clock
}

func TestMemory_GetSet(t *testing.T) {
	c, _ := newTestMemory(t)

	c.Set("key1", "value1", 5*time.Minute)

	val, ok := c.Get("key1")
	require.True(t, ok, "expected to find key1")
	assert.Equal(t, "value1", val)

	_, ok = c.Get("nonexistent")
	assert.False(t, ok, "expected not to find nonexistent key")

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 1, stats.CurrentSize)
}

func TestMemory_IdleExpiry(t *testing.T) {
	c, clock := newTestMemory(t)
	c.Set("session", "a", time.Minute)

	clock.Advance(50 * time.Second)
	_, ok := c.Get("session")
	require.True(t, ok)

	// The Get above refreshed the expiry.
	clock.Advance(50 * time.Second)
	_, ok = c.Get("session")
	require.True(t, ok)

	clock.Advance(61 * time.Second)
	_, ok = c.Get("session")
	assert.False(t, ok, "expected key to be expired")
}

func TestMemory_Delete(t *testing.T) {
	c, _ := newTestMemory(t)
	c.Set("key1", "value1", time.Minute)

	assert.True(t, c.Delete("key1"))
	assert.False(t, c.Delete("key1"))
	_, ok := c.Get("key1")
	assert.False(t, ok)
}

func TestMemory_DeleteExpiredCallsOnEvict(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var evicted []string
	c := NewMemory[string](0, func(key, _ string) { evicted = append(evicted, key) })
	c.now = clock.Now

	c.Set("old", "x", time.Second)
	c.Set("fresh", "y", time.Hour)
	clock.Advance(2 * time.Second)

	assert.Equal(t, 1, c.DeleteExpired())
	assert.Equal(t, []string{"old"}, evicted)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestMemory_JanitorStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := NewMemory[int](5*time.Millisecond, nil)
	c.Set("k", 1, time.Millisecond)
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)

	c.Stop()
	c.Stop()
}
