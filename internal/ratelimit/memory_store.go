package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepEvery controls how many increments pass between expired-key sweeps.
const sweepEvery = 1024

type counter struct {
	count    int64
	expireAt time.Time
}

// MemoryStore keeps counters in process memory. Counts are not shared between instances.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
	clock    Clock
	ops      int
}

// NewMemoryStore creates an empty in-memory store. A nil clock means the wall clock.
func NewMemoryStore(clock Clock) *MemoryStore {
	if clock == nil {
		clock = SystemClock
	}
	return &MemoryStore{
		counters: make(map[string]*counter),
		clock:    clock,
	}
}

// Increment implements Store.
func (ms *MemoryStore) Increment(_ context.Context, key string, expireAt time.Time) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.clock.Now()

	ms.ops++
	if ms.ops%sweepEvery == 0 {
		ms.sweep(now)
	}

	c, ok := ms.counters[key]
	if !ok || !now.Before(c.expireAt) {
		c = &counter{expireAt: expireAt}
		ms.counters[key] = c
	}
	c.count++
	return c.count, nil
}

// Len returns the number of live counters.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.sweep(ms.clock.Now())
	return len(ms.counters)
}

func (ms *MemoryStore) sweep(now time.Time) {
	for key, c := range ms.counters {
		if !now.Before(c.expireAt) {
			delete(ms.counters, key)
		}
	}
}
