// Package counter tracks how many times each query fingerprint has been
// run, independent of whether it was ever cached. The facade itself never
// reads these counts — TryPut admits unconditionally. Callers record each
// run via Facade.RecordRun and compare the returned total against their own
// min-executions-before-caching threshold to decide whether a query has
// recurred often enough to be worth caching before calling TryPut.
package counter

import "sync"

// Counter is a mutex-guarded per-key execution tally.
type Counter[K comparable] struct {
	mu     sync.Mutex
	counts map[K]int64
}

// New creates an empty counter.
func New[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int64)}
}

// Record increments key's execution count and returns the new total.
func (c *Counter[K]) Record(key K) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key]
}

// Get returns key's current execution count without incrementing it.
func (c *Counter[K]) Get(key K) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key]
}

// Reset clears every tracked key. Per the resolved design question (see
// DESIGN.md), the cache facade's Reset does not call this: execution counts
// survive a cache reset, matching the reference system's behavior. Reset
// exists for callers that do want a clean slate, such as tests.
func (c *Counter[K]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = make(map[K]int64)
}
