package qcache

import (
	"sync"

	"github.com/arkilian/qcache/internal/entry"
)

// Source is what a ReadHandle hands back to a consumer: a replayable view
// over one cached entry's batches. It concatenates the entry's batches into
// a single combined batch lazily, on the first call to Next or Peek, and caches the
// result so repeated calls are idempotent and cheap.
//
// Source holds its own strong reference to the entry's batch slice, so it
// remains valid for as long as the caller holds it even if the store evicts
// the entry out from under it concurrently.
type Source struct {
	once     sync.Once
	raw      []entry.Batch
	combined Batch
	consumed bool
	mu       sync.Mutex
}

// newSource wraps an entry's batches. raw is never mutated afterward —
// entry.Entry guarantees this once its writing flag is false.
func newSource(raw []entry.Batch) *Source {
	return &Source{raw: raw}
}

// Next returns the source's combined batch on its first call, and reports
// false on every call after — Source represents a single logical result
// set, not an unbounded stream. Callers that need the combined batch
// repeatedly should hold onto the returned value rather than calling Next
// again.
func (s *Source) Next() (Batch, bool) {
	s.materialize()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed {
		return Batch{}, false
	}
	s.consumed = true
	return s.combined, true
}

// Peek returns the combined batch without marking the source as consumed.
// Safe to call any number of times, including after Next.
func (s *Source) Peek() Batch {
	s.materialize()
	return s.combined
}

func (s *Source) materialize() {
	s.once.Do(func() {
		batches := make([]Batch, len(s.raw))
		for i, b := range s.raw {
			batches[i] = b.(Batch)
		}
		s.combined = ConcatBatches(batches)
	})
}
