// Package qcache implements an in-memory, byte-bounded, LRU query result
// cache keyed by a query fingerprint (CacheKey), with at-most-one-writer
// coordination per key and a timer-queue-based eviction scheduler.
//
// A Facade is the package's single entry point. Construct one with New,
// drive it with TryPut/TryRead/RecordRun, and Close it when done.
package qcache

import (
	"time"

	"github.com/arkilian/qcache/internal/counter"
	"github.com/arkilian/qcache/internal/entry"
	"github.com/arkilian/qcache/internal/lru"
	"github.com/arkilian/qcache/internal/scheduler"
	"github.com/arkilian/qcache/internal/stats"
)

// Facade owns every moving part of the cache: the byte-bounded LRU store,
// the timed eviction scheduler, the per-key execution counter, and the
// observability counters.
type Facade struct {
	settings  Settings
	store     *lru.Store[CacheKey, *entry.Entry]
	scheduler *scheduler.Scheduler[CacheKey]
	counter   *counter.Counter[CacheKey]
	stats     *stats.Counters
}

// New constructs a Facade. It fails only if settings does not validate —
// this implementation never preallocates the store's byte budget, so there
// is no "out of memory at construction" failure mode to report.
func New(settings Settings) (*Facade, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	f := &Facade{
		settings: settings,
		counter:  counter.New[CacheKey](),
		stats:    &stats.Counters{},
	}
	f.store = lru.New[CacheKey, *entry.Entry](settings.MaxBytes, func(key CacheKey) {
		f.stats.RecordEvictedBySize()
	})
	f.scheduler = scheduler.New[CacheKey](f.onExpire)
	return f, nil
}

// onExpire is the scheduler's callback for a key whose put timeout elapsed.
// Removal is idempotent: the key may already be gone via LRU eviction or an
// explicit Reset, in which case this is a harmless no-op.
func (f *Facade) onExpire(key CacheKey) {
	if _, ok := f.store.Get(key); ok {
		f.stats.RecordEvictedByTimeout()
		f.store.Remove(key)
	}
}

// RecordRun records that key's query executed, independent of caching, and
// returns the new total execution count. Callers typically compare this
// count against Settings.MinExecutionsBeforeCaching themselves to decide
// whether a TryPut is worthwhile; the facade does not consult it.
func (f *Facade) RecordRun(key CacheKey) int64 {
	return f.counter.Record(key)
}

// TryPut attempts to begin writing a result for key. It returns nil only if
// a complete result for key is already cached (there is nothing to write).
// Otherwise it returns a PutHandle: an owning handle if this call won the
// race to populate key, a non-owning (silently-discarding) handle if
// another caller is already writing it. TryPut never gates on execution
// count — Settings.MinExecutionsBeforeCaching is a threshold for callers to
// apply against RecordRun's return value before calling TryPut at all.
func (f *Facade) TryPut(key CacheKey) *PutHandle {
	e, inserted := f.store.GetOrInsert(key, entry.New)
	if inserted {
		return &PutHandle{facade: f, key: key, entry: e, owner: true}
	}
	if e.IsWriting() {
		return &PutHandle{facade: f, key: key, entry: e, owner: false}
	}
	// A complete entry is already cached; nothing to write.
	return nil
}

// TryRead looks up key and returns a ReadHandle if a complete (non-writing)
// entry is present. A key that is absent, or still being written by some
// other caller's PutHandle, is reported as a miss — readers never observe
// partial results.
func (f *Facade) TryRead(key CacheKey) (*ReadHandle, bool) {
	e, ok := f.store.Get(key)
	if !ok || e.IsWriting() {
		f.stats.RecordMiss()
		return nil, false
	}
	f.stats.RecordHit()
	return &ReadHandle{source: newSource(e.Batches())}, true
}

// Contains reports whether key names an entry in the store at all, whether
// or not it is still being written. It is an existence probe for
// diagnostics and does not affect hit/miss counters; like any store lookup,
// a found key is marked most recently used. Callers that need to know
// whether a result is actually readable must use TryRead.
func (f *Facade) Contains(key CacheKey) bool {
	_, ok := f.store.Get(key)
	return ok
}

// Remove explicitly drops key from the cache, if present.
func (f *Facade) Remove(key CacheKey) {
	if _, ok := f.store.Get(key); ok {
		f.stats.RecordEvictedByExplicit()
		f.store.Remove(key)
	}
}

// Reset clears every cached entry. Execution counts recorded via RecordRun
// are not cleared — see DESIGN.md for why this matches the reference
// system rather than the more symmetric alternative.
func (f *Facade) Reset() {
	f.store.Reset()
}

// Stats returns a point-in-time snapshot of the facade's observability
// counters.
func (f *Facade) Stats() stats.Snapshot {
	return f.stats.Snapshot()
}

// Close stops the eviction scheduler's background goroutine and waits for
// it to exit.
func (f *Facade) Close() error {
	f.scheduler.Stop()
	return nil
}

// entryPutDeadline is exposed for tests that need to reason about timing
// without sleeping for the full configured timeout.
func (f *Facade) entryPutDeadline() time.Duration {
	return f.settings.EntryPutTimeout
}
