package qcache

import (
	"sync"
	"time"

	"github.com/arkilian/qcache/internal/entry"
)

// PutHandle is the exclusive write side of a single cache entry. Exactly
// one PutHandle per key is ever the owner: TryPut hands out a non-owning
// handle to every concurrent caller that loses the race to populate a given
// key, and a non-owning handle silently discards everything pushed to it.
// This avoids buffering a losing writer's batches or making it wait on the
// winner — both would need a second lock-ordering relationship between the
// store and a per-key waiter list that this design avoids entirely.
type PutHandle struct {
	facade *Facade
	key    CacheKey
	entry  *entry.Entry
	owner  bool

	mu        sync.Mutex
	closed    bool
	oversized bool
}

// Push appends a batch to the entry. On a non-owning handle this is a
// silent no-op. On an owning handle, if appending b would grow the entry
// past the facade's configured MaxEntrySize, the entire entry — including
// everything pushed to it so far — is dropped from the store, matching the
// reference system's per-entry size limit.
func (p *PutHandle) Push(b Batch) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || !p.owner || p.oversized {
		return
	}

	if p.entry.Weight()+b.SizeBytes() > p.facade.settings.MaxEntrySize {
		p.oversized = true
		p.facade.store.Remove(p.key)
		p.facade.stats.RecordRejectedOversized()
		return
	}

	p.entry.Push(b)
	p.facade.store.GrowWeight(p.key, b.SizeBytes())
}

// Close finalizes the entry, making it visible to readers, and schedules
// its timed eviction if the facade's EntryPutTimeout is non-zero. Close is
// idempotent; calling it more than once after the first has no effect.
func (p *PutHandle) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	if !p.owner || p.oversized {
		return nil
	}

	p.entry.Finish()
	p.facade.stats.RecordInsert()

	if p.facade.settings.EntryPutTimeout > 0 {
		p.facade.scheduler.Schedule(p.key, time.Now().Add(p.facade.settings.EntryPutTimeout))
	}
	return nil
}

// Cancel discards the write in progress. On an owning handle this removes
// the (necessarily still-writing) entry from the store entirely, so no
// reader ever observes a partial result. On a non-owning handle it is a
// no-op, since there is nothing for it to own.
func (p *PutHandle) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	if p.owner && !p.oversized {
		p.facade.store.Remove(p.key)
	}
}
