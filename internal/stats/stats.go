// Package stats implements the cache's observability counters: a small set
// of atomic tallies and a point-in-time snapshot, in the style of this
// codebase's existing query-pattern stats and planner cache-stats structs.
// This is deliberately not a metrics-library integration (no prometheus
// registry, no OpenTelemetry instrument) — those concerns live, if anywhere,
// one layer up in whatever embeds this cache.
package stats

import "sync/atomic"

// Snapshot is a point-in-time read of the cache's counters.
type Snapshot struct {
	Hits              int64
	Misses            int64
	Inserts           int64
	EvictedBySize     int64
	EvictedByTimeout  int64
	EvictedByExplicit int64
	RejectedOversized int64
}

// Counters is a set of atomic tallies updated by the facade as it services
// requests. The zero value is ready to use.
type Counters struct {
	hits              atomic.Int64
	misses            atomic.Int64
	inserts           atomic.Int64
	evictedBySize     atomic.Int64
	evictedByTimeout  atomic.Int64
	evictedByExplicit atomic.Int64
	rejectedOversized atomic.Int64
}

func (c *Counters) RecordHit()               { c.hits.Add(1) }
func (c *Counters) RecordMiss()              { c.misses.Add(1) }
func (c *Counters) RecordInsert()            { c.inserts.Add(1) }
func (c *Counters) RecordEvictedBySize()     { c.evictedBySize.Add(1) }
func (c *Counters) RecordEvictedByTimeout()  { c.evictedByTimeout.Add(1) }
func (c *Counters) RecordEvictedByExplicit() { c.evictedByExplicit.Add(1) }
func (c *Counters) RecordRejectedOversized() { c.rejectedOversized.Add(1) }

// Snapshot returns the current value of every counter. Counters are read
// independently with no overall lock, so a snapshot taken concurrently with
// updates may be slightly inconsistent across fields — acceptable for
// diagnostics, not used for correctness anywhere in the cache itself.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Hits:              c.hits.Load(),
		Misses:            c.misses.Load(),
		Inserts:           c.inserts.Load(),
		EvictedBySize:     c.evictedBySize.Load(),
		EvictedByTimeout:  c.evictedByTimeout.Load(),
		EvictedByExplicit: c.evictedByExplicit.Load(),
		RejectedOversized: c.rejectedOversized.Load(),
	}
}
