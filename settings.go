package qcache

import "time"

// Settings configures a Facade. The field names mirror the reference
// system's own settings (query_cache_entry_put_timeout,
// max_query_cache_entry_size, min_executions_before_caching), plus a
// store-wide byte ceiling this implementation needs explicitly since it has
// no surrounding allocator to size against.
type Settings struct {
	// MaxBytes is the store's total byte budget across all entries.
	MaxBytes int64

	// EntryPutTimeout is how long a completed entry stays cached after its
	// PutHandle is closed before the scheduler removes it. Zero means no
	// timed removal.
	EntryPutTimeout time.Duration

	// MaxEntrySize is the largest a single entry may grow before it is
	// dropped outright, batches and all.
	MaxEntrySize int64

	// MinExecutionsBeforeCaching is a gating threshold for callers, not
	// enforced by the facade itself: callers typically compare
	// RecordRun(key)'s return value against this before calling TryPut.
	MinExecutionsBeforeCaching int64
}

// DefaultSettings returns settings modeled on the reference system's own
// defaults, scaled to a reasonable embedded footprint.
func DefaultSettings() Settings {
	return Settings{
		MaxBytes:                   1 << 30, // 1 GiB
		EntryPutTimeout:            60 * time.Second,
		MaxEntrySize:               1 << 20, // 1 MiB
		MinExecutionsBeforeCaching: 0,
	}
}

// Validate reports whether s describes a usable cache.
func (s Settings) Validate() error {
	if s.MaxBytes <= 0 {
		return newConfigError("max_bytes must be positive", nil)
	}
	if s.MaxEntrySize <= 0 {
		return newConfigError("max_query_cache_entry_size must be positive", nil)
	}
	if s.MaxEntrySize > s.MaxBytes {
		return newConfigError("max_query_cache_entry_size must not exceed max_bytes", nil)
	}
	if s.MinExecutionsBeforeCaching < 0 {
		return newConfigError("min_executions_before_caching must not be negative", nil)
	}
	if s.EntryPutTimeout < 0 {
		return newConfigError("query_cache_entry_put_timeout must not be negative", nil)
	}
	return nil
}
