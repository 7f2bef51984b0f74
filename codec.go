package qcache

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"

	"github.com/arkilian/qcache/internal/entry"
)

// wireEntry is the JSON shape a dumped entry is serialized as, before
// snappy compression. It exists purely for support tooling — diagnostic
// dump/restore is never on the hot path and has no bearing on cache
// correctness.
type wireEntry struct {
	Batches []Batch `json:"batches"`
}

// DumpEntry serializes key's cached batches as snappy-compressed JSON, for
// inspection by support tooling. It fails if key does not name a complete
// entry.
func (f *Facade) DumpEntry(key CacheKey) ([]byte, error) {
	e, ok := f.store.Get(key)
	if !ok || e.IsWriting() {
		return nil, fmt.Errorf("qcache: no complete entry for key")
	}

	raw := e.Batches()
	batches := make([]Batch, len(raw))
	for i, b := range raw {
		batches[i] = b.(Batch)
	}

	payload, err := json.Marshal(wireEntry{Batches: batches})
	if err != nil {
		return nil, fmt.Errorf("qcache: encoding entry dump: %w", err)
	}
	return snappy.Encode(nil, payload), nil
}

// RestoreEntry decompresses and decodes a dump produced by DumpEntry and
// installs it as a complete entry under key, replacing whatever was there.
// Restoring a diagnostic snapshot is an explicit operator action, not
// organic cache growth driven by query traffic.
func (f *Facade) RestoreEntry(key CacheKey, dump []byte) error {
	payload, err := snappy.Decode(nil, dump)
	if err != nil {
		return fmt.Errorf("qcache: decompressing entry dump: %w", err)
	}

	var wire wireEntry
	if err := json.Unmarshal(payload, &wire); err != nil {
		return fmt.Errorf("qcache: decoding entry dump: %w", err)
	}

	e := entry.New()
	for _, b := range wire.Batches {
		e.Push(b)
	}
	e.Finish()

	f.store.Remove(key)
	f.store.GetOrInsert(key, func() *entry.Entry { return e })
	return nil
}
