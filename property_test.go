package qcache

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_CacheKeyEqualityIsReflexiveAndFieldwise validates that two
// CacheKeys built from the same components always compare equal, and that
// changing the AST hash changes the result.
func TestProperty_CacheKeyEqualityIsReflexiveAndFieldwise(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("identical components always produce equal keys", prop.ForAll(
		func(ast uint64, user string) bool {
			k1 := NewCacheKey(ast, nil, nil, user)
			k2 := NewCacheKey(ast, nil, nil, user)
			return k1 == k2
		},
		gen.UInt64(),
		gen.AlphaString(),
	))

	properties.Property("a different AST hash always produces a different key", prop.ForAll(
		func(ast1, ast2 uint64, user string) bool {
			if ast1 == ast2 {
				ast2++
			}
			k1 := NewCacheKey(ast1, nil, nil, user)
			k2 := NewCacheKey(ast2, nil, nil, user)
			return k1 != k2
		},
		gen.UInt64(),
		gen.UInt64(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestProperty_HashSettingsDeterministic validates that HashSettings is a
// pure function of its input: calling it twice on the same slice of
// settings always yields the same value.
func TestProperty_HashSettingsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("HashSettings is deterministic", prop.ForAll(
		func(names []string, values []string) bool {
			n := len(names)
			if len(values) < n {
				n = len(values)
			}
			settings := make([]Setting, n)
			for i := 0; i < n; i++ {
				settings[i] = Setting{Name: names[i], Value: values[i]}
			}
			return HashSettings(settings) == HashSettings(settings)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// TestProperty_CounterMonotonicallyIncreases validates that RecordRun on a
// facade never decreases and always increases by exactly one per call, for
// any sequence of call counts.
func TestProperty_CounterMonotonicallyIncreases(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("RecordRun returns a strictly increasing sequence", prop.ForAll(
		func(n int) bool {
			if n < 1 {
				n = 1
			}
			if n > 500 {
				n = 500
			}
			f, err := New(DefaultSettings())
			if err != nil {
				return false
			}
			defer f.Close()

			key := NewCacheKey(1, nil, nil, "")
			prev := int64(0)
			for i := 0; i < n; i++ {
				got := f.RecordRun(key)
				if got != prev+1 {
					return false
				}
				prev = got
			}
			return true
		},
		gen.IntRange(1, 500),
	))

	properties.TestingRun(t)
}

// TestProperty_StoreNeverExceedsByteBudgetAtRest validates the store's
// strict-LRU byte bound: after any sequence of puts, once every put handle
// is closed, total store weight never exceeds MaxBytes (assuming no single
// entry alone exceeds MaxEntrySize, which is enforced separately).
func TestProperty_StoreNeverExceedsByteBudgetAtRest(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("total cache weight never exceeds MaxBytes", prop.ForAll(
		func(numKeys, rowLen int) bool {
			if numKeys < 1 {
				numKeys = 1
			}
			if numKeys > 20 {
				numKeys = 20
			}
			if rowLen < 1 {
				rowLen = 1
			}
			if rowLen > 200 {
				rowLen = 200
			}

			settings := DefaultSettings()
			settings.MaxBytes = 500
			settings.MaxEntrySize = 500
			f, err := New(settings)
			if err != nil {
				return false
			}
			defer f.Close()

			payload := make([]byte, rowLen)
			for i := range payload {
				payload[i] = 'x'
			}

			for i := 0; i < numKeys; i++ {
				key := NewCacheKey(uint64(i), nil, nil, "")
				ph := f.TryPut(key)
				if ph == nil {
					continue
				}
				ph.Push(Batch{Columns: []string{"a"}, Rows: [][]interface{}{{string(payload)}}})
				ph.Close()
			}

			return f.store.TotalWeight() <= settings.MaxBytes
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t)
}
