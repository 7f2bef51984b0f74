package qcache

import (
	"strings"

	"github.com/spaolacci/murmur3"
)

// ColumnRef names one column of a query's result schema, used to build the
// schema component of a CacheKey.
type ColumnRef struct {
	Name string
	Type string
}

// Setting is one execution setting that participates in the cache key. Two
// queries that are otherwise identical but ran under different settings are
// treated as different cache entries.
type Setting struct {
	Name  string
	Value string
}

// CacheKey is the fingerprint under which a result is stored. It is a flat,
// comparable struct — usable directly as a Go map key — built from a
// structural AST hash (computed by the caller; AST construction is out of
// this package's scope), a canonical schema digest, an order-sensitive
// settings hash, and an optional user string for per-user isolation.
type CacheKey struct {
	ASTHash      uint64
	SchemaDigest string
	SettingsHash uint64
	User         string
}

// settingsHashCoefficient is the positional mixing coefficient used to
// combine per-setting hashes into one order-sensitive value. Taken from the
// reference system's own CacheKeyHasher, which mixes settings the same way:
// hash = Σ murmur3(settings[i]) * coefficient^i. Settings are deliberately
// not sorted first — order is part of the identity, matching the reference
// system's documented intent.
const settingsHashCoefficient uint64 = 53

// HashSettings combines settings into one order-sensitive uint64.
func HashSettings(settings []Setting) uint64 {
	var total uint64
	power := uint64(1)
	for _, s := range settings {
		h := murmur3.New64()
		h.Write([]byte(s.Name))
		h.Write([]byte{0})
		h.Write([]byte(s.Value))
		total += h.Sum64() * power
		power *= settingsHashCoefficient
	}
	return total
}

// SchemaDigest builds the canonical schema string for a set of columns:
// ordered "name:type" pairs, comma-joined, in the order given. Callers are
// expected to pass columns in their query's own output order — the digest
// does not sort, so reordered-but-equivalent schemas hash differently, which
// matches the reference system treating schema as a positional concept.
func SchemaDigest(columns []ColumnRef) string {
	var b strings.Builder
	for i, c := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Name)
		b.WriteByte(':')
		b.WriteString(c.Type)
	}
	return b.String()
}

// NewCacheKey builds a CacheKey from its components.
func NewCacheKey(astHash uint64, columns []ColumnRef, settings []Setting, user string) CacheKey {
	return CacheKey{
		ASTHash:      astHash,
		SchemaDigest: SchemaDigest(columns),
		SettingsHash: HashSettings(settings),
		User:         user,
	}
}

// Hash returns a single uint64 identifying this key, for use in diagnostics
// and logging where a compact identifier is more useful than the full
// struct. It is not used for map lookups — CacheKey's own field equality
// already serves that, since the struct is comparable.
func (k CacheKey) Hash() uint64 {
	h := murmur3.New64()
	h.Write([]byte(k.SchemaDigest))
	h.Write([]byte{0})
	h.Write([]byte(k.User))
	schemaAndUser := h.Sum64()

	return k.ASTHash +
		schemaAndUser*settingsHashCoefficient +
		k.SettingsHash*settingsHashCoefficient*settingsHashCoefficient
}
