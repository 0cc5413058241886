// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intern

import "github.com/cznic/ltcore"

// Table is the global string-intern table (§4.D). A Table belongs to
// exactly one GlobalState.
type Table struct {
	short map[string]*ltcore.String
	seed  uint32
}

// NewTable returns an empty intern Table seeded for HashLong. seed comes
// from GlobalState's four-pointer RNG mix (§4.G).
func NewTable(seed uint32) *Table {
	return &Table{short: map[string]*ltcore.String{}, seed: seed}
}

// InternShort returns the canonical *ltcore.String for b, allocating and
// caching a new one on first sight. Two calls with equal b always return
// the identical pointer, so RawEqual on short strings can compare pointers
// instead of content.
func (t *Table) InternShort(b []byte) *ltcore.String {
	key := string(b)
	if s, ok := t.short[key]; ok {
		return s
	}
	s := ltcore.NewShortString([]byte(key), hashFNV1a(b, t.seed))
	t.short[key] = s
	return s
}

// Remove drops the string interned under b once the collector has
// determined it is unreachable. It is a no-op if nothing was interned
// under b.
func (t *Table) Remove(b []byte) {
	delete(t.short, string(b))
}

// Len reports the number of currently interned short strings.
func (t *Table) Len() int { return len(t.short) }

// HashLong computes (but does not cache) the seeded hash of a long
// string's bytes. Callers cache the result via (*ltcore.String).SetHash;
// package table's mainPos does so the first time a long string is used as
// a key.
func (t *Table) HashLong(b []byte) uint32 {
	return hashFNV1a(b, t.seed)
}

// Fix pins s non-collectable for the remainder of the runtime's lifetime,
// used for pre-built constants such as the out-of-memory error message
// that must survive even an emergency collection triggered by an
// allocation failure (§4.A).
func Fix(s *ltcore.String) {
	s.Marked |= ltcore.MarkFixed
}

// hashFNV1a is the 32-bit FNV-1a variant, seeded by XORing the seed into
// the offset basis so two runtimes started with different seeds hash the
// same bytes differently (§4.G's collision-attack defense).
func hashFNV1a(b []byte, seed uint32) uint32 {
	const (
		offset = 2166136261
		prime  = 16777619
	)
	h := uint32(offset) ^ seed
	for _, c := range b {
		h ^= uint32(c)
		h *= prime
	}
	return h
}
