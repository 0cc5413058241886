// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"github.com/cznic/ltcore"
	"github.com/cznic/ltcore/intern"
	"github.com/cznic/ltcore/mem"
)

var nilValue ltcore.Value // zero Value is tag KindNil

// Table is the hybrid array/hash aggregate (§3 "Table", §4.E). The zero
// value is not usable; construct with New.
type Table struct {
	ltcore.Header

	Array []ltcore.Value
	Node  []Node

	lastFree int // scan cursor into Node, decremented by getFreePos

	// arrayBallast/nodeBallast mirror the byte length of Array/Node and
	// are the buffers actually handed to the allocator's ReallocFunc on
	// every resize (see rehash.go's setArrayVector/setNodeVector) — the
	// real storage still grows via make/copy, since Array/Node hold live
	// Go pointers a []byte reinterpretation would hide from the GC.
	arrayBallast []byte
	nodeBallast  []byte

	alloc  *mem.Allocator
	intern *intern.Table
}

// New returns an empty Table: no array part, a dummy (zero-size) hash
// part.
func New(alloc *mem.Allocator, interned *intern.Table) *Table {
	t := &Table{alloc: alloc, intern: interned}
	t.Tag = ltcore.TagTable
	return t
}

// isDummy reports whether t currently has no real hash part — the
// Go-idiomatic stand-in for the C core's shared read-only dummynode
// singleton: rather than give every empty table a pointer to one shared
// sentinel Node, an empty Node slice plays the same role, since every
// operation below already special-cases "no hash part" before indexing.
func (t *Table) isDummy() bool { return len(t.Node) == 0 }

// findHashNode walks key's collision chain, returning the node index
// holding it or -1 if absent. It never touches the array part.
func (t *Table) findHashNode(key ltcore.Value) int {
	if t.isDummy() {
		return -1
	}
	mp, err := t.mainPos(key)
	if err != nil {
		return -1
	}
	for n := mp; ; {
		if ltcore.RawEqual(t.Node[n].Key, key) {
			return n
		}
		if t.Node[n].next == noNext {
			return -1
		}
		n = t.Node[n].next
	}
}

// Get returns the value stored at key, or the nil value if key is absent
// or nil. It never fails (§4.E "lookup of missing key... never fails").
func (t *Table) Get(key ltcore.Value) ltcore.Value {
	if ltcore.IsNil(key) {
		return nilValue
	}
	if i := arrayIndex(key); i > 0 && i <= len(t.Array) {
		return t.Array[i-1]
	}
	if n := t.findHashNode(key); n >= 0 {
		return t.Node[n].Val
	}
	return nilValue
}

// GetInt is the common-case integer-key Get, mirroring luaH_getint.
func (t *Table) GetInt(key int) ltcore.Value {
	if key >= 1 && key <= len(t.Array) {
		return t.Array[key-1]
	}
	var k ltcore.Value
	ltcore.SetNumber(&k, float64(key))
	return t.Get(k)
}

// SetValue stores val at key, inserting a new slot via newKey if key is
// not already present, and applying the dead-key conversion §4.E's
// invariant 5 requires whenever the stored value becomes nil.
//
// The outer loop is the Go shape of the C core's "rehash, then retry the
// whole insert" contract (§4.E, §9 "Rehash tail-call structure"): a
// rehash can move a key from the hash part into the array part (or vice
// versa), so after one, the array-bounds and hash-chain checks both have
// to run again from scratch rather than just retrying the hash insert.
// Rehash is monotonic in total capacity, so this loop runs at most twice.
func (t *Table) SetValue(key, val ltcore.Value) error {
	for {
		if i := arrayIndex(key); i > 0 && i <= len(t.Array) {
			t.Array[i-1] = val
			return nil
		}

		if n := t.findHashNode(key); n >= 0 {
			t.Node[n].Val = val
			if ltcore.IsNil(val) {
				t.deadenKey(n)
			}
			return nil
		}

		n, rehashed, err := t.newKey(key)
		if err != nil {
			return err
		}
		if rehashed {
			continue
		}
		t.Node[n].Val = val
		if ltcore.IsNil(val) {
			t.deadenKey(n)
		}
		return nil
	}
}

// SetInt is the common-case integer-key SetValue, mirroring luaH_setint:
// array keys within range never touch the hash path at all.
func (t *Table) SetInt(key int, val ltcore.Value) error {
	if key >= 1 && key <= len(t.Array) {
		t.Array[key-1] = val
		return nil
	}
	var k ltcore.Value
	ltcore.SetNumber(&k, float64(key))
	return t.SetValue(k, val)
}

// deadenKey converts node n's key to a dead-key retaining its collectable
// payload, so a stepping `Next` iterator can still compute the correct
// successor after this key stops being live (§3 invariant 5). Non-
// collectable keys (numbers, booleans) need no conversion: they carry no
// payload an iterator could lose track of.
func (t *Table) deadenKey(n int) {
	k := t.Node[n].Key
	if !ltcore.IsCollectable(k) {
		return
	}
	c, ok := ltcore.AsCollectable(k)
	if !ok {
		return
	}
	var dead ltcore.Value
	ltcore.SetDeadKey(&dead, c)
	t.Node[n].Key = dead
}

// newKey implements §4.E "Insert (new-key path)" steps 2-4 (step 1's
// nil/NaN rejection happens here too). When no free hash slot exists it
// rehashes and reports rehashed=true instead of retrying the insert
// itself, so the caller (SetValue) re-checks the array part too — a key
// that was hash-bound before a rehash may be array-bound after it.
func (t *Table) newKey(key ltcore.Value) (idx int, rehashed bool, err error) {
	if ltcore.IsNil(key) {
		return -1, false, &ErrINVAL{Op: "newKey", Why: "table index is nil"}
	}
	if ltcore.TypeOf(key) == ltcore.KindNumber && isNaNKey(key) {
		return -1, false, &ErrINVAL{Op: "newKey", Why: "table index is NaN"}
	}

	if t.isDummy() {
		if err := t.rehash(key); err != nil {
			return -1, false, err
		}
		return -1, true, nil
	}

	mp, err := t.mainPos(key)
	if err != nil {
		return -1, false, err
	}

	if !ltcore.IsNil(t.Node[mp].Val) {
		n := t.getFreePos()
		if n < 0 {
			if err := t.rehash(key); err != nil {
				return -1, false, err
			}
			return -1, true, nil
		}
		otherMP, err := t.mainPos(t.Node[mp].Key)
		if err != nil {
			return -1, false, err
		}
		if otherMP != mp {
			// The occupant is displaced; relink its chain through n and
			// give the new key mp's now-vacated slot (Brent's step).
			p := otherMP
			for t.Node[p].next != mp {
				p = t.Node[p].next
			}
			t.Node[p].next = n
			t.Node[n] = t.Node[mp]
			t.Node[mp].next = noNext
			t.Node[mp].Val = nilValue
		} else {
			// The occupant owns its main position; the new key goes into
			// the free slot, linked after mp.
			t.Node[n].next = t.Node[mp].next
			t.Node[mp].next = n
			mp = n
		}
	}

	t.Node[mp].Key = key
	t.Node[mp].Val = nilValue
	return mp, false, nil
}

// getFreePos scans lastFree downward for an empty slot (nil key), exactly
// as the C core's monotonic cursor does — it never revisits a slot already
// found occupied on a prior scan within the same table generation.
func (t *Table) getFreePos() int {
	for t.lastFree > 0 {
		t.lastFree--
		if ltcore.IsNil(t.Node[t.lastFree].Key) {
			return t.lastFree
		}
	}
	return -1
}

func isNaNKey(key ltcore.Value) bool {
	n := ltcore.Number(key)
	return n != n
}
