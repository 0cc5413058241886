// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "github.com/cznic/ltcore"

// Next implements stateless iteration (§4.E "Iteration"): given the key
// from the previous step (or nil to start), it returns the following
// (key, value) pair and ok==true, or ok==false once iteration is
// exhausted. Mutating a table's existing entries (but not inserting new
// ones) during iteration is safe, matching the C core's contract.
func (t *Table) Next(key ltcore.Value) (nkey, nval ltcore.Value, ok bool, err error) {
	i, err := t.findIndex(key)
	if err != nil {
		return nilValue, nilValue, false, err
	}

	i++
	for ; i < len(t.Array); i++ {
		if !ltcore.IsNil(t.Array[i]) {
			var k ltcore.Value
			ltcore.SetNumber(&k, float64(i+1))
			return k, t.Array[i], true, nil
		}
	}

	for hi := i - len(t.Array); hi < len(t.Node); hi++ {
		if !ltcore.IsNil(t.Node[hi].Val) {
			return t.Node[hi].Key, t.Node[hi].Val, true, nil
		}
	}
	return nilValue, nilValue, false, nil
}

// findIndex resolves key to a 0-based position in the combined
// array-then-hash address space (so Next's caller can just i++ and keep
// walking), or -1 if key is nil (meaning "start from the beginning").
func (t *Table) findIndex(key ltcore.Value) (int, error) {
	if ltcore.IsNil(key) {
		return -1, nil
	}

	if ai := arrayIndex(key); ai > 0 && ai <= len(t.Array) {
		return ai - 1, nil
	}

	if t.isDummy() {
		return 0, &ErrINVAL{Op: "next", Why: "invalid key to next"}
	}

	mp, err := t.mainPos(key)
	if err != nil {
		return 0, err
	}

	keyCollectable, keyC := ltcore.AsCollectable(key)
	for n := mp; ; {
		nk := t.Node[n].Key
		if ltcore.RawEqual(nk, key) || deadKeyMatches(nk, keyC, keyCollectable) {
			return n + len(t.Array), nil
		}
		if t.Node[n].next == noNext {
			return 0, &ErrINVAL{Op: "next", Why: "invalid key to next"}
		}
		n = t.Node[n].next
	}
}

// deadKeyMatches reports whether nodeKey is a dead-key retaining the same
// collectable identity as a live key being looked up — the one case a
// plain RawEqual can't see, since a dead key's tag no longer matches the
// live key's tag (§3 invariant 5: "a table iterator stepping past a
// deleted key can still compute the correct successor").
func deadKeyMatches(nodeKey ltcore.Value, keyWasCollectable bool, keyCollectable ltcore.Collectable) bool {
	if ltcore.TypeOf(nodeKey) != ltcore.KindDeadKey || !keyWasCollectable {
		return false
	}
	dead, ok := ltcore.AsCollectable(nodeKey)
	return ok && dead == keyCollectable
}
