// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "github.com/cznic/ltcore"

// Len implements the length operator `#t` (§4.E "Length"). Per the Lua
// semantics it mirrors, the result is a border: an n such that t[n] is
// non-nil (or n==0) and t[n+1] is nil. Tables with nil holes have more
// than one valid border; which one Len returns is unspecified beyond
// that contract, exactly as in the C core.
func (t *Table) Len() int {
	j := len(t.Array)
	if j > 0 && ltcore.IsNil(t.Array[j-1]) {
		// Binary search the array part for a border: Array[i-1] is
		// non-nil, Array[j-1] is nil, invariant held throughout.
		i := 0
		for j-i > 1 {
			m := (i + j) / 2
			if ltcore.IsNil(t.Array[m-1]) {
				j = m
			} else {
				i = m
			}
		}
		return i
	}
	if t.isDummy() {
		return j
	}
	return t.unboundSearch(j)
}

// unboundSearch extends a border found at the end of the array part into
// the hash part: double the candidate index until a nil is hit, then
// binary-search the gap (mirrors unbound_search in the C core). j starts
// as a known non-nil border (or 0); indices are absolute 1-based keys,
// since GetInt already checks the array part itself.
func (t *Table) unboundSearch(j int) int {
	i := j
	j++
	const maxInt = int(^uint(0) >> 1)
	for !ltcore.IsNil(t.GetInt(j)) {
		i = j
		if j > maxInt/2 {
			// Overflow guard: degrade to a linear scan rather than let
			// j double past the platform's int range.
			i = 1
			for !ltcore.IsNil(t.GetInt(i)) {
				i++
			}
			return i - 1
		}
		j *= 2
	}
	for j-i > 1 {
		m := (i + j) / 2
		if ltcore.IsNil(t.GetInt(m)) {
			j = m
		} else {
			i = m
		}
	}
	return i
}
