// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"math/bits"
	"unsafe"

	"github.com/cznic/ltcore"
)

const maxASize = 1 << MaxBits

var valueSize = int(unsafe.Sizeof(ltcore.Value{}))
var nodeSize = int(unsafe.Sizeof(Node{}))

// ceilLog2 returns the smallest i such that 2^i >= k, for k >= 1.
func ceilLog2(k int) int {
	return bits.Len(uint(k - 1))
}

// countInt buckets key by magnitude if it is a valid array index,
// returning 1 if it counted, 0 otherwise (§4.E "Rehash").
func countInt(key ltcore.Value, nums []int) int {
	k := arrayIndex(key)
	if k > 0 && k <= maxASize {
		nums[ceilLog2(k)]++
		return 1
	}
	return 0
}

// numUseArray counts, per magnitude bucket, the live entries already in
// the array part.
func (t *Table) numUseArray(nums []int) int {
	ause := 0
	i := 1
	for lg, ttlg := 0, 1; lg <= MaxBits; lg, ttlg = lg+1, ttlg*2 {
		lc := 0
		lim := ttlg
		if lim > len(t.Array) {
			lim = len(t.Array)
			if i > lim {
				break
			}
		}
		for ; i <= lim; i++ {
			if !ltcore.IsNil(t.Array[i-1]) {
				lc++
			}
		}
		nums[lg] += lc
		ause += lc
	}
	return ause
}

// numUseHash counts live hash-part entries, both the total and the subset
// whose key is array-index-shaped (and so a rehash candidate for the
// array part).
func (t *Table) numUseHash(nums []int) (totalUse, ause int) {
	for i := len(t.Node) - 1; i >= 0; i-- {
		n := &t.Node[i]
		if !ltcore.IsNil(n.Val) {
			ause += countInt(n.Key, nums)
			totalUse++
		}
	}
	return totalUse, ause
}

// computeSizes picks the largest power of two array size such that more
// than half of [1..size] would be occupied, given the per-bucket counts
// in nums and *narray candidate keys total. It returns the number of keys
// that will land in the array part and rewrites *narray to the chosen
// size.
func computeSizes(nums []int, narray *int) int {
	a, na, n := 0, 0, 0
	i := 0
	twotoi := 1
	for twotoi/2 < *narray {
		if nums[i] > 0 {
			a += nums[i]
			if a > twotoi/2 {
				n = twotoi
				na = a
			}
		}
		if a == *narray {
			break
		}
		i++
		twotoi *= 2
	}
	*narray = n
	return na
}

// setArrayVector reallocates the array part to exactly size elements.
// Unlike a thread's value stack (mem.Allocator.ChargeBytes), array growth
// is charged by actually calling Realloc against t.arrayBallast, a
// parallel, pointer-free []byte of the same length — so a host's failing
// ReallocFunc genuinely gets a chance to reject the growth (spec scenario
// S5, "install a failing allocator... insert keys until failure"), while
// the real, pointer-carrying storage still grows via an ordinary Go
// make/copy rather than being reinterpreted out of ballast bytes.
func (t *Table) setArrayVector(size int) error {
	nb, err := t.alloc.Realloc("table.array", t.arrayBallast, size*valueSize)
	if err != nil {
		return err
	}
	t.arrayBallast = nb
	na := make([]ltcore.Value, size)
	copy(na, t.Array)
	t.Array = na
	return nil
}

// setNodeVector replaces the hash part with a fresh vector sized to the
// next power of two at least size, or the dummy (empty) vector if size is
// 0 (§4.E "the shared dummyNode"). Sized exactly like setArrayVector, via
// t.nodeBallast, for the same failure-injection reason.
func (t *Table) setNodeVector(size int) error {
	if size == 0 {
		nb, err := t.alloc.Realloc("table.hash", t.nodeBallast, 0)
		if err != nil {
			return err
		}
		t.nodeBallast = nb
		t.Node = nil
		t.lastFree = 0
		return nil
	}

	lsize := ceilLog2(size)
	if lsize > MaxBits {
		return &ErrOverflow{}
	}
	size = 1 << uint(lsize)

	nb, err := t.alloc.Realloc("table.hash", t.nodeBallast, size*nodeSize)
	if err != nil {
		return err
	}
	t.nodeBallast = nb

	nodes := make([]Node, size)
	for i := range nodes {
		nodes[i].next = noNext
	}
	t.Node = nodes
	t.lastFree = size
	return nil
}

// resize implements luaH_resize: grow the array part if needed, install a
// freshly sized hash part, reinsert anything evicted by an array shrink,
// then reinsert every live old hash entry.
//
// Both growth steps can now fail (a failing ReallocFunc rejecting the
// byte count), so resize is written to leave the table exactly as it was
// before the call whenever it returns an error from either step: if the
// array already grew but the hash part then fails to resize, the array
// growth is unwound by shrinking it back (shrinking can never fail per
// the Realloc contract), since otherwise some hash-part keys whose index
// now falls inside the enlarged-but-not-yet-repopulated array region
// would read as nil from Get instead of falling through to the still
// untouched hash chain — losing a previously-inserted key without
// duplicating it. A failure during the final reinsertion loop below (a
// nested rehash triggered while moving an old hash entry) is not unwound
// the same way; it is the one case this core does not recover from,
// matching how rare and deep that path is even in the original core.
func (t *Table) resize(nasize, nhsize int) error {
	oldASize := len(t.Array)
	oldNodes := t.Node

	grew := nasize > oldASize
	if grew {
		if err := t.setArrayVector(nasize); err != nil {
			return err
		}
	}

	if err := t.setNodeVector(nhsize); err != nil {
		if grew {
			if rerr := t.setArrayVector(oldASize); rerr != nil {
				panic("table: shrinking back during a failed rehash must not fail: " + rerr.Error())
			}
		}
		return err
	}

	if nasize < oldASize {
		full := t.Array
		t.Array = full[:nasize] // narrow the logical size before reinsertion
		for i := nasize; i < oldASize; i++ {
			if !ltcore.IsNil(full[i]) {
				if err := t.SetInt(i+1, full[i]); err != nil {
					return err
				}
			}
		}
		if err := t.setArrayVector(nasize); err != nil { // physically shrink
			return err
		}
	}
	for i := len(oldNodes) - 1; i >= 0; i-- {
		n := &oldNodes[i]
		if !ltcore.IsNil(n.Val) {
			if err := t.SetValue(n.Key, n.Val); err != nil {
				return err
			}
		}
	}
	return nil
}

// Free releases the array and hash part storage, charging both back to
// the allocator (§4.G teardown: "free all objects... assert totalBytes ==
// sizeof(combined-block)" requires every live table to give its bytes
// back before that assertion can hold). Freeing is a shrink-to-zero,
// which the Realloc contract guarantees never fails.
func (t *Table) Free() {
	t.arrayBallast, _ = t.alloc.Realloc("table.array", t.arrayBallast, 0)
	t.nodeBallast, _ = t.alloc.Realloc("table.hash", t.nodeBallast, 0)
	t.Array = nil
	t.Node = nil
	t.lastFree = 0
}

// rehash implements §4.E "Rehash": count keys by magnitude bucket across
// both storage regions plus the key about to be inserted, compute the new
// array/hash sizes, and resize.
func (t *Table) rehash(extraKey ltcore.Value) error {
	nums := make([]int, MaxBits+2)

	nasize := t.numUseArray(nums)
	totalUse := nasize

	hashTotal, hashAuse := t.numUseHash(nums)
	totalUse += hashTotal
	nasize += hashAuse

	nasize += countInt(extraKey, nums)
	totalUse++

	na := computeSizes(nums, &nasize)
	return t.resize(nasize, totalUse-na)
}
