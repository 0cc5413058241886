// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"errors"
	"testing"

	"github.com/cznic/ltcore"
	"github.com/cznic/ltcore/intern"
	"github.com/cznic/ltcore/mem"
)

func newTestTable(t *testing.T) (*Table, *mem.Allocator) {
	t.Helper()
	a := mem.New(mem.DefaultRealloc, nil, nil)
	return New(a, intern.NewTable(0)), a
}

func num(n float64) ltcore.Value {
	var v ltcore.Value
	ltcore.SetNumber(&v, n)
	return v
}

func str(interned *intern.Table, s string) ltcore.Value {
	var v ltcore.Value
	ltcore.SetCollectable(&v, interned.InternShort([]byte(s)))
	return v
}

// S1: sequential integer insert 1..16 keeps everything in the array part
// and Len reports the exact count once the last slot is non-nil.
func TestScenarioS1SequentialInsert(t *testing.T) {
	tb, _ := newTestTable(t)
	for i := 1; i <= 16; i++ {
		if err := tb.SetInt(i, num(float64(i*10))); err != nil {
			t.Fatalf("SetInt(%d): %v", i, err)
		}
	}
	for i := 1; i <= 16; i++ {
		got := tb.GetInt(i)
		if ltcore.TypeOf(got) != ltcore.KindNumber || ltcore.Number(got) != float64(i*10) {
			t.Fatalf("GetInt(%d) = %v, want %d", i, got, i*10)
		}
	}
	if got := tb.Len(); got != 16 {
		t.Fatalf("Len() = %d, want 16", got)
	}
}

// S2: a single far-out integer key never grows the array part; it lands
// in the hash part, and Len (no contiguous run from 1) reports 0.
func TestScenarioS2SparseFarKey(t *testing.T) {
	tb, _ := newTestTable(t)
	if err := tb.SetInt(1000000, num(42)); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	if len(tb.Array) != 0 {
		t.Fatalf("array part grew to %d, want 0", len(tb.Array))
	}
	got := tb.GetInt(1000000)
	if ltcore.TypeOf(got) != ltcore.KindNumber || ltcore.Number(got) != 42 {
		t.Fatalf("GetInt(1000000) = %v, want 42", got)
	}
	if got := tb.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
}

// A handful of small contiguous keys plus one far outlier: the array part
// should track only the contiguous run, the outlier stays hashed.
func TestSparseIntegerKeyMix(t *testing.T) {
	tb, _ := newTestTable(t)
	for _, k := range []int{1, 2, 3} {
		if err := tb.SetInt(k, num(float64(k))); err != nil {
			t.Fatalf("SetInt(%d): %v", k, err)
		}
	}
	if err := tb.SetInt(1000, num(1000)); err != nil {
		t.Fatalf("SetInt(1000): %v", err)
	}
	if len(tb.Array) > 8 {
		t.Fatalf("array part grew to %d on a 3+1 sparse insert", len(tb.Array))
	}
	for _, k := range []int{1, 2, 3, 1000} {
		got := tb.GetInt(k)
		if ltcore.TypeOf(got) != ltcore.KindNumber || ltcore.Number(got) != float64(k) {
			t.Fatalf("GetInt(%d) = %v, want %d", k, got, k)
		}
	}
}

// String keys that collide at their main position must still both be
// reachable afterward: Brent's variation guarantees the occupant of a
// disputed main position is always the key whose main position it is,
// and a displaced key remains reachable via its own chain.
func TestStringCollisionChainSurvivesBrentDisplacement(t *testing.T) {
	tb, _ := newTestTable(t)
	interned := tb.intern

	const n = 64
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = string(rune('a'+i%26)) + string(rune('A'+(i*7)%26)) + string(rune('0'+i%10))
	}
	for i, k := range keys {
		if err := tb.SetValue(str(interned, k), num(float64(i))); err != nil {
			t.Fatalf("SetValue(%q): %v", k, err)
		}
	}
	for i, k := range keys {
		got := tb.Get(str(interned, k))
		if ltcore.TypeOf(got) != ltcore.KindNumber || ltcore.Number(got) != float64(i) {
			t.Fatalf("Get(%q) = %v, want %d", k, got, i)
		}
	}

	// Every occupied node whose key's main position is NOT this node must
	// be reachable by walking the chain FROM its main position — i.e. no
	// node silently usurped another key's rightful main position without
	// linking it in.
	for i := range tb.Node {
		if ltcore.IsNil(tb.Node[i].Key) {
			continue
		}
		mp, err := tb.mainPos(tb.Node[i].Key)
		if err != nil {
			t.Fatalf("mainPos: %v", err)
		}
		if mp == i {
			continue
		}
		found := false
		for n := mp; ; {
			if n == i {
				found = true
				break
			}
			if tb.Node[n].next == noNext {
				break
			}
			n = tb.Node[n].next
		}
		if !found {
			t.Fatalf("node %d holds a key whose main position %d does not chain to it", i, mp)
		}
	}
}

// Deleting a collectable-keyed entry converts its key to a dead key
// in place; Next must still be able to resume iteration from it, and
// setting the same key again must reuse ordinary insertion (not crash
// on the dead tag).
func TestDeleteThenReinsert(t *testing.T) {
	tb, _ := newTestTable(t)
	interned := tb.intern

	k1 := str(interned, "alpha")
	k2 := str(interned, "beta")
	if err := tb.SetValue(k1, num(1)); err != nil {
		t.Fatalf("SetValue(alpha): %v", err)
	}
	if err := tb.SetValue(k2, num(2)); err != nil {
		t.Fatalf("SetValue(beta): %v", err)
	}

	// Delete alpha (set nil): idempotent, and findable no longer.
	if err := tb.SetValue(k1, nilValue); err != nil {
		t.Fatalf("delete alpha: %v", err)
	}
	if err := tb.SetValue(k1, nilValue); err != nil {
		t.Fatalf("delete alpha again: %v", err)
	}
	if got := tb.Get(k1); !ltcore.IsNil(got) {
		t.Fatalf("Get(alpha) after delete = %v, want nil", got)
	}

	// Next must still accept the deleted (now dead) key and step past it.
	if _, _, _, err := tb.Next(k1); err != nil {
		t.Fatalf("Next(alpha) after delete: %v", err)
	}

	// beta must still be reachable and iterable.
	nk, nv, ok, err := tb.Next(nilValue)
	if err != nil {
		t.Fatalf("Next(nil): %v", err)
	}
	foundBeta := false
	for ok {
		if ltcore.RawEqual(nk, k2) {
			foundBeta = true
			if ltcore.Number(nv) != 2 {
				t.Fatalf("beta value = %v, want 2", nv)
			}
		}
		nk, nv, ok, err = tb.Next(nk)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if !foundBeta {
		t.Fatalf("beta missing from iteration after alpha was deleted")
	}

	// Reinsert alpha with a new value; must succeed via ordinary insert.
	if err := tb.SetValue(k1, num(99)); err != nil {
		t.Fatalf("reinsert alpha: %v", err)
	}
	got := tb.Get(k1)
	if ltcore.TypeOf(got) != ltcore.KindNumber || ltcore.Number(got) != 99 {
		t.Fatalf("Get(alpha) after reinsert = %v, want 99", got)
	}
}

// Array and hash growth is charged by actually calling Realloc against a
// parallel ballast buffer (see rehash.go's setArrayVector/setNodeVector),
// rather than bypassing the allocator's failure path the way a thread's
// value stack does via mem.Allocator.ChargeBytes — so GCDebt/TotalBytes
// must still track every size change precisely, the same contract a
// direct Realloc caller gets (§4.A).
func TestRehashAccountsGCDebtViaRealloc(t *testing.T) {
	tb, a := newTestTable(t)
	before := a.GCDebt
	for i := 1; i <= 32; i++ {
		if err := tb.SetInt(i, num(float64(i))); err != nil {
			t.Fatalf("SetInt(%d): %v", i, err)
		}
	}
	if a.GCDebt <= before {
		t.Fatalf("GCDebt did not grow across 32 inserts: before=%d after=%d", before, a.GCDebt)
	}
	wantBytes := int64(len(tb.Array)*valueSize + len(tb.Node)*nodeSize)
	if a.TotalBytes != wantBytes {
		t.Fatalf("TotalBytes = %d, want %d (array %d * %d + hash %d * %d)",
			a.TotalBytes, wantBytes, len(tb.Array), valueSize, len(tb.Node), nodeSize)
	}
}

// S5: install a failing allocator that rejects any growth past a fixed
// byte budget. Insert keys until that failure surfaces, then assert every
// key inserted before the failure is still queryable, at its original
// value, and that the budget-exceeding key was never silently duplicated
// or half-applied (§8 "Rehash under allocation pressure").
func TestScenarioS5RehashUnderAllocationPressure(t *testing.T) {
	// 12 array elements' worth of headroom: enough for the array part to
	// grow through sizes 1, 2, 4, 8 (all well within budget) and then
	// fail when a later insert demands the jump to 16.
	budget := int64(12 * valueSize)
	var used int64
	failing := func(_ interface{}, block []byte, newSize int) ([]byte, error) {
		grow := int64(newSize - len(block))
		if grow > 0 && used+grow > budget {
			return nil, errors.New("fail: allocator budget exceeded")
		}
		nb := make([]byte, newSize)
		copy(nb, block)
		used += grow
		return nb, nil
	}
	a := mem.New(failing, nil, nil)
	tb := New(a, intern.NewTable(0))

	inserted := map[int]float64{}
	var failedAt int
	for i := 1; i <= 10000; i++ {
		if err := tb.SetInt(i, num(float64(i))); err != nil {
			failedAt = i
			break
		}
		inserted[i] = float64(i)
	}
	if failedAt == 0 {
		t.Fatalf("expected the failing allocator to reject an insert within 10000 keys")
	}
	if len(inserted) == 0 {
		t.Fatalf("no keys were inserted before the allocator started failing")
	}

	// The key whose insert failed must not be visible (no half-applied
	// insert) ...
	if got := tb.GetInt(failedAt); !ltcore.IsNil(got) {
		t.Fatalf("GetInt(%d) = %v after its own insert failed, want nil", failedAt, got)
	}
	// ... and every key inserted before the failure must still read back
	// exactly its original value (still queryable, nothing duplicated).
	for k, want := range inserted {
		got := tb.GetInt(k)
		if ltcore.TypeOf(got) != ltcore.KindNumber || ltcore.Number(got) != want {
			t.Fatalf("GetInt(%d) = %v after allocation failure at key %d, want %v", k, got, failedAt, want)
		}
	}

	// A later insert that fits back within budget (nothing freed here, so
	// it won't) is not required to succeed; what matters is that the table
	// itself is not left corrupt. Re-reading the whole table via Next must
	// terminate and visit exactly len(inserted) live entries.
	count := 0
	k, _, ok, err := tb.Next(nilValue)
	for ok {
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		count++
		k, _, ok, err = tb.Next(k)
	}
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if count != len(inserted) {
		t.Fatalf("Next visited %d entries, want %d (table corrupted by the allocation failure)", count, len(inserted))
	}
}
