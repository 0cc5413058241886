// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"testing"
	"unsafe"

	"github.com/cznic/ltcore"
	"github.com/cznic/ltcore/table"
)

var nodeSize = int(unsafe.Sizeof(table.Node{}))

func newTestGlobal(t *testing.T) *GlobalState {
	t.Helper()
	g, err := New(&Options{InitialStackSize: 8, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// Property #9: after CheckStack grows the stack, every index saved
// beforehand still resolves to the same logical value and frame.
func TestCheckStackRelocationSafety(t *testing.T) {
	g := newTestGlobal(t)
	th := g.MainThread

	savedTop := th.Top
	var v ltcore.Value
	ltcore.SetNumber(&v, 7)
	if err := th.PushValue(v); err != nil {
		t.Fatalf("PushValue: %v", err)
	}
	idx := th.Top - 1

	oldCap := len(th.Stack)
	if err := th.CheckStack(1 << 16); err != nil {
		t.Fatalf("CheckStack: %v", err)
	}
	if len(th.Stack) <= oldCap {
		t.Fatalf("stack did not grow: old=%d new=%d", oldCap, len(th.Stack))
	}

	got := th.Stack[idx]
	if ltcore.TypeOf(got) != ltcore.KindNumber || ltcore.Number(got) != 7 {
		t.Fatalf("value at saved index %d = %v after relocation, want 7", idx, got)
	}
	if th.Top-1 != idx {
		t.Fatalf("Top moved relative to saved index: Top=%d idx=%d", th.Top, idx)
	}
	if savedTop+1 != th.Top {
		t.Fatalf("Top inconsistent with the one push performed")
	}
}

// S6: inside a protected call, grow the stack, open an upvalue above the
// saved top, then raise an error. On return: Top is restored, the ci
// chain is restored, and no open upvalue above the saved top survives.
func TestScenarioS6ProtectedCallErrorRecovery(t *testing.T) {
	g := newTestGlobal(t)
	th := g.MainThread

	savedTop := th.Top
	savedCI := th.ci

	status, err := th.ProtectedCall(0, func(th *Thread) error {
		if _, perr := th.PreCall(th.Top, -1); perr != nil {
			return perr
		}
		if perr := th.CheckStack(64); perr != nil {
			return perr
		}
		var v ltcore.Value
		ltcore.SetNumber(&v, 1)
		if perr := th.PushValue(v); perr != nil {
			return perr
		}
		th.trackOpenUpvalue(th.Top - 1)
		return NewRuntimeError("boom")
	})

	if status != ErrRun {
		t.Fatalf("status = %v, want ErrRun", status)
	}
	if err == nil || err.Error() != "boom" {
		t.Fatalf("err = %v, want \"boom\"", err)
	}
	if th.Top != savedTop {
		t.Fatalf("Top = %d after recovery, want %d", th.Top, savedTop)
	}
	if th.ci != savedCI {
		t.Fatalf("ci chain not restored to saved frame")
	}
	if n := th.OpenUpvalueCount(savedTop); n != 0 {
		t.Fatalf("%d open upvalues leaked above the saved top", n)
	}
}

// Property #10: TotalBytes + GCDebt equals the sum of all live block
// sizes at a quiescent point (no operation in flight). Exercised across
// construction, some registry/stack growth, and teardown (where the sum
// must return to exactly zero).
func TestGCAccountingQuiescent(t *testing.T) {
	g := newTestGlobal(t)
	th := g.MainThread

	for i := 1; i <= 40; i++ {
		var v ltcore.Value
		ltcore.SetNumber(&v, float64(i))
		if err := g.Globals.SetInt(i, v); err != nil {
			t.Fatalf("SetInt(%d): %v", i, err)
		}
	}

	live := int64(len(th.Stack)*valueSize) +
		int64(len(g.Registry.Array)*valueSize+len(g.Registry.Node)*nodeSize) +
		int64(len(g.Globals.Array)*valueSize+len(g.Globals.Node)*nodeSize)

	if got := g.Alloc.TotalBytes + g.Alloc.GCDebt; got != live {
		t.Fatalf("TotalBytes+GCDebt = %d, want %d (sum of live blocks)", got, live)
	}

	if err := g.Teardown(); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
	if g.Alloc.TotalBytes != 0 {
		t.Fatalf("TotalBytes after Teardown = %d, want 0", g.Alloc.TotalBytes)
	}
}
