// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"unsafe"

	"github.com/cznic/ltcore"
	"github.com/cznic/mathutil"
	"github.com/cznic/sortutil"
)

const (
	// basicStackSize is the value stack's starting element count, chosen
	// to cover a handful of nested calls without a first growth.
	basicStackSize = 40

	// extraStack reserves a tail of stackLast..cap for metatable calls
	// and error handling that must run even when the visible stack is
	// already at its limit (§4.F "stackLast = stack + capacity -
	// EXTRA_STACK").
	extraStack = 5

	// maxStack bounds how large the value stack may ever grow.
	maxStack = 1 << 20
)

var valueSize = int(unsafe.Sizeof(ltcore.Value{}))

// Thread is one coroutine: a value stack, the CallInfo chain, open
// upvalues, and suspension/error-recovery state (§4.F). Thread.Head is
// the collectable header every heap object carries; a Thread is itself a
// first-class value the registry and other tables can hold a reference
// to (registry slot 1 is the main thread, §6).
type Thread struct {
	ltcore.Header

	Global *GlobalState

	Stack      []ltcore.Value
	Top        int // index of the first free slot
	stackLast  int // Top must never reach this without a CheckStack first

	baseCI CallInfo // chain head, embedded so it needs no separate alloc
	ci     *CallInfo

	// openUpvals holds the stack index of every upvalue still pointing
	// into this thread's stack, sorted ascending. Indices survive a
	// CheckStack relocation untouched (§9 "Stack relocation vs. interior
	// pointers") — the whole reason this is a slice of int and not a
	// slice of pointers into Stack.
	openUpvals []int

	nny     int // count of non-yieldable frames above the current one
	status  Status
	errFunc int // stack index of the active protected call's error handler, 0 for none

	hook     Hook
	hookMask HookMask
}

// Hook is called at configured instruction/call/return boundaries. A
// bytecode interpreter is out of this package's scope, so nothing here
// invokes Hook itself; it is stored so a future interpreter loop can.
type Hook func(th *Thread, event HookEvent)

// HookEvent names why a hook fired.
type HookEvent int

const (
	HookCall HookEvent = iota
	HookReturn
	HookLine
	HookCount
	HookTailCall
)

// HookMask selects which HookEvents are enabled.
type HookMask uint8

const (
	HookMaskCall HookMask = 1 << iota
	HookMaskReturn
	HookMaskLine
	HookMaskCount
)

// newThread allocates a Thread with its initial stack, charging the
// allocation to g's allocator. It does not link the thread into any
// registry; callers do that (GlobalState construction links the main
// thread itself).
func newThread(g *GlobalState, stackSize int) *Thread {
	if stackSize <= 0 {
		stackSize = basicStackSize
	}
	th := &Thread{Global: g, status: OK}
	th.Tag = ltcore.TagThread
	th.ci = &th.baseCI
	th.growStack(stackSize)
	return th
}

// growStack grows the value stack to a total capacity of newCap slots (a
// no-op if it already has that many), relocating the backing array and
// moving stackLast to newCap-extraStack. Every CallInfo.Func/Base/Top
// field and every openUpvals entry is an *index* into Stack, so relocation
// never needs to rewrite them (§9) — only the slice header changes.
func (th *Thread) growStack(newCap int) {
	old := len(th.Stack)
	if newCap <= old {
		return
	}
	ns := make([]ltcore.Value, newCap)
	copy(ns, th.Stack)
	th.Stack = ns
	th.stackLast = newCap - extraStack
	if th.Global != nil {
		th.Global.Alloc.ChargeBytes(old*valueSize, newCap*valueSize)
	}
}

// CheckStack ensures at least n free slots above Top, growing the stack
// (doubling, capped at maxStack) if necessary (§4.F "checkStack(n)").
func (th *Thread) CheckStack(n int) error {
	if th.stackLast-th.Top > n {
		return nil
	}
	need := th.Top + n + extraStack
	newCap := mathutil.Max(len(th.Stack)*2, need)
	if newCap > maxStack {
		if need > maxStack {
			return &RuntimeError{Status: ErrRun, Message: "stack overflow"}
		}
		newCap = maxStack
	}
	th.growStack(newCap)
	return nil
}

// PushValue pushes v onto the stack, growing it first if needed.
func (th *Thread) PushValue(v ltcore.Value) error {
	if err := th.CheckStack(1); err != nil {
		return err
	}
	th.Stack[th.Top] = v
	th.Top++
	return nil
}

// closeUpvalues closes (drops tracking of) every open upvalue at or above
// stack index level, as a protected-call unwind or a scope exit requires
// (§4.F "Protected call... closes any open upvalues above the saved
// top").
func (th *Thread) closeUpvalues(level int) {
	i := len(th.openUpvals)
	for i > 0 && th.openUpvals[i-1] >= level {
		i--
	}
	th.openUpvals = th.openUpvals[:i]
}

// trackOpenUpvalue records that the stack slot at index is now referenced
// by an open upvalue. Upvalues are usually opened in ascending stack
// order (a Lua frame's locals are allocated bottom-up), but a coroutine
// interleaving two frames can open them out of order, so the list is
// re-sorted on insert rather than assumed sorted — closeUpvalues relies
// on ascending order to trim its suffix in one pass.
func (th *Thread) trackOpenUpvalue(index int) {
	th.openUpvals = append(th.openUpvals, index)
	asInt64 := make(sortutil.Int64Slice, len(th.openUpvals))
	for i, v := range th.openUpvals {
		asInt64[i] = int64(v)
	}
	asInt64.Sort()
	for i, v := range asInt64 {
		th.openUpvals[i] = int(v)
	}
}

// OpenUpvalueCount reports how many upvalues are currently open above (or
// at) level — used by tests asserting S6's "no leaked open upvalues"
// property.
func (th *Thread) OpenUpvalueCount(level int) int {
	n := 0
	for _, idx := range th.openUpvals {
		if idx >= level {
			n++
		}
	}
	return n
}

// Status reports the thread's current suspend/error status.
func (th *Thread) Status() Status { return th.status }
