// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

// Yield suspends th, marking nResults values starting at Top-nResults as
// the values to hand back to Resume's caller. It fails with a runtime
// error if called from a non-yieldable context: nny counts frames above
// the current one that declared themselves non-yieldable (native calls
// that did not ask to be continuable), and yielding through one of them
// would lose its native call stack (§4.F "Cooperative suspension").
func (th *Thread) Yield(nResults int) error {
	if th.nny > 0 {
		return &RuntimeError{Status: ErrRun, Message: "attempt to yield from outside a coroutine"}
	}
	// The nResults values are already in place at Top-nResults; yielding
	// only needs to record status, not move anything.
	th.status = Yield
	th.ci.Status |= CallStatusYielded
	return nil
}

// Resume restores a yielded thread to OK and marks the frame it yielded
// from as re-entered, so the caller (an interpreter loop, out of this
// package's scope) knows to continue rather than start a fresh call.
func (th *Thread) Resume() error {
	if th.status != Yield {
		return &RuntimeError{Status: ErrRun, Message: "cannot resume non-suspended coroutine"}
	}
	th.ci.Status &^= CallStatusYielded
	th.ci.Status |= CallStatusReentry
	th.status = OK
	return nil
}

// EnterNonYieldable marks the current frame as unable to yield through,
// incrementing nny for the duration of a native call that does not
// support continuation. Callers pair it with a deferred LeaveNonYieldable.
func (th *Thread) EnterNonYieldable() { th.nny++ }

// LeaveNonYieldable reverses EnterNonYieldable.
func (th *Thread) LeaveNonYieldable() { th.nny-- }
