// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

// CallStatus bits describe a CallInfo frame's nature and current state
// (§4.F "status bits").
type CallStatus uint8

const (
	CallStatusLua      CallStatus = 1 << iota // interpreted frame (reserved for the bytecode interpreter, not implemented here)
	CallStatusHooked                          // a hook ran for this call
	CallStatusTail                            // tail call, no extra frame was pushed
	CallStatusYielded                         // this frame yielded and is suspended
	CallStatusReentry                         // frame re-entered by Resume
)

// CallInfo is one activation record (§4.F "Call frame"). Frames form a
// doubly linked chain rooted at Thread.baseCI; a frame is never freed on
// return, only unlinked from the active chain and left attached via Next
// for the following call to reuse — the same free-list discipline the
// teacher's lldb.flt applies to freed file blocks instead of returning
// them to the allocator.
type CallInfo struct {
	Func     int // stack index of the callee value
	Base     int // stack index of the first argument/local
	Top      int // stack high-water mark reserved for this frame
	NResults int // number of results the caller wants (-1 means "all")
	Status   CallStatus

	// SavedPC is meaningful only for CallStatusLua frames; it is carried
	// here so a future bytecode interpreter has somewhere to resume, but
	// nothing in this package interprets it.
	SavedPC int

	Previous *CallInfo
	Next     *CallInfo
}

// nextFrame returns the frame following ci in the chain, allocating and
// linking a fresh one if ci has never been extended this deep before.
func (ci *CallInfo) nextFrame() *CallInfo {
	if ci.Next == nil {
		n := &CallInfo{Previous: ci}
		ci.Next = n
	}
	return ci.Next
}
