// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import "github.com/cznic/ltcore"

// GoFunction is a native (non-interpreted) callee: it runs to completion
// without yielding and returns however many results it pushed onto the
// stack starting at base. A bytecode interpreter would have its own
// callee kind ("resume in interpreter", §4.F); this package only defines
// the frame bookkeeping, not the interpreter loop itself.
type GoFunction func(th *Thread, base int) (nresults int, err error)

// PreCall sets up a new frame for calling the value at stack index
// funcIndex and returns it (§4.F "Entry and return"). The callee's
// arguments are already on the stack, funcIndex+1..Top-1. PreCall makes
// sure the stack has room for nResults more slots (CheckStack) but does
// not move th.Top: the frame's Top is th.Top at the time of the call.
// There is no per-callee maximum stack size to reserve.
func (th *Thread) PreCall(funcIndex, nResults int) (*CallInfo, error) {
	if err := th.CheckStack(nResults); err != nil {
		return nil, err
	}
	ci := th.ci.nextFrame()
	ci.Func = funcIndex
	ci.Base = funcIndex + 1
	ci.Top = th.Top
	ci.NResults = nResults
	ci.Status = 0
	th.ci = ci
	return ci, nil
}

// PostCall adjusts the frame's actual result count to match NResults
// (padding with nil, truncating extras) and pops the frame, restoring
// th.ci to the previous frame (§4.F "Postcall adjusts returned values").
// firstResult is the stack index of the first value the callee produced;
// it returns the new stack top.
func (th *Thread) PostCall(ci *CallInfo, firstResult, nActual int) int {
	want := ci.NResults
	src := firstResult
	dst := ci.Func
	n := nActual
	if want >= 0 && n > want {
		n = want
	}
	for i := 0; i < n; i++ {
		th.Stack[dst+i] = th.Stack[src+i]
	}
	if want < 0 {
		want = n
	}
	for i := n; i < want; i++ {
		ltcore.SetNil(&th.Stack[dst+i])
	}
	th.ci = ci.Previous
	th.Top = dst + want
	return th.Top
}

// Call invokes fn with nArgs arguments already pushed on the stack,
// requesting nResults results (-1 for "all"). It is the one-shot
// PreCall+invoke+PostCall sequence a host uses for a native callee; an
// interpreted callee instead loops PreCall/dispatch/PostCall itself.
func (th *Thread) Call(fn GoFunction, nArgs, nResults int) error {
	funcIndex := th.Top - nArgs - 1
	ci, err := th.PreCall(funcIndex, nResults)
	if err != nil {
		return err
	}
	n, err := fn(th, ci.Base)
	if err != nil {
		return err
	}
	th.PostCall(ci, ci.Base, n)
	return nil
}
