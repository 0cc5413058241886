// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import "github.com/cznic/ltcore/mem"

// Raise unwinds to the nearest enclosing ProtectedCall/RawRunProtected by
// panicking with err. It is the idiomatic Go analogue of the C core's
// longjmp to the installed error-jump point (§4.F) — the one place this
// package uses panic as control flow rather than a Go error return,
// reserved for code several calls deep that has no error-returning path
// back to its ProtectedCall caller (e.g. a metamethod invoked from inside
// a table operation).
func Raise(err error) {
	if err == nil {
		return
	}
	panic(err)
}

// RawRunProtected invokes f and converts any panic it raises via Raise
// into a returned error, without touching thread state — no saved
// top/ci/nny to restore (§4.F "a raw protected runner performs the same
// without stack healing, used for bootstrapping"). It panics through
// anything that isn't an error (a genuine programming-error panic, not an
// intentional Raise).
func RawRunProtected(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = rerr
		}
	}()
	return f()
}

// ProtectedCall saves (Top, ci, nny, errFunc), runs f, and on error
// unwinds to the saved state: restores Top/ci/nny/errFunc and closes any
// upvalue opened above the saved Top (§4.F "Protected call"). errFunc is
// the stack index of an error-message handler (0 for none) and is stored
// so a nested Raise can look it up; this package does not itself invoke
// it; that is a host/interpreter concern.
func (th *Thread) ProtectedCall(errFunc int, f func(th *Thread) error) (status Status, err error) {
	savedTop := th.Top
	savedCI := th.ci
	savedNNY := th.nny
	savedErrFunc := th.errFunc

	err = RawRunProtected(func() error { return f(th) })
	if err == nil {
		return OK, nil
	}

	status = statusOf(err)
	th.Top = savedTop
	th.ci = savedCI
	th.nny = savedNNY
	th.errFunc = savedErrFunc
	th.closeUpvalues(savedTop)
	th.status = status
	return status, err
}

// statusOf classifies err into one of the six core error codes (§6).
func statusOf(err error) Status {
	switch e := err.(type) {
	case *RuntimeError:
		return e.Status
	case *mem.ErrMEM:
		return ErrMem
	case *mem.ErrTooMany, *mem.ErrSize:
		return ErrRun
	default:
		return ErrRun
	}
}
