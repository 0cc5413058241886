// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package state implements the thread/call-stack and global-state layer
// (§4.F, §4.G): the value stack, the CallInfo chain, protected calls,
// cooperative yield/resume, and the construction/teardown sequence that
// ties a runtime's threads to one shared GlobalState.
package state

import "fmt"

// Status is OK or one of the six non-OK codes the core surfaces to the
// host unchanged (§6 "External interfaces").
type Status int

const (
	OK Status = iota
	Yield
	ErrRun
	ErrSyntax
	ErrMem
	ErrGCMM
	ErrErr
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Yield:
		return "yield"
	case ErrRun:
		return "runtime error"
	case ErrSyntax:
		return "syntax error"
	case ErrMem:
		return "memory error"
	case ErrGCMM:
		return "error in garbage-collector finalizer"
	case ErrErr:
		return "error in error handler"
	default:
		return fmt.Sprintf("state.Status(%d)", int(s))
	}
}

// RuntimeError is a runtime-category error (§7): bad operand, type
// mismatch, or a core invariant violation such as "table index is nil".
// It carries the Status it should be reported as, which is ErrRun unless
// the error originated inside an error handler itself (ErrErr).
type RuntimeError struct {
	Status  Status
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError is the common constructor for ordinary (non-memory,
// non-handler-nested) runtime errors.
func NewRuntimeError(format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Status: ErrRun, Message: fmt.Sprintf(format, args...)}
}
