// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ltcore_debug

package ltcore

// assertLive panics if h belongs to an object already dead from the
// collector's point of view. Built only under -tags ltcore_debug, the same
// way the teacher reaches for a plain panic("internal error") rather than
// a dedicated assertion library for "should never happen" conditions.
func assertLive(h *Header) {
	if h.IsWhite() && h.Marked&MarkFixed == 0 {
		panic("ltcore: SetCollectable on a dead object")
	}
}
