// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mem implements the single choke point for every allocation,
// reallocation and free in the runtime core: the Allocator wraps a
// host-supplied ReallocFunc, enforces the "shrink/equal-size never fails"
// contract, retries a failed growth once through an emergency full
// collection, and accounts every size change into a signed GCDebt counter
// — the sole signal driving incremental collection.
//
// This mirrors the single-abstraction discipline of the teacher's
// lldb.Filer: one small interface, several possible backings, every caller
// going through it rather than touching storage directly.
package mem
