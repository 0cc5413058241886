// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package intern implements the string interning contract §4.D requires
// of the core but does not itself prescribe an implementation for:
// InternShort canonicalizes short strings so pointer equality implies
// content equality, HashLong computes the seeded hash long strings cache
// lazily, and Fix marks a string non-collectable for pre-built constants
// such as the out-of-memory error message.
//
// Table is owned by exactly one GlobalState and, like lldb.Filer, assumes
// a single caller — the runtime's cooperative single-threaded model (§5)
// means no internal locking is needed.
package intern
