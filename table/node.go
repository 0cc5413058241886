// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "github.com/cznic/ltcore"

// noNext marks the end of a collision chain. Using -1 rather than a
// sentinel node lets the chain survive a Node-slice reallocation: an
// index is still valid after growth, where a raw *Node into the old
// backing array would not be.
const noNext = -1

// Node is one hash-part slot: a (key, value) pair plus the index of the
// next node in its collision chain.
type Node struct {
	Key  ltcore.Value
	Val  ltcore.Value
	next int
}
