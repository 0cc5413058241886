// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ltcore

// Mark colors/fixed bits kept in Header.Marked. The incremental collector
// that consumes these bits is out of scope here; the core only guarantees
// the field exists and is never touched except through these constants.
const (
	MarkWhite0 = 1 << iota // one of the two rotating white colors
	MarkWhite1
	MarkBlack
	MarkGray // gray color bit; nothing in this module sets or reads it
	MarkFixed
	MarkOld // not revisited by generational passes
)

// WhiteBits is the mask of both white colors; an object is "white" (dead,
// pending collection) iff Marked&WhiteBits != 0.
const WhiteBits = MarkWhite0 | MarkWhite1

// Header is the collectable object header. It MUST be the first field of
// every heap-allocated collectable type so that a Collectable's Head can be
// walked uniformly by an external GC — expressed here as embedding plus
// method promotion rather than raw offset arithmetic.
type Header struct {
	Next   Collectable // intrusive link on the global all-objects list
	Tag    Tag         // same kind space as Value tags
	Marked uint8       // GC color / fixed bits, see Mark* above
}

// Head implements Collectable. Embedding Header in a collectable type
// promotes this method, giving that type a uniform Head() for free.
func (h *Header) Head() *Header { return h }

// IsFixed reports whether the object is pinned non-collectable for the
// lifetime of the runtime (see Fix in package intern).
func (h *Header) IsFixed() bool { return h.Marked&MarkFixed != 0 }

// IsWhite reports whether the object is currently unreachable from the
// collector's point of view.
func (h *Header) IsWhite() bool { return h.Marked&WhiteBits != 0 }

// Collectable is implemented by every heap object the GC traces: strings,
// tables, userdata, threads, protos, closures and upvalues.
type Collectable interface {
	Head() *Header
}
