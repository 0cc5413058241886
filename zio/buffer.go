// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zio

import "github.com/cznic/ltcore/mem"

// MinBufferSize is the chunk size NewFileSource uses when none is given.
// Buffer does not use it: Buffer always allocates whole pages of pgSize
// bytes.
const MinBufferSize = 32

const (
	pgBits = 8
	pgSize = 1 << pgBits
	pgMask = pgSize - 1
)

// Buffer is a growable byte accumulator used to assemble a token's text
// while the lexer scans it. Storage is paged, the same discipline
// lldb.MemFiler uses for its sparse address space, but every page here is
// allocated and freed through a mem.Allocator so token-buffer growth is
// visible to the collector's GCDebt accounting the same way any other
// core allocation is.
type Buffer struct {
	alloc *mem.Allocator
	pages map[int][]byte
	n     int // number of bytes logically appended
}

// NewBuffer returns an empty Buffer backed by alloc.
func NewBuffer(alloc *mem.Allocator) *Buffer {
	return &Buffer{alloc: alloc, pages: map[int][]byte{}}
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return b.n }

// Reset empties the buffer, freeing every page back through the
// allocator.
func (b *Buffer) Reset() {
	for pg, p := range b.pages {
		b.alloc.Free("zio.Buffer", p)
		delete(b.pages, pg)
	}
	b.n = 0
}

// page returns (allocating through alloc if necessary) the backing page
// for byte offset off, along with the in-page offset.
func (b *Buffer) page(off int) (page []byte, pgOff int, err error) {
	pgI := off >> pgBits
	pgOff = off & pgMask
	p, ok := b.pages[pgI]
	if !ok {
		p, err = b.alloc.Realloc("zio.Buffer", nil, pgSize)
		if err != nil {
			return nil, 0, err
		}
		b.pages[pgI] = p
	}
	return p, pgOff, nil
}

// AddByte appends a single byte.
func (b *Buffer) AddByte(c byte) error {
	p, off, err := b.page(b.n)
	if err != nil {
		return err
	}
	p[off] = c
	b.n++
	return nil
}

// Write appends p in full, growing as many pages as required.
func (b *Buffer) Write(p []byte) error {
	for len(p) != 0 {
		page, off, err := b.page(b.n)
		if err != nil {
			return err
		}
		c := copy(page[off:], p)
		p = p[c:]
		b.n += c
	}
	return nil
}

// Bytes returns the buffer's content as a single contiguous slice,
// assembled from whatever pages currently back it. The returned slice is
// a copy; callers may retain it past the next Reset.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, b.n)
	for i := 0; i < b.n; {
		pgI := i >> pgBits
		pgOff := i & pgMask
		p := b.pages[pgI]
		c := copy(out[i:], p[pgOff:])
		i += c
	}
	return out
}

// String is a convenience wrapper around Bytes for diagnostics and
// short-string interning lookups.
func (b *Buffer) String() string { return string(b.Bytes()) }
