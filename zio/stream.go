// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zio

// EOZ is the end-of-stream sentinel returned by GetByte. It is never a
// valid byte value: bytes are widened to int32 on the way out specifically
// so -1 cannot collide with any byte 0..255.
const EOZ int32 = -1

// Reader is the host-supplied chunk source (§6 "Reader plug-in"): given
// its opaque user data, it returns the next chunk of input, or a nil slice
// (with a nil error) to signal end of input. Chunks need not be any
// particular size; the zero-length non-nil slice is treated the same as a
// chunk and simply triggers another call on the next byte request.
type Reader func(ud interface{}) ([]byte, error)

// Stream is a pull-based byte source. It has no pushback operation: a byte
// once returned cannot be given back, so callers needing look-ahead keep
// their own Buffer. It runs with no
// internal locking: a Stream belongs to exactly one Thread at a time, and
// the owning GlobalState macro lock (§5) is released for the duration of
// the Reader call so the callback may block on real I/O.
type Stream struct {
	read Reader
	ud   interface{}
	buf  []byte
	pos  int
	eof  bool
	name string
}

// NewStream returns a Stream drawing chunks from read(ud). name is used
// only for diagnostics (it becomes part of a ChunkID elsewhere).
func NewStream(name string, read Reader, ud interface{}) *Stream {
	return &Stream{read: read, ud: ud, name: name}
}

// Name returns the stream's diagnostic name.
func (z *Stream) Name() string { return z.name }

// fill requests the next chunk from the Reader plug-in. It is a no-op once
// EOF has been observed.
func (z *Stream) fill() error {
	if z.eof {
		return nil
	}
	b, err := z.read(z.ud)
	if err != nil {
		return err
	}
	if b == nil {
		z.eof = true
		z.buf = nil
		z.pos = 0
		return nil
	}
	z.buf = b
	z.pos = 0
	return nil
}

// GetByte returns the next byte of input, or EOZ once the Reader plug-in
// has signalled end of input. Once EOZ has been returned the Stream keeps
// returning EOZ; it never re-invokes the Reader.
func (z *Stream) GetByte() (int32, error) {
	for z.pos >= len(z.buf) {
		if z.eof {
			return EOZ, nil
		}
		if err := z.fill(); err != nil {
			return EOZ, err
		}
	}
	b := z.buf[z.pos]
	z.pos++
	return int32(b), nil
}

// Read fills dst[:n] from the stream, pulling further chunks from the
// Reader plug-in as needed, and returns the number of bytes it was unable
// to deliver (0 on full success, as in the classic zio contract — it is
// not an io.Reader, deliberately: partial reads at EOF are the caller's
// problem to detect via a non-zero return, not via io.EOF bookkeeping).
func (z *Stream) Read(dst []byte, n int) (missing int, err error) {
	got := 0
	for got < n {
		for z.pos >= len(z.buf) {
			if z.eof {
				return n - got, nil
			}
			if err := z.fill(); err != nil {
				return n - got, err
			}
		}
		c := copy(dst[got:n], z.buf[z.pos:])
		z.pos += c
		got += c
	}
	return 0, nil
}
