// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zio

import (
	"os"

	"github.com/cznic/fileutil"
)

// FileSource is an os.File backed Reader plug-in for scripts large enough
// that spooling them through a temp file beats holding the whole source in
// memory. It reads the file in fixed-size chunks and, on Close, punches a
// hole over the region it has already consumed — the same
// SimpleFileFiler.PunchHole discipline the teacher uses to let a sparse
// filesystem reclaim space under a shrinking or scratch file, applied here
// to a one-shot streaming read instead of a random-access store.
type FileSource struct {
	f       *os.File
	off     int64
	size    int64
	chunk   int
	punched int64
}

// NewFileSource opens path and returns a FileSource reading it in chunkSize
// byte pieces (MinBufferSize if chunkSize <= 0).
func NewFileSource(path string, chunkSize int) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = MinBufferSize
	}
	return &FileSource{f: f, size: fi.Size(), chunk: chunkSize}, nil
}

// Read is a Reader plug-in function: bind it with a closure, e.g.
//
//	src, _ := NewFileSource(path, 0)
//	s := NewStream(path, src.Read, nil)
func (s *FileSource) Read(_ interface{}) ([]byte, error) {
	if s.off >= s.size {
		return nil, nil
	}
	n := int64(s.chunk)
	if s.off+n > s.size {
		n = s.size - s.off
	}
	b := make([]byte, n)
	if _, err := s.f.ReadAt(b, s.off); err != nil {
		return nil, err
	}

	// Punch a hole over the spans delivered by earlier calls (everything
	// before this chunk's offset); the chunk being returned now is punched
	// by a later Read or by Close. A best-effort reclaim, errors are not
	// fatal to scanning.
	if s.off > s.punched {
		if err := fileutil.PunchHole(s.f, s.punched, s.off-s.punched); err == nil {
			s.punched = s.off
		}
	}

	s.off += n
	return b, nil
}

// Close punches the remaining consumed span and closes the backing file.
func (s *FileSource) Close() error {
	if s.off > s.punched {
		fileutil.PunchHole(s.f, s.punched, s.off-s.punched)
		s.punched = s.off
	}
	return s.f.Close()
}
