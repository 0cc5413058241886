// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zio

import "github.com/cznic/zappy"

// NewCompressedReader wraps inner so each chunk it returns is first
// zappy-decoded. It lets a host store source chunks (e.g. a precompiled
// script bundle read chunk-by-chunk from disk via FileSource) compressed
// at rest, without Stream itself knowing anything changed — the contract
// with Stream ("return the next chunk, or nil/EOF") is unaffected.
func NewCompressedReader(inner Reader) Reader {
	return func(ud interface{}) ([]byte, error) {
		chunk, err := inner(ud)
		if err != nil || chunk == nil {
			return chunk, err
		}
		return zappy.Decode(nil, chunk)
	}
}

// NewCompressingWriter compresses p with zappy before returning it,
// letting a host write the same chunked-and-compressed layout
// NewCompressedReader expects to read back.
func NewCompressingWriter(p []byte) ([]byte, error) {
	return zappy.Encode(nil, p)
}
