// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zio

import "testing"

func TestCompressedReaderRoundTrip(t *testing.T) {
	const text = "local x = 1\nreturn x + 1\n"

	compressed, err := NewCompressingWriter([]byte(text))
	if err != nil {
		t.Fatalf("NewCompressingWriter: %v", err)
	}

	z := NewStream("compressed", NewCompressedReader(chunkReader(string(compressed))), nil)
	buf := make([]byte, len(text))
	missing, err := z.Read(buf, len(text))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if missing != 0 {
		t.Fatalf("missing = %d, want 0", missing)
	}
	if string(buf) != text {
		t.Fatalf("got %q, want %q", buf, text)
	}
}
