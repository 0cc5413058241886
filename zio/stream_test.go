// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zio

import "testing"

// chunkReader replays a fixed sequence of chunks, then reports EOF.
func chunkReader(chunks ...string) Reader {
	i := 0
	return func(_ interface{}) ([]byte, error) {
		if i >= len(chunks) {
			return nil, nil
		}
		c := chunks[i]
		i++
		return []byte(c), nil
	}
}

func TestStreamScenarioS7(t *testing.T) {
	z := NewStream("s7", chunkReader("abc", "de"), nil)

	buf := make([]byte, 4)
	missing, err := z.Read(buf, 4)
	if err != nil {
		t.Fatal(err)
	}
	if missing != 0 {
		t.Fatalf("got missing %d, exp 0", missing)
	}
	if string(buf) != "abcd" {
		t.Fatalf("got %q, exp %q", buf, "abcd")
	}

	b, err := z.GetByte()
	if err != nil {
		t.Fatal(err)
	}
	if b != 'e' {
		t.Fatalf("got %c, exp 'e'", b)
	}

	b, err = z.GetByte()
	if err != nil {
		t.Fatal(err)
	}
	if b != EOZ {
		t.Fatalf("got %d, exp EOZ", b)
	}

	// EOZ is sticky: the Reader is never invoked again.
	b, err = z.GetByte()
	if err != nil {
		t.Fatal(err)
	}
	if b != EOZ {
		t.Fatalf("got %d, exp EOZ again", b)
	}
}

func TestStreamReadPastEOF(t *testing.T) {
	z := NewStream("short", chunkReader("ab"), nil)
	buf := make([]byte, 5)
	missing, err := z.Read(buf, 5)
	if err != nil {
		t.Fatal(err)
	}
	if missing != 3 {
		t.Fatalf("got missing %d, exp 3", missing)
	}
}

func TestStreamEmptyInput(t *testing.T) {
	z := NewStream("empty", chunkReader(), nil)
	b, err := z.GetByte()
	if err != nil {
		t.Fatal(err)
	}
	if b != EOZ {
		t.Fatalf("got %d, exp EOZ", b)
	}
}
