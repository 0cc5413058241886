// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ltcore

import (
	"strings"
	"testing"
)

func TestChunkIDLiteral(t *testing.T) {
	if g, e := ChunkID("=myname", 40), "myname"; g != e {
		t.Fatalf("got %q, exp %q", g, e)
	}
}

func TestChunkIDFileTruncated(t *testing.T) {
	g := ChunkID("@"+strings.Repeat("a", 100), 20)
	if !strings.HasPrefix(g, "...") {
		t.Fatalf("expected left-truncation marker, got %q", g)
	}
	if len(g) != 20 {
		t.Fatalf("got len %d, exp 20: %q", len(g), g)
	}
}

func TestChunkIDStringWrapped(t *testing.T) {
	g := ChunkID("return 1", 40)
	if g != `[string "return 1"]` {
		t.Fatalf("got %q", g)
	}
}

func TestChunkIDStringFirstLineOnly(t *testing.T) {
	g := ChunkID("line one\nline two", 40)
	if !strings.HasPrefix(g, `[string "line one`) {
		t.Fatalf("expected only the first line, got %q", g)
	}
}
