// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intern

import "testing"

func TestInternShortPointerEquality(t *testing.T) {
	tab := NewTable(12345)
	a := tab.InternShort([]byte("hello"))
	b := tab.InternShort([]byte("hello"))
	if a != b {
		t.Fatal("equal short strings must intern to the identical pointer")
	}
	c := tab.InternShort([]byte("world"))
	if a == c {
		t.Fatal("distinct content must not share a pointer")
	}
	if tab.Len() != 2 {
		t.Fatalf("got %d interned strings, exp 2", tab.Len())
	}
}

func TestHashLongDeterministicAndSeeded(t *testing.T) {
	tab1 := NewTable(1)
	tab2 := NewTable(2)
	h1a := tab1.HashLong([]byte("some long string content"))
	h1b := tab1.HashLong([]byte("some long string content"))
	if h1a != h1b {
		t.Fatal("HashLong must be deterministic for a fixed seed")
	}
	h2 := tab2.HashLong([]byte("some long string content"))
	if h1a == h2 {
		t.Fatal("different seeds should (almost certainly) hash differently")
	}
}

func TestFixSetsNonCollectable(t *testing.T) {
	tab := NewTable(7)
	s := tab.InternShort([]byte("out of memory"))
	if s.IsFixed() {
		t.Fatal("freshly interned string should not start fixed")
	}
	Fix(s)
	if !s.IsFixed() {
		t.Fatal("Fix must mark the string non-collectable")
	}
}
