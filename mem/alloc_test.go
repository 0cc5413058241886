// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import "testing"

func TestReallocGrowShrink(t *testing.T) {
	a := New(DefaultRealloc, nil, nil)

	b, err := a.Realloc("test", nil, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 16 {
		t.Fatalf("got len %d, exp 16", len(b))
	}
	if a.GCDebt != 16 {
		t.Fatalf("got debt %d, exp 16", a.GCDebt)
	}

	b, err = a.Realloc("test", b, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 8 {
		t.Fatalf("got len %d, exp 8", len(b))
	}
	if a.GCDebt != 8 {
		t.Fatalf("got debt %d, exp 8", a.GCDebt)
	}

	a.Free("test", b)
	if a.GCDebt != 0 {
		t.Fatalf("got debt %d, exp 0", a.GCDebt)
	}
}

func TestReallocEmergencyRetry(t *testing.T) {
	calls := 0
	collected := false
	failing := func(_ interface{}, block []byte, newSize int) ([]byte, error) {
		calls++
		if newSize > len(block) && !collected {
			return nil, &ErrMEM{}
		}
		return DefaultRealloc(nil, block, newSize)
	}

	a := New(failing, nil, func() { collected = true })
	b, err := a.Realloc("test", nil, 32)
	if err != nil {
		t.Fatalf("expected success after emergency collection, got %v", err)
	}
	if len(b) != 32 {
		t.Fatalf("got len %d, exp 32", len(b))
	}
	if !collected {
		t.Fatal("expected emergency collection to have been invoked")
	}
	if calls != 2 {
		t.Fatalf("expected exactly one retry (2 calls), got %d", calls)
	}
}

func TestReallocGrowthStillFailsAfterEmergency(t *testing.T) {
	failing := func(_ interface{}, block []byte, newSize int) ([]byte, error) {
		if newSize > len(block) {
			return nil, &ErrMEM{}
		}
		return DefaultRealloc(nil, block, newSize)
	}

	a := New(failing, nil, func() {})
	_, err := a.Realloc("test", nil, 32)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*ErrMEM); !ok {
		t.Fatalf("got %T, exp *ErrMEM", err)
	}
}

func TestGrowVector(t *testing.T) {
	cap, err := GrowVector(0, 0, 1<<20, "things")
	if err != nil {
		t.Fatal(err)
	}
	if cap != minGrowElems {
		t.Fatalf("got %d, exp %d", cap, minGrowElems)
	}

	cap, err = GrowVector(4, 4, 1<<20, "things")
	if err != nil {
		t.Fatal(err)
	}
	if cap != 8 {
		t.Fatalf("got %d, exp 8", cap)
	}

	_, err = GrowVector(100, 100, 100, "things")
	if err == nil {
		t.Fatal("expected ErrTooMany")
	}
	if _, ok := err.(*ErrTooMany); !ok {
		t.Fatalf("got %T, exp *ErrTooMany", err)
	}
}

func TestCheckSizeOverflow(t *testing.T) {
	if _, err := CheckSize(1<<62, 1<<62); err == nil {
		t.Fatal("expected overflow error")
	}
	if n, err := CheckSize(4, 16); err != nil || n != 64 {
		t.Fatalf("got (%d, %v), exp (64, nil)", n, err)
	}
}
