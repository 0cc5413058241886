// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ltcore

import "testing"

func TestFloatingByteRoundTrip(t *testing.T) {
	for _, x := range []int{0, 1, 7, 8, 15, 16, 17, 100, 1000, 100000} {
		b := FloatingByte(x)
		back := FloatingByteUnpack(b)
		// FloatingByte is lossy above 7 and rounds up; the unpacked value
		// must be >= x.
		if back < x {
			t.Fatalf("FloatingByte(%d)=%d unpacks to %d < %d", x, b, back, x)
		}
	}
}

func TestFloatingByteExact(t *testing.T) {
	for x := 0; x < 8; x++ {
		if g := FloatingByte(x); int(g) != x {
			t.Fatalf("FloatingByte(%d): got %d, exp %d", x, g, x)
		}
	}
}
