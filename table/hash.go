// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/cznic/ltcore"
)

// MaxBits bounds the hash part's size to 2^MaxBits nodes (§4.E "table
// overflow"). 30 matches the C core's bound for a 32-bit-or-wider int.
const MaxBits = 30

// hashPow2 maps a raw key value to a slot given a power-of-two node count.
func hashPow2(n uint64, nodeCount int) int {
	return int(n) & (nodeCount - 1)
}

// hashMod maps a raw key value to a slot via odd-divisor modulus, avoiding
// the degenerate distributions hashPow2 suffers when low bits correlate
// (e.g. aligned pointers).
func hashMod(n uint64, nodeCount int) int {
	m := uint64(nodeCount-1) | 1
	return int(n % m)
}

// hashNum reduces a float64 to the integer luai_hashnum mixes exponent and
// mantissa bits into, matching the portable fallback the C core uses: frexp
// the value, scale the mantissa into int range, add the exponent back in.
func hashNum(n float64) uint64 {
	if n == 0 {
		n = 0 // canonicalize -0 to +0 (§4.E main-position rule)
	}
	frac, exp := math.Frexp(n)
	frac *= float64(math.MaxInt32 - 1024) // DBL_MAX_EXP == 1024
	i := int64(frac)
	i += int64(exp)
	if i < 0 {
		if i == math.MinInt32 {
			i = 0
		} else {
			i = -i
		}
	}
	return uint64(i)
}

// arrayIndex returns the 1-based array index key would occupy if it is an
// integer-valued number, or -1 otherwise.
func arrayIndex(key ltcore.Value) int {
	if ltcore.TypeOf(key) != ltcore.KindNumber {
		return -1
	}
	n := ltcore.Number(key)
	k := int(n)
	if float64(k) == n {
		return k
	}
	return -1
}

// mainPos computes key's main position (§4.E). It must only be called on
// a table whose hash part is non-empty (len(t.Node) > 0); callers check
// isDummy first.
func (t *Table) mainPos(key ltcore.Value) (int, error) {
	nodeCount := len(t.Node)
	switch ltcore.TypeOf(key) {
	case ltcore.KindNumber:
		return hashMod(hashNum(ltcore.Number(key)), nodeCount), nil
	case ltcore.KindString:
		s, ok := ltcore.AsCollectable(key)
		if !ok {
			return 0, &ErrINVAL{Op: "mainPos", Why: "string key without payload"}
		}
		str, ok := s.(*ltcore.String)
		if !ok {
			return 0, &ErrINVAL{Op: "mainPos", Why: "string key with wrong payload type"}
		}
		h := str.Hash()
		if !str.IsShort() && !str.HashValid() {
			h = t.intern.HashLong(str.Bytes)
			str.SetHash(h)
		}
		return hashPow2(uint64(h), nodeCount), nil
	case ltcore.KindBoolean:
		b := uint64(0)
		if ltcore.Bool(key) {
			b = 1
		}
		return hashPow2(b, nodeCount), nil
	case ltcore.KindLightUserdata, ltcore.KindLightFunction:
		return hashMod(pointerBits(ltcore.LightPointer(key)), nodeCount), nil
	default:
		c, ok := ltcore.AsCollectable(key)
		if !ok {
			return 0, &ErrINVAL{Op: "mainPos", Why: "non-collectable key of unknown kind"}
		}
		return hashMod(headerAddr(c), nodeCount), nil
	}
}

// headerAddr returns a stable integer identity for a collectable's header,
// used to hash keys (tables, userdata, threads, ...) that have no other
// natural scalar representation. Go's garbage collector does not relocate
// heap objects, so the address is stable for the object's lifetime; taking
// it this way (rather than, say, a separately assigned serial number)
// mirrors the C core hashing the object's pointer value directly.
func headerAddr(c ltcore.Collectable) uint64 {
	return uint64(uintptr(unsafe.Pointer(c.Head())))
}

// pointerBits extracts a stable integer from a light-userdata/light-function
// payload for hashing purposes. Light values are always some pointer-like
// kind (the runtime never owns or traces them); anything else hashes to 0,
// which only degrades collision behavior, never correctness (Get still
// falls back to RawEqual down the chain).
func pointerBits(p interface{}) uint64 {
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Chan, reflect.Map, reflect.Func, reflect.Slice:
		return uint64(v.Pointer())
	default:
		return 0
	}
}
