// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ltcore

import (
	"math"
	"reflect"
)

// Tag encodes a Value's kind in its low 4 bits, a sub-variant in the next 2
// bits and the collectable flag in bit 6. Two values are tag-equal iff their
// full tags match.
type Tag uint8

// Base kinds, held in the low 4 bits of a Tag.
const (
	KindNil Tag = iota
	KindBoolean
	KindNumber
	KindLightUserdata
	KindLightFunction
	KindString
	KindTable
	KindUserdata
	KindThread
	KindProto
	KindClosure
	KindUpvalue
	KindDeadKey

	kindMask Tag = 0x0F
)

// Sub-variant bits, held in bits 4-5 of a Tag.
const (
	variantShift = 4
	variantMask  = 0x3 << variantShift

	// String sub-variants.
	VariantShortString = 0 << variantShift
	VariantLongString  = 1 << variantShift

	// Closure sub-variants.
	VariantClosureLua = 0 << variantShift
	VariantClosureC   = 1 << variantShift
)

// Collectable flag, bit 6.
const collectableFlag Tag = 1 << 6

// Base returns the tag stripped of its sub-variant and collectable bits.
func (t Tag) Base() Tag { return t & kindMask }

// Variant returns the sub-variant bits only.
func (t Tag) Variant() Tag { return t & variantMask }

// Collectable reports whether the collectable flag (bit 6) is set.
func (t Tag) Collectable() bool { return t&collectableFlag != 0 }

// Fully formed tags for the non-collectable kinds and the two light
// pointer kinds, which are never collectable.
const (
	tagNil            = KindNil
	tagBoolean        = KindBoolean
	tagNumber         = KindNumber
	tagLightUserdata  = KindLightUserdata
	tagLightFunction  = KindLightFunction
	tagShortString    = KindString | VariantShortString | collectableFlag
	tagLongString     = KindString | VariantLongString | collectableFlag
	tagTable          = KindTable | collectableFlag
	tagFullUserdata   = KindUserdata | collectableFlag
	tagThread         = KindThread | collectableFlag
	tagProto          = KindProto | collectableFlag
	tagClosureLua     = KindClosure | VariantClosureLua | collectableFlag
	tagClosureC       = KindClosure | VariantClosureC | collectableFlag
	tagUpvalue        = KindUpvalue | collectableFlag
	tagDeadKey        = KindDeadKey | collectableFlag
)

// Exported mirrors of the fully-formed collectable tags, for packages
// outside ltcore that construct their own collectable headers directly
// (table.Table, state.Thread, ...) rather than going
// through a constructor living in this package.
const (
	TagTable        = tagTable
	TagFullUserdata = tagFullUserdata
	TagThread       = tagThread
	TagProto        = tagProto
	TagClosureLua   = tagClosureLua
	TagClosureC     = tagClosureC
	TagUpvalue      = tagUpvalue
	TagDeadKey      = tagDeadKey
)

// Value is a tagged value: a (tag, payload) pair. n holds the number
// payload (and doubles as the boolean payload, 0 or 1); p holds every
// pointer payload — light userdata, light function or a Collectable.
//
// This is the tagged-struct representation (see the design notes in
// SPEC_FULL.md on why NaN-boxing was not chosen): on a 64 bit platform
// sizeof(Value) is 32 bytes (tag padded to 8, n float64, p a two-word
// interface) rather than a hand-packed 16, trading size for portability.
type Value struct {
	tag Tag
	n   float64
	p   interface{} // Collectable, or a raw pointer for light kinds
}

// TypeOf returns v's base kind, ignoring sub-variant and collectable bits.
func TypeOf(v Value) Tag { return v.tag.Base() }

// IsCollectable reports whether v's payload is a heap object traced by the
// GC.
func IsCollectable(v Value) bool { return v.tag.Collectable() }

// IsFalsey reports whether v is nil or boolean false — the only two values
// that make a Lua condition false.
func IsFalsey(v Value) bool {
	return v.tag == tagNil || (v.tag == tagBoolean && v.n == 0)
}

// IsNil reports whether v is the nil value.
func IsNil(v Value) bool { return v.tag == tagNil }

// SetNil sets *dst to nil.
func SetNil(dst *Value) { *dst = Value{tag: tagNil} }

// SetBool sets *dst to a boolean.
func SetBool(dst *Value, b bool) {
	n := 0.0
	if b {
		n = 1
	}
	*dst = Value{tag: tagBoolean, n: n}
}

// SetNumber sets *dst to a number.
func SetNumber(dst *Value, n float64) { *dst = Value{tag: tagNumber, n: n} }

// SetLightUserdata sets *dst to an opaque pointer the runtime does not own.
func SetLightUserdata(dst *Value, p interface{}) { *dst = Value{tag: tagLightUserdata, p: p} }

// SetLightFunction sets *dst to an opaque function pointer.
func SetLightFunction(dst *Value, p interface{}) { *dst = Value{tag: tagLightFunction, p: p} }

// SetCollectable sets *dst to a collectable object c, tagging it with the
// concrete tag (already stamped in c's Header by its constructor). In a
// debug build this asserts the object is not on the dead list.
func SetCollectable(dst *Value, c Collectable) {
	h := c.Head()
	assertLive(h)
	*dst = Value{tag: h.Tag, p: c}
}

// SetDeadKey marks dst as a dead key retaining c's payload, so a table
// iterator stepping past a deleted key can still compute the correct
// successor (§3 invariant 5, §4.E "Iteration").
func SetDeadKey(dst *Value, c Collectable) {
	*dst = Value{tag: TagDeadKey, p: c}
}

// Assign copies both tag and payload of src into *dst. There is never
// aliasing of interior pointers between values: the payload is either a
// float64 (copied by value) or a Collectable reference (copied by
// interface value, which is itself a pointer+type pair, never an interior
// pointer into the referent).
func Assign(dst *Value, src Value) { *dst = src }

// Bool returns v's boolean payload. The caller must have checked
// TypeOf(v) == KindBoolean.
func Bool(v Value) bool { return v.n != 0 }

// Number returns v's number payload. The caller must have checked
// TypeOf(v) == KindNumber.
func Number(v Value) float64 { return v.n }

// AsCollectable returns v's collectable payload and whether v was in fact
// collectable.
func AsCollectable(v Value) (Collectable, bool) {
	if !v.tag.Collectable() {
		return nil, false
	}
	c, ok := v.p.(Collectable)
	return c, ok
}

// LightPointer returns v's light-userdata/light-function payload.
func LightPointer(v Value) interface{} { return v.p }

// RawEqual reports raw (not metamethod mediated) equality of two values:
// numbers compare by value, strings by identity for short strings and by
// content for long strings (see package intern), booleans by payload,
// other collectables by pointer identity. NaN is never raw-equal to
// itself, matching IEEE-754.
func RawEqual(a, b Value) bool {
	if a.tag.Base() != b.tag.Base() {
		return false
	}
	switch a.tag.Base() {
	case KindNil:
		return true
	case KindBoolean:
		return a.n == b.n
	case KindNumber:
		return a.n == b.n
	case KindLightUserdata, KindLightFunction:
		return lightEqual(a.p, b.p)
	case KindString:
		return stringEqual(a, b)
	default:
		ac, aok := AsCollectable(a)
		bc, bok := AsCollectable(b)
		return aok && bok && ac == bc
	}
}

func stringEqual(a, b Value) bool {
	as, aok := a.p.(*String)
	bs, bok := b.p.(*String)
	if !aok || !bok {
		return false
	}
	if as == bs {
		return true
	}
	if as.tag().Variant() == VariantShortString && bs.tag().Variant() == VariantShortString {
		return false // interned: distinct pointers imply distinct content
	}
	// Long strings compare by content alone. Comparing cached hashes first
	// would be wrong here: hash() returns whatever's in the field even
	// when HashValid() is false, and a long string that was never looked
	// up through table.mainPos has no hash computed at all — content
	// equality must not depend on which side happened to get hashed.
	return string(as.Bytes) == string(bs.Bytes)
}

// lightEqual compares two light-userdata/light-function payloads.
// table/hash.go's pointerBits accepts Map, Slice and Chan as legitimate
// payload kinds alongside Ptr/UnsafePointer/Func; a bare a == b panics at
// runtime ("comparing uncomparable type") once the dynamic type is a map
// or slice, so those kinds are compared by their underlying address via
// reflect instead.
func lightEqual(a, b interface{}) bool {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Kind() != bv.Kind() {
		return false
	}
	switch av.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Chan, reflect.Map, reflect.Func, reflect.Slice:
		return av.Pointer() == bv.Pointer()
	default:
		return a == b
	}
}

// isNaN is a tiny local alias kept for readability at call sites that test
// table keys (NaN is forbidden as a key, see package table).
func isNaN(n float64) bool { return math.IsNaN(n) }
