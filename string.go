// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ltcore

// ShortStringLimit is the threshold, in bytes, at or under which a string is
// canonicalized through the global string-intern table (package intern).
// Strings longer than this are "long strings": they hash lazily and are
// compared by content rather than by pointer.
const ShortStringLimit = 40

// String is an interned, immutable byte array with a precomputed (or, for
// long strings, lazily computed) hash. Header must stay the first field —
// see the Header doc comment.
type String struct {
	Header
	Bytes    []byte
	h        uint32 // precomputed (short) or cached-on-first-use (long) hash
	hashSet  bool   // "extra" byte: true once h is valid for a long string
}

// NewShortString constructs a String header for short-string storage. It
// does not intern — package intern's InternShort is the only path that
// should produce a String with VariantShortString set and guarantee pointer
// identity for equal content.
func NewShortString(b []byte, hash uint32) *String {
	s := &String{Bytes: b, h: hash, hashSet: true}
	s.Tag = tagShortString
	return s
}

// NewLongString constructs a long String with no hash computed yet.
func NewLongString(b []byte) *String {
	s := &String{Bytes: b}
	s.Tag = tagLongString
	return s
}

func (s *String) tag() Tag { return s.Tag }

// Hash returns the precomputed hash for a short string, or the cached hash
// for a long string once computed. Calling Hash on a long string before a
// hash has been cached via SetHash returns 0; HashValid reports which case
// applies (the C "extra" byte of §3). Package table's mainPos computes and
// caches a long string's hash the first time it is used as a key.
func (s *String) Hash() uint32 { return s.h }

func (s *String) hash() uint32 { return s.h }

// SetHash caches a long string's computed hash, setting the "extra" byte.
func (s *String) SetHash(h uint32) {
	s.h = h
	s.hashSet = true
}

// HashValid reports whether a long string's hash has been computed.
func (s *String) HashValid() bool { return s.hashSet }

// Len returns the string's byte length.
func (s *String) Len() int { return len(s.Bytes) }

// IsShort reports whether s is a short (interned) string.
func (s *String) IsShort() bool { return s.Tag.Variant() == VariantShortString }
