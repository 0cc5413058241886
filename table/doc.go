// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table implements the hybrid array/hash aggregate (§4.E): a dense
// array part for small positive integer keys backed by an open-addressed
// hash part using Brent's variation for collision resolution. Collision
// chains link nodes by index rather than pointer, so a growing Node slice
// never invalidates a chain the way a reallocated C array of Node would —
// the index survives a Go slice reallocation exactly where a raw pointer
// would not.
package table
