// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ltcore implements the value model of the runtime core of a
// dynamically typed scripting language: tagged values, the collectable
// object header every heap object shares, arithmetic on numbers, string to
// number conversion and the chunk-id formatter used to name source blobs in
// error messages.
//
// The sibling packages build on top of this one:
//
//	ltcore/mem    the memory manager (the sole realloc choke point)
//	ltcore/zio    the buffered input stream feeding the (out of scope) parser
//	ltcore/intern the string interning contract
//	ltcore/table  the hybrid array/hash aggregate
//	ltcore/state  thread state, the call stack and global state
//
// None of these packages implement a lexer, a bytecode compiler, a bytecode
// dispatcher or a garbage collector. They implement only the hooks an
// external collector and an external interpreter need from the core.
package ltcore
