// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zio implements the buffered, pull-based input stream that backs
// the parser: a Reader plug-in supplies chunks on demand, Stream serves
// them one byte (or a run of bytes) at a time, and Buffer is the companion
// growable byte accumulator used to assemble a token's text.
//
// The design mirrors lldb.MemFiler's page-backed growth discipline, but
// for a one-dimensional byte run rather than a sparse paged address space.
package zio
