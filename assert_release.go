// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !ltcore_debug

package ltcore

// assertLive is a no-op outside debug builds (see assert_debug.go).
func assertLive(h *Header) {}
