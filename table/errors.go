// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "fmt"

// ErrINVAL reports an invalid table key: nil or NaN (§4.E "Failure modes").
type ErrINVAL struct {
	Op  string
	Why string
}

func (e *ErrINVAL) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Why) }

// ErrOverflow reports that the hash part would need more than MaxBits bits
// of size, i.e. "table overflow" in §4.E.
type ErrOverflow struct{}

func (e *ErrOverflow) Error() string { return "table overflow" }
