// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import "github.com/cznic/ltcore/mem"

// Options amend runtime construction (§1 "Configuration", §6 "Allocator
// plug-in"). Like dbm.Options, the compatibility promise is the same as
// struct types in the standard library: new fields may be added, never
// removed or renamed, so client code should always use field names in a
// struct literal rather than positional initialization.
type Options struct {
	// Realloc is the host-supplied allocation primitive. Nil selects
	// mem.DefaultRealloc.
	Realloc mem.ReallocFunc

	// UserData is passed back to Realloc on every call (the "ud" argument
	// in the C original's allocator signature).
	UserData interface{}

	// Emergency is invoked once per failed growth, before the single
	// retry (§4.A). Nil means a failed growth is never retried.
	Emergency mem.CollectFunc

	// InitialStackSize is the value stack's starting element count. Zero
	// selects the core's default (basicStackSize, see thread.go).
	InitialStackSize int

	// Seed, if non-zero, overrides the four-pointer RNG mix (§4.G step
	// 4) with a caller-supplied hash seed — used by tests that need
	// reproducible string-collision scenarios (S3), never by production
	// hosts.
	Seed uint32
}

func (o *Options) realloc() mem.ReallocFunc {
	if o == nil || o.Realloc == nil {
		return mem.DefaultRealloc
	}
	return o.Realloc
}

func (o *Options) userData() interface{} {
	if o == nil {
		return nil
	}
	return o.UserData
}

func (o *Options) emergency() mem.CollectFunc {
	if o == nil {
		return nil
	}
	return o.Emergency
}

func (o *Options) stackSize() int {
	if o == nil || o.InitialStackSize <= 0 {
		return basicStackSize
	}
	return o.InitialStackSize
}

func (o *Options) seed() uint32 {
	if o == nil {
		return 0
	}
	return o.Seed
}
