// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

const maxInt = int(^uint(0) >> 1)

// ReallocFunc is the host-supplied allocation primitive (§6 "Allocator
// plug-in"): given the previous content (nil/empty for a fresh allocation)
// and the desired new size in bytes, it returns a block of exactly newSize
// bytes, preserving as much of the old content as fits, or an error.
// Calling it with newSize == 0 must free the block and return (nil, nil).
type ReallocFunc func(ud interface{}, block []byte, newSize int) ([]byte, error)

// CollectFunc asks the external collector to perform an emergency full
// collection. It is invoked at most once per failed growth.
type CollectFunc func()

// DefaultRealloc is the trivial ReallocFunc backed by the Go heap. It is
// the allocator a host reaches for when it has no GC-debt-aware collector
// of its own to cooperate with — analogous to lldb.NewMemFiler being the
// zero-configuration Filer.
func DefaultRealloc(_ interface{}, block []byte, newSize int) ([]byte, error) {
	if newSize == 0 {
		return nil, nil
	}
	nb := make([]byte, newSize)
	copy(nb, block)
	return nb, nil
}

// Allocator mediates every size change the core performs, reporting
// pressure to an external GC via GCDebt.
type Allocator struct {
	realloc   ReallocFunc
	ud        interface{}
	emergency CollectFunc

	TotalBytes int64 // sum of sizes of all currently live blocks
	GCDebt     int64 // signed byte counter driving incremental collection
}

// New returns an Allocator wrapping realloc. emergency may be nil, in which
// case a failed growth is never retried.
func New(realloc ReallocFunc, ud interface{}, emergency CollectFunc) *Allocator {
	if realloc == nil {
		realloc = DefaultRealloc
	}
	return &Allocator{realloc: realloc, ud: ud, emergency: emergency}
}

// Realloc implements the §4.A contract:
//
//   - Realloc(nil, 0, n) allocates.
//   - Realloc(p, _, 0) frees and returns nil.
//   - shrinking or equal-size reallocation MUST NOT fail.
//   - on failure to grow, an emergency full collection is requested, the
//     call is retried once, and if still unsuccessful an *ErrMEM is
//     returned.
//   - every call updates GCDebt += newSize - oldSize.
func (a *Allocator) Realloc(op string, block []byte, newSize int) ([]byte, error) {
	oldSize := len(block)

	nb, err := a.realloc(a.ud, block, newSize)
	if err != nil {
		if newSize <= oldSize {
			panic("mem: ReallocFunc violated the no-fail-on-shrink contract")
		}
		if a.emergency != nil {
			a.emergency()
			nb, err = a.realloc(a.ud, block, newSize)
		}
		if err != nil {
			return nil, &ErrMEM{Op: op, OldSize: oldSize, NewSize: newSize}
		}
	}

	a.GCDebt += int64(newSize - oldSize)
	a.TotalBytes += int64(newSize - oldSize)
	return nb, nil
}

// Free is Realloc(op, block, 0) by another name; it always succeeds.
func (a *Allocator) Free(op string, block []byte) {
	_, _ = a.Realloc(op, block, 0)
}

// ChargeBytes records a size change exactly as Realloc would, without
// asking the ReallocFunc to move any bytes. It exists for callers that
// must keep a slice of pointer-containing Go values (a thread's value
// stack) and therefore cannot route the actual storage through a []byte
// ReallocFunc — reinterpreting such a slice as raw bytes would hide its
// pointers from the Go garbage collector. Growth decisions still go
// through GrowVector/CheckSize, and every resulting Go-native make/append
// is charged here, so GCDebt still reflects every size change the core
// makes (§4.A), even though the bytes themselves are never handed to
// ReallocFunc.
//
// Unlike Realloc, this can never fail, so a host's failing ReallocFunc
// can never reject a growth charged this way — table array/node growth
// deliberately does NOT use this (see table/rehash.go's ballast fields),
// precisely so that a failing allocator stays reachable for scenario S5.
func (a *Allocator) ChargeBytes(oldSize, newSize int) {
	a.GCDebt += int64(newSize - oldSize)
	a.TotalBytes += int64(newSize - oldSize)
}

// minGrowElems is the minimum element count of a freshly grown vector,
// matching §4.A's "minimum first allocation is 4 elements".
const minGrowElems = 4

// GrowVector doubles the capacity of a dynamic vector (tracked in element
// counts, not bytes) each time n reaches cap, capping at limit. what names
// the vector for the overflow error message ("too many X (limit is N)").
// It returns the new capacity; the caller is responsible for the actual
// mem.Allocator.Realloc call at elemSize*newCap bytes.
func GrowVector(n, cap, limit int, what string) (newCap int, err error) {
	if n+1 <= cap {
		return cap, nil
	}

	newCap = cap * 2
	if newCap < minGrowElems {
		newCap = minGrowElems
	}
	if newCap > limit || newCap < cap {
		// either the cap doubled past the limit, or it overflowed int
		// arithmetic (newCap < cap signals wraparound).
		if cap >= limit {
			return 0, &ErrTooMany{What: what, Limit: limit}
		}
		newCap = limit
	}
	return newCap, nil
}

// CheckSize refuses any n such that n*elemSize would overflow the
// platform's int range, returning the product when it's safe.
func CheckSize(n, elemSize int) (int, error) {
	if n < 0 || elemSize < 0 {
		return 0, &ErrSize{N: n, ElemSize: elemSize}
	}
	if n == 0 || elemSize == 0 {
		return 0, nil
	}
	if n > maxInt/elemSize {
		return 0, &ErrSize{N: n, ElemSize: elemSize}
	}
	return n * elemSize, nil
}
