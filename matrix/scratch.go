// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Own the lifecycle of the engine's transient buffers (column means, working
//     column, normalization norms).
//   - Turn an allocation failure into ErrOutOfMemory instead of a crash, so the
//     caller can report it and keep the output buffer.
//
// Ownership:
//   - Every Acquire that succeeds is paired with exactly one Release via defer at
//     the acquisition site, so every return path releases what it acquired.
//   - Buffer contents after Acquire are unspecified; the engine overwrites them.

package matrix

import (
	"runtime"
	"sync"
)

// Scratch is a source of transient float64 buffers.
// Implementations must be safe for sequential Acquire/Release pairs; the engine
// never calls them from inside a parallel region.
type Scratch interface {
	// Acquire returns a buffer of length n or ErrOutOfMemory.
	Acquire(n int) ([]float64, error)
	// Release hands a buffer obtained from Acquire back to the source.
	Release(buf []float64)
}

// HeapScratch allocates every buffer on the Go heap.
// Limit > 0 refuses requests above Limit elements.
type HeapScratch struct {
	Limit int
}

// Acquire allocates n float64 values. Negative n, n above Limit, and a runtime
// panic from make (length out of range) all report ErrOutOfMemory.
func (h HeapScratch) Acquire(n int) (buf []float64, err error) {
	if n < 0 || (h.Limit > 0 && n > h.Limit) {
		return nil, ErrOutOfMemory
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				buf, err = nil, ErrOutOfMemory
				return
			}
			panic(r)
		}
	}()

	return make([]float64, n), nil
}

// Release is a no-op; the garbage collector reclaims the buffer.
func (HeapScratch) Release([]float64) {}

// PoolScratch recycles buffers through a sync.Pool. It suits repeated calls on
// same-sized problems (batch processing) where per-call allocation would dominate.
type PoolScratch struct {
	heap HeapScratch
	pool sync.Pool
}

// NewPoolScratch returns a PoolScratch whose fresh allocations obey limit
// (0 = unbounded).
func NewPoolScratch(limit int) *PoolScratch {
	return &PoolScratch{heap: HeapScratch{Limit: limit}}
}

// Acquire reuses a pooled buffer with enough capacity or allocates a new one.
// A pooled buffer that is too small is returned to the pool.
func (p *PoolScratch) Acquire(n int) ([]float64, error) {
	if n < 0 || (p.heap.Limit > 0 && n > p.heap.Limit) {
		return nil, ErrOutOfMemory
	}
	if v, ok := p.pool.Get().(*[]float64); ok {
		if cap(*v) >= n {
			return (*v)[:n], nil
		}
		// Too small for this request; keep it for a later, smaller one.
		p.pool.Put(v)
	}

	return p.heap.Acquire(n)
}

// Release returns buf to the pool.
func (p *PoolScratch) Release(buf []float64) {
	if buf == nil {
		return
	}
	p.pool.Put(&buf)
}
