// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the in-place engine.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves the effective configuration.
//
// Design goals:
//   - No global state: the parallelism threshold is an explicit value carried by
//     Options, so unit tests can force deterministic single-threaded execution.
//   - No dead switches: each option changes behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import (
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultParallelThreshold is the element count m*n above which the column-mean
	// pass and the inner pair loop run on the worker pool. At or below it every loop
	// runs on the calling goroutine.
	DefaultParallelThreshold = 1000

	// DefaultWorkers selects runtime.GOMAXPROCS(0) workers for call-scoped pools.
	DefaultWorkers = 0

	// DefaultScratchLimit bounds a single scratch acquisition, in float64 elements.
	// Zero means unbounded.
	DefaultScratchLimit = 0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicThresholdInvalid    = "matrix: WithParallelThreshold: threshold must be >= 0"
	panicWorkersInvalid      = "matrix: WithWorkers: workers must be >= 0"
	panicPoolNil             = "matrix: WithPool: pool must not be nil"
	panicScratchNil          = "matrix: WithScratch: scratch must not be nil"
	panicScratchLimitInvalid = "matrix: WithScratchLimit: limit must be >= 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	threshold int              // parallel when m*n > threshold
	workers   int              // size of call-scoped pools; 0 = GOMAXPROCS
	pool      *workerpool.Pool // caller-owned pool, reused across calls (optional)
	scratch   Scratch          // transient buffer source
}

// WithParallelThreshold sets the element count m*n above which loops run in parallel.
// Zero parallelizes every non-empty problem. Panics on negative values.
func WithParallelThreshold(elems int) Option {
	if elems < 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = elems }
}

// WithSequential disables parallel execution regardless of problem size.
// Equivalent to WithParallelThreshold(math.MaxInt).
func WithSequential() Option {
	return func(o *Options) { o.threshold = math.MaxInt }
}

// WithWorkers sets the worker count of the pool created for a single call.
// Ignored when WithPool supplies a pool. Panics on negative values.
func WithWorkers(workers int) Option {
	if workers < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = workers }
}

// WithPool reuses a caller-owned worker pool. The engine never closes it.
// Panics on nil.
//
// AI-Hints:
//   - Share one pool across repeated calls to avoid spawning workers per call.
func WithPool(p *workerpool.Pool) Option {
	if p == nil {
		panic(panicPoolNil)
	}

	return func(o *Options) { o.pool = p }
}

// WithScratch sets the source of transient buffers. Panics on nil.
func WithScratch(s Scratch) Option {
	if s == nil {
		panic(panicScratchNil)
	}

	return func(o *Options) { o.scratch = s }
}

// WithScratchLimit caps each scratch acquisition at limit float64 values using the
// heap allocator; larger requests fail with ErrOutOfMemory. Zero means unbounded.
// Panics on negative values.
func WithScratchLimit(limit int) Option {
	if limit < 0 {
		panic(panicScratchLimitInvalid)
	}

	return func(o *Options) { o.scratch = HeapScratch{Limit: limit} }
}

// NewOptions resolves opts on top of the defaults. Exposed for callers (and tests)
// that want to inspect the effective configuration.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Threshold returns the effective parallelism threshold.
func (o Options) Threshold() int { return o.threshold }

// Workers returns the effective worker count for call-scoped pools (0 = GOMAXPROCS).
func (o Options) Workers() int { return o.workers }

// Scratch returns the effective scratch source.
func (o Options) Scratch() Scratch { return o.scratch }

// Runner returns the loop driver for a problem of m*n elements and the func that
// releases it. Below the threshold the driver runs inline on the caller.
// Packages layered on the engine use it to share the same parallelism policy.
func (o Options) Runner(m, n int) (func(count int, fn func(start, end int)), func()) {
	return o.runner(m, n)
}

// gatherOptions applies user-provided setters on top of defaults.
// Implementation:
//   - Stage 1: start from Default* constants.
//   - Stage 2: apply setters in order (last-writer-wins).
//
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		threshold: DefaultParallelThreshold,
		workers:   DefaultWorkers,
		scratch:   HeapScratch{Limit: DefaultScratchLimit},
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// parallel reports whether an m×n problem crosses the threshold.
func (o *Options) parallel(m, n int) bool {
	return m*n > o.threshold
}

// runner returns the loop driver for an m×n problem and a release func.
// Below the threshold the driver runs the whole range inline. Above it, the
// caller's pool is used, or a call-scoped pool is created and closed by release.
func (o *Options) runner(m, n int) (func(count int, fn func(start, end int)), func()) {
	if !o.parallel(m, n) {
		return inline, func() {}
	}
	if o.pool != nil {
		return o.pool.ParallelFor, func() {}
	}

	p := workerpool.New(o.workers)

	return p.ParallelFor, p.Close
}

// inline runs fn over the whole range on the calling goroutine.
func inline(count int, fn func(start, end int)) {
	if count > 0 {
		fn(0, count)
	}
}
