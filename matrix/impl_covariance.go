// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - In-place all-pairs covariance / correlation / cosine over the columns of a
//     column-major m×n buffer, writing into a caller-owned n×n buffer.
//   - O(m+n) auxiliary storage: one n-length mean vector and one m-length working
//     column, both scoped to a single call.
//
// Exposed API:
//   - CovarianceInPlace(m, n, x, cov, ...)  // upper triangle + Symmetrize
//   - CorrelationInPlace(m, n, x, cor, ...) // upper triangle + CosimFill + Symmetrize
//   - CosineInPlace(m, n, x, out, ...)      // raw cross-products + CosimFill + Symmetrize
//   - PairwiseInPlace(stat, m, n, x, out, ...)
//
// Layout:
//   - x[k + m*j] is observation k of variable j.
//   - out[i + n*j] with i >= j is the statistic of columns i and j ("row >= column").
//
// Determinism & Concurrency:
//   - The outer loop over j is sequential: the working column is rewritten per j.
//   - The inner loop over i is split by the worker pool when m*n exceeds the
//     configured threshold. Each i writes only out[i+n*j] and reads the finalized
//     working column, the read-only means and its own input column.
//   - Every cell is computed by exactly one goroutine with a fixed summation order,
//     so parallel and sequential runs are bit-identical.
//
// Numeric policy:
//   - Two-pass: means first, then centered cross-products; Bessel's correction.
//   - No validation of m, n or finiteness. m <= 1 yields NaN/Inf, never an error.

package matrix

import (
	"github.com/ajroetker/go-highway/hwy/contrib/vec"

	"github.com/katalvlaran/coop/internal/kernel"
)

// Operation name constants for unified error wrapping.
const (
	opCovariance  = "Covariance"
	opCorrelation = "Correlation"
	opCosine      = "Cosine"
	opPairwise    = "Pairwise"
	opColumnMeans = "ColumnMeans"
	opCosimFill   = "CosimFill"
)

// CovarianceInPlace writes the n×n sample covariance matrix of the columns of x
// into cov.
// Implementation:
//   - Stage 1: coMatUpper fills the row >= column triangle.
//   - Stage 2: Symmetrize mirrors it into the other triangle.
//
// Inputs:
//   - m, n: observations and variables; trusted, not revalidated.
//   - x: column-major buffer with at least m*n values; never mutated.
//   - cov: caller-owned buffer with at least n*n values.
//
// Errors:
//   - ErrOutOfMemory when a scratch buffer cannot be acquired; cov is then left
//     unwritten and symmetrization is skipped.
//
// Complexity:
//   - Time O(m*n + m*n²/2), extra space O(m+n).
func CovarianceInPlace(m, n int, x, cov []float64, opts ...Option) error {
	o := gatherOptions(opts...)
	if err := coMatUpper(m, n, x, cov, true, &o); err != nil {
		return err
	}
	Symmetrize(n, cov)

	return nil
}

// CorrelationInPlace writes the n×n Pearson correlation matrix of the columns of x
// into cor: covariance upper triangle, then CosimFill, then Symmetrize.
// Zero-variance columns produce NaN rows/columns (no special-casing).
// Errors and complexity as CovarianceInPlace.
func CorrelationInPlace(m, n int, x, cor []float64, opts ...Option) error {
	o := gatherOptions(opts...)
	if err := coMatUpper(m, n, x, cor, true, &o); err != nil {
		return err
	}
	if err := cosimFill(n, cor, &o); err != nil {
		return err
	}
	Symmetrize(n, cor)

	return nil
}

// CosineInPlace writes the n×n cosine similarity matrix of the columns of x into
// out: raw cross-products (no centering), then CosimFill, then Symmetrize.
// All-zero columns produce NaN rows/columns.
func CosineInPlace(m, n int, x, out []float64, opts ...Option) error {
	o := gatherOptions(opts...)
	if err := coMatUpper(m, n, x, out, false, &o); err != nil {
		return err
	}
	if err := cosimFill(n, out, &o); err != nil {
		return err
	}
	Symmetrize(n, out)

	return nil
}

// PairwiseInPlace dispatches on stat. Unknown selectors return ErrBadStatistic
// without touching out.
func PairwiseInPlace(stat Statistic, m, n int, x, out []float64, opts ...Option) error {
	switch stat {
	case StatCovariance:
		return CovarianceInPlace(m, n, x, out, opts...)
	case StatCorrelation:
		return CorrelationInPlace(m, n, x, out, opts...)
	case StatCosine:
		return CosineInPlace(m, n, x, out, opts...)
	default:
		return matrixErrorf(opPairwise, ErrBadStatistic)
	}
}

// coMatUpper is the blocked all-pairs kernel. For every j and every i >= j it
// stores the (optionally mean-centered) cross-product of columns i and j in
// out[i+n*j], divided by m-1 when centered.
// Implementation:
//   - Stage 1: Acquire the n-length mean buffer, then the m-length working column.
//     A failure releases whatever was acquired and returns ErrOutOfMemory.
//   - Stage 2: Column means in one pass (parallel across columns), or zeros when
//     centered is false.
//   - Stage 3: For each j: copy column j into the working buffer and center it,
//     then compute the inner i >= j dot products in parallel. Uncentered
//     (cosine) pairs use the plain SIMD dot product.
//   - Stage 4: Release both buffers (deferred) and the call-scoped pool, if any.
//
// Notes:
//   - Column means are computed once and reused by all n(n+1)/2 pairs; column i
//     is centered on the fly inside the dot product.
func coMatUpper(m, n int, x, out []float64, centered bool, o *Options) error {
	// Stage 1 (Acquire): means first, working column second.
	means, err := o.scratch.Acquire(n)
	if err != nil {
		return ErrOutOfMemory
	}
	defer o.scratch.Release(means)

	work, err := o.scratch.Acquire(m)
	if err != nil {
		return ErrOutOfMemory
	}
	defer o.scratch.Release(work)

	run, release := o.runner(m, n)
	defer release()

	// Stage 2 (Means): the only pass over the whole input before the pair loop.
	denom := 1.0
	if centered {
		columnMeans(m, n, x, means, run)
		denom = 1.0 / float64(m-1)
	} else {
		clear(means)
	}

	// Stage 3 (Pairs): sequential j; the working column is complete before run starts.
	var j int
	for j = 0; j < n; j++ {
		copy(work, x[m*j:m*j+m])

		col := out[n*j : n*j+n]
		lo := j
		if !centered {
			run(n-j, func(start, end int) {
				for i := lo + start; i < lo+end; i++ {
					col[i] = vec.DotFloat64(work, x[m*i:m*i+m])
				}
			})
			continue
		}

		vec.AddConst(-means[j], work)
		run(n-j, func(start, end int) {
			for i := lo + start; i < lo+end; i++ {
				col[i] = kernel.CenteredDot(work, x[m*i:m*i+m], means[i]) * denom
			}
		})
	}

	return nil
}

// columnMeans writes the arithmetic mean of every column of x into means.
// Each chunk reads only its own columns and writes only its own slots.
func columnMeans(m, n int, x, means []float64, run func(int, func(int, int))) {
	inv := 1.0 / float64(m)
	run(n, func(start, end int) {
		for j := start; j < end; j++ {
			means[j] = vec.SumFloat64(x[m*j:m*j+m]) * inv
		}
	})
}

// ColumnMeansInPlace writes the n column means of the column-major buffer x into
// means (len >= n), using the same threshold and pool policy as the pair kernels.
// m == 0 yields NaN means.
func ColumnMeansInPlace(m, n int, x, means []float64, opts ...Option) {
	o := gatherOptions(opts...)
	run, release := o.runner(m, n)
	defer release()
	columnMeans(m, n, x, means, run)
}
