// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Post-processing steps applied to an n×n column-major buffer whose
//     row >= column triangle holds valid values.
//   - Symmetrize mirrors that triangle; CosimFill rescales it by diagonal norms,
//     turning covariances into correlations and cross-products into cosines.
//   - ReplaceNonFinite is an optional last step for consumers that cannot hold
//     the NaN rows produced by zero-variance columns.

package matrix

import "math"

// Symmetrize copies x[i+n*j] into x[j+n*i] for every i > j, so afterwards
// x[i,j] == x[j,i] bit for bit. The diagonal is untouched.
// Complexity: O(n²/2) time, O(1) space.
func Symmetrize(n int, x []float64) {
	var i, j int
	for j = 0; j < n; j++ {
		for i = j + 1; i < n; i++ {
			x[j+n*i] = x[i+n*j]
		}
	}
}

// CosimFill divides every entry (i, j) with i >= j by sqrt(x[i,i])*sqrt(x[j,j]),
// in place. Diagonal entries become v/v: exactly 1 for a positive finite v and
// NaN for a zero diagonal. Entries above the diagonal are not read or written.
//
// Errors:
//   - ErrOutOfMemory when the n-length norm buffer cannot be acquired; x is then
//     left unchanged.
//
// Complexity: O(n²/2) time, O(n) scratch.
func CosimFill(n int, x []float64, opts ...Option) error {
	o := gatherOptions(opts...)
	if err := cosimFill(n, x, &o); err != nil {
		return matrixErrorf(opCosimFill, err)
	}

	return nil
}

// cosimFill is the unwrapped kernel shared by the correlation and cosine paths.
func cosimFill(n int, x []float64, o *Options) error {
	norms, err := o.scratch.Acquire(n)
	if err != nil {
		return ErrOutOfMemory
	}
	defer o.scratch.Release(norms)

	var i, j int
	for j = 0; j < n; j++ {
		norms[j] = math.Sqrt(x[j+n*j])
	}

	for j = 0; j < n; j++ {
		col := x[n*j : n*j+n]
		nj := norms[j]
		col[j] /= col[j]
		for i = j + 1; i < n; i++ {
			col[i] /= norms[i] * nj
		}
	}

	return nil
}

// ReplaceNonFinite overwrites every NaN or ±Inf in x with val and returns how many
// entries changed. val must be finite (ErrNaNInf otherwise; x is untouched).
// Complexity: O(len(x)).
func ReplaceNonFinite(x []float64, val float64) (int, error) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, matrixErrorf("ReplaceNonFinite", ErrNaNInf)
	}

	replaced := 0
	for k, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			x[k] = val
			replaced++
		}
	}

	return replaced, nil
}
