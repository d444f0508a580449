// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for the checks performed by the
//    facades. The in-place engine itself trusts its inputs and never calls these.
//  - Return plain sentinel errors wrapped with the validator tag so call sites can
//    wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil or m is a nil *Dense.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare ensures m is non-nil and square.
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures x and y have the same length.
func ValidateVecLen(x, y []float64) error {
	if len(x) != len(y) {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("%d vs %d: %w", len(x), len(y), ErrDimensionMismatch))
	}

	return nil
}

// ValidateBuffers ensures an m×n input buffer and an n×n output buffer are large
// enough for the in-place routines.
func ValidateBuffers(m, n int, x, out []float64) error {
	if m < 0 || n < 0 {
		return validatorErrorf("ValidateBuffers", ErrInvalidDimensions)
	}
	if len(x) < m*n || len(out) < n*n {
		return validatorErrorf("ValidateBuffers", ErrDimensionMismatch)
	}

	return nil
}

// IsSymmetric reports whether the square matrix m satisfies |m[i,j]-m[j,i]| <= eps
// for all i, j. NaN entries compare equal to NaN so degenerate statistics still
// count as symmetric. Non-square or nil input returns false.
// Complexity: O(n²/2).
func IsSymmetric(m Matrix, eps float64) bool {
	if ValidateSquare(m) != nil {
		return false
	}

	n := m.Rows()
	var i, j int
	var a, b float64
	for j = 0; j < n; j++ {
		for i = j + 1; i < n; i++ {
			a, _ = m.At(i, j)
			b, _ = m.At(j, i)
			if math.IsNaN(a) && math.IsNaN(b) {
				continue
			}
			if !(math.Abs(a-b) <= eps) {
				return false
			}
		}
	}

	return true
}
