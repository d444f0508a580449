// SPDX-License-Identifier: MIT

package sparse

import "math"

// SparsityFloat counts the entries of the column-major m×n buffer x whose
// magnitude is below tol. A tol of 0 counts nothing; pass a small positive
// value (e.g. machine epsilon) to count exact and near zeros.
// Complexity: O(m*n).
func SparsityFloat(m, n int, x []float64, tol float64) int {
	count := 0
	for _, v := range x[:m*n] {
		if math.Abs(v) < tol {
			count++
		}
	}

	return count
}

// SparsityInt counts the exact zeros of the m×n buffer x.
func SparsityInt(m, n int, x []int32) int {
	count := 0
	for _, v := range x[:m*n] {
		if v == 0 {
			count++
		}
	}

	return count
}

// Density returns the fraction of non-zero entries, 1 - zeros/(m*n).
// An empty shape has density 0.
func Density(m, n, zeros int) float64 {
	if m*n == 0 {
		return 0
	}

	return 1 - float64(zeros)/float64(m*n)
}
