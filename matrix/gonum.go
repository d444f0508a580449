// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Bridge Dense to gonum.org/v1/gonum/mat so results can flow into gonum
//     decompositions (eigen, Cholesky) and gonum matrices can be fed to the engine.

package matrix

import "gonum.org/v1/gonum/mat"

// FromGonum copies any gonum matrix into a new column-major Dense.
// Complexity: O(r*c).
func FromGonum(a mat.Matrix) *Dense {
	r, c := a.Dims()
	d := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var i, j int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			d.data[i+j*r] = a.At(i, j)
		}
	}

	return d
}

// ToGonum copies m into a new row-major *mat.Dense.
// Panics inside gonum if m has a zero dimension (gonum forbids empty matrices).
func (m *Dense) ToGonum() *mat.Dense {
	out := mat.NewDense(m.r, m.c, nil)
	var i, j int
	for j = 0; j < m.c; j++ {
		for i = 0; i < m.r; i++ {
			out.Set(i, j, m.data[i+j*m.r])
		}
	}

	return out
}

// SymDense copies a square, symmetric m into a *mat.SymDense.
// Only the triangle with row <= column is read, as gonum stores the upper half;
// for the engine's symmetrized outputs both halves are identical.
// Returns ErrNonSquare for non-square input. Panics inside gonum for n == 0.
func (m *Dense) SymDense() (*mat.SymDense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("SymDense", err)
	}

	n := m.r
	out := mat.NewSymDense(n, nil)
	var i, j int
	for j = 0; j < n; j++ {
		for i = 0; i <= j; i++ {
			out.SetSym(i, j, m.data[i+j*n])
		}
	}

	return out, nil
}
