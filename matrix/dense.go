// SPDX-License-Identifier: MIT
// Package matrix provides the dense storage used by the pairwise statistics engine.
// Dense is a column-major implementation of the Matrix interface: column j occupies
// data[j*r : (j+1)*r], so every variable is one contiguous slice.
package matrix

import (
	"fmt"
	"strings"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a column-major matrix of float64 values.
// r is rows (observations), c is columns (variables), data holds r*c elements.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, len == r*c, column-major
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols are non-negative.
// Stage 2 (Prepare): allocate flat backing slice.
// Zero-sized shapes are legal (0×n, n×0) and hold no data.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom wraps a column-major buffer WITHOUT copying it.
// The caller keeps ownership; later writes to data are visible through the Dense.
// Returns ErrInvalidDimensions if len(data) != rows*cols.
// Complexity: O(1).
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseFromColumns copies equal-length columns into a new Dense.
// Returns ErrDimensionMismatch when the columns differ in length.
// Complexity: O(r*c).
func NewDenseFromColumns(cols ...[]float64) (*Dense, error) {
	if len(cols) == 0 {
		return &Dense{}, nil
	}
	r := len(cols[0])
	d := &Dense{r: r, c: len(cols), data: make([]float64, r*len(cols))}
	for j, col := range cols {
		if len(col) != r {
			return nil, ErrDimensionMismatch
		}
		copy(d.data[j*r:(j+1)*r], col)
	}

	return d, nil
}

// NewDenseFromRows copies row-major records (one observation per row) into a
// column-major Dense. This is the natural shape of CSV-style input.
// Returns ErrDimensionMismatch when the rows are ragged.
// Complexity: O(r*c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return &Dense{}, nil
	}
	r, c := len(rows), len(rows[0])
	d := &Dense{r: r, c: c, data: make([]float64, r*c)}
	for i, row := range rows {
		if len(row) != c {
			return nil, ErrDimensionMismatch
		}
		for j, v := range row {
			d.data[i+j*r] = v
		}
	}

	return d, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// RawData exposes the column-major backing slice (no copy).
// Intended for the in-place routines; mutating it mutates the matrix.
func (m *Dense) RawData() []float64 { return m.data }

// Col returns column j as a subslice of the backing storage (no copy).
// Returns ErrOutOfRange for invalid j.
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf("Col", 0, j, ErrOutOfRange)
	}

	return m.data[j*m.r : (j+1)*m.r], nil
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row + col*m.r, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// String implements fmt.Stringer, one bracketed row per line.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteByte('[')
		for j = 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", m.data[i+j*m.r])
		}
		b.WriteString("]\n")
	}

	return b.String()
}

// toColumnMajor returns the column-major data of X. For *Dense it is the backing
// slice itself; for any other Matrix the values are copied through At.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func toColumnMajor(X Matrix) ([]float64, error) {
	if d, ok := X.(*Dense); ok {
		return d.data, nil
	}

	r, c := X.Rows(), X.Cols()
	out := make([]float64, r*c)
	var i, j int
	var v float64
	var err error
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			if v, err = X.At(i, j); err != nil {
				return nil, err
			}
			out[i+j*r] = v
		}
	}

	return out, nil
}
