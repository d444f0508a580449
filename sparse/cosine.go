// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Cosine similarity between the columns of an m×n matrix held in coordinate
//     (COO) form, written as a dense n×n column-major buffer.
//
// Implementation:
//   - The triplets are regrouped by column (counting sort), each column is sorted
//     by row and duplicate coordinates are summed, so every column becomes a
//     strictly increasing run of (row, value).
//   - Cross-products are merge-joins of two runs; the i >= j triangle is filled
//     with the same loop driver as the dense engine, then normalized by
//     matrix.CosimFill and mirrored by matrix.Symmetrize.

package sparse

import (
	"sort"

	"github.com/katalvlaran/coop/matrix"
)

const opCosineCOO = "CosineCOO"

// CosineCOO writes the n×n cosine similarity matrix of the columns of the sparse
// matrix (a[k] at rows[k], cols[k]) into out. base is the index base of rows and
// cols: 0 for C-style indices, 1 for Fortran/Matrix-Market style.
// Columns without stored entries (or whose entries sum to zero) yield NaN
// rows/columns, as in the dense case.
//
// Errors:
//   - ErrBadIndexBase, ErrLengthMismatch, ErrIndexOutOfRange on malformed input;
//     out is untouched.
//   - matrix.ErrOutOfMemory when the value buffer cannot be acquired.
//
// Complexity: O(nnz log nnz + n² * avg column length) time, O(nnz + n) space.
func CosineCOO(base, n int, a []float64, rows, cols []int32, out []float64, opts ...matrix.Option) error {
	if base != 0 && base != 1 {
		return sparseErrorf(opCosineCOO, ErrBadIndexBase)
	}
	if len(rows) != len(a) || len(cols) != len(a) {
		return sparseErrorf(opCosineCOO, ErrLengthMismatch)
	}

	o := matrix.NewOptions(opts...)
	cs, err := groupColumns(base, n, a, rows, cols, o.Scratch())
	if err != nil {
		return sparseErrorf(opCosineCOO, err)
	}
	defer o.Scratch().Release(cs.vals)

	run, release := o.Runner(len(a), n)
	var j int
	for j = 0; j < n; j++ {
		col := out[n*j : n*j+n]
		lo := j
		run(n-j, func(start, end int) {
			for i := lo + start; i < lo+end; i++ {
				col[i] = cs.dot(i, lo)
			}
		})
	}
	release()

	if err = matrix.CosimFill(n, out, opts...); err != nil {
		return sparseErrorf(opCosineCOO, err)
	}
	matrix.Symmetrize(n, out)

	return nil
}

// columns is a compressed-column view: column c occupies rows[ptr[c]:end[c]]
// and vals[ptr[c]:end[c]], strictly increasing in row.
type columns struct {
	ptr  []int
	end  []int
	rows []int32
	vals []float64
}

// groupColumns validates indices and builds the compressed-column view.
// The value buffer comes from scratch and must be released by the caller.
func groupColumns(base, n int, a []float64, rows, cols []int32, scratch matrix.Scratch) (columns, error) {
	nnz := len(a)
	ptr := make([]int, n+1)
	for k := 0; k < nnz; k++ {
		c := int(cols[k]) - base
		if c < 0 || c >= n || int(rows[k])-base < 0 {
			return columns{}, ErrIndexOutOfRange
		}
		ptr[c+1]++
	}
	for c := 0; c < n; c++ {
		ptr[c+1] += ptr[c]
	}

	vals, err := scratch.Acquire(nnz)
	if err != nil {
		return columns{}, matrix.ErrOutOfMemory
	}
	cs := columns{
		ptr:  ptr[:n],
		end:  make([]int, n),
		rows: make([]int32, nnz),
		vals: vals,
	}

	next := make([]int, n)
	copy(next, ptr[:n])
	for k := 0; k < nnz; k++ {
		c := int(cols[k]) - base
		p := next[c]
		cs.rows[p] = rows[k] - int32(base)
		cs.vals[p] = a[k]
		next[c]++
	}

	for c := 0; c < n; c++ {
		cs.end[c] = cs.compact(ptr[c], ptr[c+1])
	}

	return cs, nil
}

// compact sorts [lo, hi) by row, sums duplicates, and returns the new end.
func (cs columns) compact(lo, hi int) int {
	if hi-lo < 2 {
		return hi
	}
	sort.Sort(byRow{rows: cs.rows[lo:hi], vals: cs.vals[lo:hi]})

	w := lo
	for r := lo + 1; r < hi; r++ {
		if cs.rows[r] == cs.rows[w] {
			cs.vals[w] += cs.vals[r]
			continue
		}
		w++
		cs.rows[w] = cs.rows[r]
		cs.vals[w] = cs.vals[r]
	}

	return w + 1
}

// dot is the merge-join cross-product of columns i and j.
func (cs columns) dot(i, j int) float64 {
	p, pe := cs.ptr[i], cs.end[i]
	q, qe := cs.ptr[j], cs.end[j]

	var s float64
	for p < pe && q < qe {
		switch {
		case cs.rows[p] < cs.rows[q]:
			p++
		case cs.rows[p] > cs.rows[q]:
			q++
		default:
			s += cs.vals[p] * cs.vals[q]
			p++
			q++
		}
	}

	return s
}

// byRow sorts parallel row/value slices by row.
type byRow struct {
	rows []int32
	vals []float64
}

func (b byRow) Len() int           { return len(b.rows) }
func (b byRow) Less(i, j int) bool { return b.rows[i] < b.rows[j] }
func (b byRow) Swap(i, j int) {
	b.rows[i], b.rows[j] = b.rows[j], b.rows[i]
	b.vals[i], b.vals[j] = b.vals[j], b.vals[i]
}
