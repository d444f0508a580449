// SPDX-License-Identifier: MIT

// Package sparse holds the sparse-matrix companions of the dense engine:
// zero-counting (sparsity) for dense buffers, compressed-sparse-column to
// coordinate index expansion, and cosine similarity between the columns of a
// coordinate-format (COO) matrix.
//
// Indices are int32, matching the layout produced by common CSC/COO exporters.
// The cosine routine shares the matrix package's options (threshold, pool,
// scratch) and its post-processing (CosimFill, Symmetrize).
package sparse
