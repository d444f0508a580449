// SPDX-License-Identifier: MIT

// Package matrix computes pairwise association statistics between the columns of
// a dense matrix: sample covariance, Pearson correlation and cosine similarity.
//
// The package provides:
//
//   - An in-place engine (CovarianceInPlace, CorrelationInPlace, CosineInPlace)
//     over caller-owned column-major buffers with O(m+n) scratch memory. Only the
//     row >= column triangle is computed; Symmetrize mirrors it.
//   - Vector-pair statistics with O(1) storage (CovarianceVec, CorrelationVec,
//     CosineVec).
//   - The post-processing steps CosimFill and Symmetrize.
//   - Dense, a column-major Matrix, and validating facades (Covariance,
//     Correlation, Cosine, Pairwise) that allocate the result.
//
// Parallelism is fork-join over a workerpool.Pool and is enabled only when m*n
// exceeds the threshold set with WithParallelThreshold. The only runtime error the
// engine reports is ErrOutOfMemory; degenerate inputs (m <= 1, constant columns)
// propagate NaN/Inf instead of failing.
package matrix
