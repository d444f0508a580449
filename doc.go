// Package coop computes co-operation matrices: all-pairs covariance, Pearson
// correlation and cosine similarity between the columns of a data matrix.
//
// What is inside?
//
//	A small, allocation-aware toolkit:
//		• In-place engine: caller-owned column-major buffers, O(m+n) scratch
//		• Vector pairs: covariance / correlation / cosine with O(1) storage
//		• Sparse input: cosine similarity of COO matrices, CSC→COO, sparsity
//		• Fork-join parallelism (go-highway workerpool) above a size threshold
//		• A CLI for CSV files, single or batched
//
// Under the hood, everything is organized under a few subpackages:
//
//	matrix/     — Dense, the in-place engine, Symmetrize / CosimFill, facades
//	sparse/     — sparsity counts, CSCToCOO, CosineCOO
//	cmd/coop/   — command-line front end (cov, cor, cos, batch, sparsity, info)
//
// Quick layout example (m = 4 observations, n = 2 variables, column-major):
//
//	x = [1 2 3 4 | 4 3 2 1]
//
//	cov = [ 5/3  -5/3 ]      cor = [  1  -1 ]
//	      [-5/3   5/3 ]            [ -1   1 ]
//
//	go get github.com/katalvlaran/coop/matrix
package coop
