// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Matrix- and slice-level entry points that validate their inputs, allocate the
//     output, and delegate to the in-place engine.
//   - Keep function names explicit and intention-revealing.
//
// Determinism & Policy:
//   - Facades never change loop orders or numeric policy of the engine.
//   - Validation happens here only: nil -> shape/length -> selector.
//
// AI-Hints:
//   - Prefer passing *Dense to skip the At-based copy into column-major order.
//   - Use the *InPlace functions directly when the output buffer is reused.

package matrix

// Covariance returns the c×c sample covariance matrix of the columns of X.
// Errors: ErrNilMatrix, wrapped At errors, ErrOutOfMemory.
func Covariance(X Matrix, opts ...Option) (*Dense, error) {
	return pairwise(opCovariance, StatCovariance, X, opts)
}

// Correlation returns the c×c Pearson correlation matrix of the columns of X.
func Correlation(X Matrix, opts ...Option) (*Dense, error) {
	return pairwise(opCorrelation, StatCorrelation, X, opts)
}

// Cosine returns the c×c cosine similarity matrix of the columns of X.
func Cosine(X Matrix, opts ...Option) (*Dense, error) {
	return pairwise(opCosine, StatCosine, X, opts)
}

// Pairwise returns the c×c matrix of stat over the columns of X.
func Pairwise(stat Statistic, X Matrix, opts ...Option) (*Dense, error) {
	return pairwise(opPairwise, stat, X, opts)
}

// pairwise is the shared facade body.
// Implementation:
//   - Stage 1: Validate X and the selector.
//   - Stage 2: Obtain column-major input (zero-copy for *Dense).
//   - Stage 3: Allocate the c×c output and run the in-place engine.
func pairwise(op string, stat Statistic, X Matrix, opts []Option) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(op, err)
	}
	if !stat.valid() {
		return nil, matrixErrorf(op, ErrBadStatistic)
	}

	r, c := X.Rows(), X.Cols()
	data, err := toColumnMajor(X)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	out := make([]float64, c*c)
	if err = PairwiseInPlace(stat, r, c, data, out, opts...); err != nil {
		return nil, matrixErrorf(op, err)
	}

	return &Dense{r: c, c: c, data: out}, nil
}

// ColumnMeans returns the arithmetic mean of every column of X.
func ColumnMeans(X Matrix, opts ...Option) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}

	data, err := toColumnMajor(X)
	if err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	means := make([]float64, X.Cols())
	ColumnMeansInPlace(X.Rows(), X.Cols(), data, means, opts...)

	return means, nil
}

// VecCovariance is CovarianceVec with a length check.
func VecCovariance(x, y []float64) (float64, error) {
	return vecPairwise(opCovariance, StatCovariance, x, y)
}

// VecCorrelation is CorrelationVec with a length check.
func VecCorrelation(x, y []float64) (float64, error) {
	return vecPairwise(opCorrelation, StatCorrelation, x, y)
}

// VecCosine is CosineVec with a length check.
func VecCosine(x, y []float64) (float64, error) {
	return vecPairwise(opCosine, StatCosine, x, y)
}

func vecPairwise(op string, stat Statistic, x, y []float64) (float64, error) {
	if err := ValidateVecLen(x, y); err != nil {
		return 0, matrixErrorf(op, err)
	}
	v, err := PairwiseVec(stat, x, y)
	if err != nil {
		return 0, matrixErrorf(op, err)
	}

	return v, nil
}

// CheckedPairwiseInPlace validates the buffer sizes with ValidateBuffers before
// running PairwiseInPlace. Intended for callers that receive raw buffers from an
// untrusted boundary.
func CheckedPairwiseInPlace(stat Statistic, m, n int, x, out []float64, opts ...Option) error {
	if err := ValidateBuffers(m, n, x, out); err != nil {
		return matrixErrorf(opPairwise, err)
	}

	return PairwiseInPlace(stat, m, n, x, out, opts...)
}
