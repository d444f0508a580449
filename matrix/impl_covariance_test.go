// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coop/matrix"
)

// ------------------------------
// Concrete scenarios
// ------------------------------

func TestCovarianceInPlace_Reversed(t *testing.T) {
	t.Parallel()

	// columns [1,2,3,4] and [4,3,2,1]
	x := []float64{1, 2, 3, 4, 4, 3, 2, 1}
	cov := make([]float64, 4)
	require.NoError(t, matrix.CovarianceInPlace(4, 2, x, cov, matrix.WithSequential()))

	requireAllClose(t, []float64{5.0 / 3, -5.0 / 3, -5.0 / 3, 5.0 / 3}, cov, epsTight)
	require.Equal(t, []float64{1, 2, 3, 4, 4, 3, 2, 1}, x, "input must not be mutated")
}

func TestCorrelationInPlace_Reversed(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3, 4, 4, 3, 2, 1}
	cor := make([]float64, 4)
	require.NoError(t, matrix.CorrelationInPlace(4, 2, x, cor))

	require.Equal(t, 1.0, cor[0])
	require.Equal(t, 1.0, cor[3])
	requireAllClose(t, []float64{1, -1, -1, 1}, cor, epsTight)
}

func TestCovarianceInPlace_SingleObservationIsNonFinite(t *testing.T) {
	t.Parallel()

	x := []float64{3, 7}
	cov := make([]float64, 4)
	require.NoError(t, matrix.CovarianceInPlace(1, 2, x, cov))
	for k, v := range cov {
		require.Truef(t, math.IsNaN(v) || math.IsInf(v, 0), "cov[%d]=%g must be non-finite", k, v)
	}

	require.True(t, math.IsNaN(matrix.CovarianceVec([]float64{3}, []float64{7})))
}

func TestCorrelationInPlace_ConstantColumnPropagatesNaN(t *testing.T) {
	t.Parallel()

	x := []float64{
		1, 2, 3, 4, // varying
		5, 5, 5, 5, // constant
	}
	cor := make([]float64, 4)
	require.NoError(t, matrix.CorrelationInPlace(4, 2, x, cor))
	require.Equal(t, 1.0, cor[0])
	require.True(t, math.IsNaN(cor[1]))
	require.True(t, math.IsNaN(cor[2]))
	require.True(t, math.IsNaN(cor[3]))
}

// ------------------------------
// Properties
// ------------------------------

func TestCovarianceInPlace_SymmetricAndVarianceDiagonal(t *testing.T) {
	t.Parallel()

	const m, n = 37, 9
	x := randomColumns(1, m, n, 1e3)
	cov := make([]float64, n*n)
	require.NoError(t, matrix.CovarianceInPlace(m, n, x, cov))

	requireSymmetricBits(t, n, cov)
	for j := 0; j < n; j++ {
		want := sampleVariance(column(x, m, j))
		require.InDeltaf(t, want, cov[j+n*j], epsLoose*math.Max(1, want), "var col %d", j)
	}
}

func TestCorrelationInPlace_BoundsAndUnitDiagonal(t *testing.T) {
	t.Parallel()

	const m, n = 50, 12
	x := randomColumns(2, m, n, -40)
	cor := make([]float64, n*n)
	require.NoError(t, matrix.CorrelationInPlace(m, n, x, cor))

	requireSymmetricBits(t, n, cor)
	for j := 0; j < n; j++ {
		require.Equal(t, 1.0, cor[j+n*j])
		for i := 0; i < n; i++ {
			v := cor[i+n*j]
			require.LessOrEqual(t, v, 1+epsTight)
			require.GreaterOrEqual(t, v, -1-epsTight)
		}
	}
}

func TestCorrelation_ScaleInvariance(t *testing.T) {
	t.Parallel()

	const m, n, alpha = 25, 4, 3.5
	x := randomColumns(3, m, n, 10)
	scaled := append([]float64(nil), x...)
	for k := 0; k < m; k++ {
		scaled[k] *= alpha // column 0
	}

	cor, corS := make([]float64, n*n), make([]float64, n*n)
	cov, covS := make([]float64, n*n), make([]float64, n*n)
	require.NoError(t, matrix.CorrelationInPlace(m, n, x, cor))
	require.NoError(t, matrix.CorrelationInPlace(m, n, scaled, corS))
	require.NoError(t, matrix.CovarianceInPlace(m, n, x, cov))
	require.NoError(t, matrix.CovarianceInPlace(m, n, scaled, covS))

	requireAllClose(t, cor, corS, epsLoose)

	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			factor := 1.0
			if i == 0 {
				factor *= alpha
			}
			if j == 0 {
				factor *= alpha
			}
			want := cov[i+n*j] * factor
			require.InDeltaf(t, want, covS[i+n*j], epsLoose*math.Max(1, math.Abs(want)), "(%d,%d)", i, j)
		}
	}
}

func TestCovariance_PermutationInvariance(t *testing.T) {
	t.Parallel()

	const m, n = 20, 5
	x := randomColumns(4, m, n, 7)
	perm := []int{3, 0, 4, 1, 2}
	xp := make([]float64, m*n)
	for j, src := range perm {
		copy(xp[m*j:m*j+m], x[m*src:m*src+m])
	}

	cov, covP := make([]float64, n*n), make([]float64, n*n)
	require.NoError(t, matrix.CovarianceInPlace(m, n, x, cov))
	require.NoError(t, matrix.CovarianceInPlace(m, n, xp, covP))

	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			require.InDelta(t, cov[perm[i]+n*perm[j]], covP[i+n*j], epsTight*100)
		}
	}
}

func TestCovariance_VectorPairMatchesMatrix(t *testing.T) {
	t.Parallel()

	const m, n = 64, 6
	x := randomColumns(5, m, n, 250)
	cov := make([]float64, n*n)
	require.NoError(t, matrix.CoMatUpper_TestOnly(m, n, x, cov, true))

	for j := 0; j < n; j++ {
		for i := j + 1; i < n; i++ {
			want := matrix.CovarianceVec(column(x, m, i), column(x, m, j))
			require.InDeltaf(t, want, cov[i+n*j], epsLoose, "pair (%d,%d)", i, j)
		}
	}
}

func TestCoMatUpper_WritesOnlyLowerIndexTriangle(t *testing.T) {
	t.Parallel()

	const m, n = 10, 4
	x := randomColumns(6, m, n, 0)
	out := filled(n*n, 42)
	require.NoError(t, matrix.CoMatUpper_TestOnly(m, n, x, out, true))

	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if i < j {
				require.Equalf(t, 42.0, out[i+n*j], "cell (%d,%d) above the computed triangle was written", i, j)
			} else {
				require.NotEqual(t, 42.0, out[i+n*j])
			}
		}
	}
}

// ------------------------------
// Parallelism
// ------------------------------

func TestCovarianceInPlace_ParallelMatchesSequentialBitwise(t *testing.T) {
	t.Parallel()

	const m, n = 300, 17
	x := randomColumns(7, m, n, 3)

	seq := make([]float64, n*n)
	par := make([]float64, n*n)
	shared := make([]float64, n*n)
	require.NoError(t, matrix.CovarianceInPlace(m, n, x, seq, matrix.WithSequential()))
	require.NoError(t, matrix.CovarianceInPlace(m, n, x, par, matrix.WithParallelThreshold(0), matrix.WithWorkers(5)))

	pool := workerpool.New(3)
	defer pool.Close()
	require.NoError(t, matrix.CovarianceInPlace(m, n, x, shared, matrix.WithParallelThreshold(0), matrix.WithPool(pool)))

	require.Equal(t, seq, par)
	require.Equal(t, seq, shared)
}

func TestCorrelationAndCosine_ParallelMatchesSequentialBitwise(t *testing.T) {
	t.Parallel()

	const m, n = 120, 11
	x := randomColumns(8, m, n, -2)
	for _, stat := range []matrix.Statistic{matrix.StatCorrelation, matrix.StatCosine} {
		seq := make([]float64, n*n)
		par := make([]float64, n*n)
		require.NoError(t, matrix.PairwiseInPlace(stat, m, n, x, seq, matrix.WithSequential()))
		require.NoError(t, matrix.PairwiseInPlace(stat, m, n, x, par, matrix.WithParallelThreshold(0)))
		require.Equal(t, seq, par, stat.String())
	}
}

func TestPool_ReusedAcrossCalls(t *testing.T) {
	t.Parallel()

	pool := workerpool.New(4)
	defer pool.Close()

	x := []float64{1, 2, 3, 4, 4, 3, 2, 1}
	for range 10 {
		cov := make([]float64, 4)
		require.NoError(t, matrix.CovarianceInPlace(4, 2, x, cov, matrix.WithParallelThreshold(0), matrix.WithPool(pool)))
		require.InDelta(t, -5.0/3, cov[1], epsTight)
	}
}

// ------------------------------
// Scratch lifecycle / out-of-memory
// ------------------------------

func TestCovarianceInPlace_WorkingBufferFailureReleasesMeans(t *testing.T) {
	t.Parallel()

	x := randomColumns(9, 8, 3, 0)
	cov := filled(9, 42)
	s := &countingScratch{failOn: 2}

	err := matrix.CovarianceInPlace(8, 3, x, cov, matrix.WithScratch(s))
	require.ErrorIs(t, err, matrix.ErrOutOfMemory)
	require.Equal(t, matrix.CodeOutOfMemory, matrix.ErrorCode(err))
	require.Equal(t, []int{3, 8}, s.requests, "means (n) first, working column (m) second")
	require.Zero(t, s.live, "no scratch buffer may stay acquired")
	require.Equal(t, filled(9, 42), cov, "output must be left untouched")
}

func TestCovarianceInPlace_MeansFailure(t *testing.T) {
	t.Parallel()

	cov := filled(4, 42)
	s := &countingScratch{failOn: 1}
	err := matrix.CovarianceInPlace(4, 2, []float64{1, 2, 3, 4, 4, 3, 2, 1}, cov, matrix.WithScratch(s))
	require.ErrorIs(t, err, matrix.ErrOutOfMemory)
	require.Zero(t, s.live)
	require.Equal(t, 1, s.calls)
	require.Equal(t, filled(4, 42), cov)
}

func TestCorrelationInPlace_NormFailureReleasesEverything(t *testing.T) {
	t.Parallel()

	s := &countingScratch{failOn: 3}
	cor := make([]float64, 4)
	err := matrix.CorrelationInPlace(4, 2, []float64{1, 2, 3, 4, 4, 3, 2, 1}, cor, matrix.WithScratch(s))
	require.ErrorIs(t, err, matrix.ErrOutOfMemory)
	require.Zero(t, s.live)
	require.Equal(t, 3, s.calls)
}

func TestCovarianceInPlace_SuccessReleasesEverything(t *testing.T) {
	t.Parallel()

	s := &countingScratch{}
	cov := make([]float64, 4)
	require.NoError(t, matrix.CovarianceInPlace(4, 2, []float64{1, 2, 3, 4, 4, 3, 2, 1}, cov, matrix.WithScratch(s)))
	require.Equal(t, 2, s.calls)
	require.Zero(t, s.live)
}

func TestCovarianceInPlace_ScratchLimit(t *testing.T) {
	t.Parallel()

	cov := make([]float64, 4)
	err := matrix.CovarianceInPlace(4, 2, []float64{1, 2, 3, 4, 4, 3, 2, 1}, cov, matrix.WithScratchLimit(3))
	require.ErrorIs(t, err, matrix.ErrOutOfMemory)

	require.NoError(t, matrix.CovarianceInPlace(4, 2, []float64{1, 2, 3, 4, 4, 3, 2, 1}, cov, matrix.WithScratchLimit(4)))
}

// ------------------------------
// Cosine / dispatch / column means
// ------------------------------

func TestCosineInPlace_Basics(t *testing.T) {
	t.Parallel()

	x := []float64{
		1, 0, // e1
		0, 1, // e2
		2, 2, // diagonal
	}
	out := make([]float64, 9)
	require.NoError(t, matrix.CosineInPlace(2, 3, x, out))

	s := 1 / math.Sqrt2
	requireAllClose(t, []float64{
		1, 0, s,
		0, 1, s,
		s, s, 1,
	}, out, epsTight)
}

func TestCosineInPlace_MatchesVectorPairOnOddLengths(t *testing.T) {
	t.Parallel()

	// lengths that are not multiples of any SIMD width exercise the tails
	for _, m := range []int{1, 3, 7, 13, 37} {
		const n = 5
		x := randomColumns(int64(m), m, n, 1)
		out := make([]float64, n*n)
		require.NoError(t, matrix.CosineInPlace(m, n, x, out))

		for j := 0; j < n; j++ {
			for i := j; i < n; i++ {
				want := matrix.CosineVec(column(x, m, i), column(x, m, j))
				require.InDeltaf(t, want, out[i+n*j], epsLoose, "m=%d (%d,%d)", m, i, j)
			}
		}
	}
}

func TestPairwiseInPlace_BadStatistic(t *testing.T) {
	t.Parallel()

	out := filled(4, 42)
	err := matrix.PairwiseInPlace(matrix.Statistic(9), 4, 2, []float64{1, 2, 3, 4, 4, 3, 2, 1}, out)
	require.ErrorIs(t, err, matrix.ErrBadStatistic)
	require.Equal(t, matrix.CodeInvalid, matrix.ErrorCode(err))
	require.Equal(t, filled(4, 42), out)
}

func TestColumnMeansInPlace(t *testing.T) {
	t.Parallel()

	const m, n = 40, 30
	x := randomColumns(10, m, n, 5)
	seq := make([]float64, n)
	par := make([]float64, n)
	matrix.ColumnMeansInPlace(m, n, x, seq, matrix.WithSequential())
	matrix.ColumnMeansInPlace(m, n, x, par, matrix.WithParallelThreshold(0))
	require.Equal(t, seq, par)

	for j := 0; j < n; j++ {
		var s float64
		for _, v := range column(x, m, j) {
			s += v
		}
		require.InDelta(t, s/m, seq[j], epsLoose)
	}
}

func BenchmarkCovarianceInPlace(b *testing.B) {
	const m, n = 1000, 100
	x := randomColumns(11, m, n, 1)
	cov := make([]float64, n*n)
	pool := workerpool.New(0)
	defer pool.Close()
	b.ResetTimer()
	for range b.N {
		_ = matrix.CovarianceInPlace(m, n, x, cov, matrix.WithPool(pool))
	}
}
