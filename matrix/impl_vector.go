// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Statistics of a single pair of equal-length vectors with O(1) extra storage:
//     no heap allocation, no error path.
//
// Numeric policy:
//   - Two passes: SIMD sums of both vectors for the means, then one fused pass over
//     the centered products. This avoids the cancellation of the one-pass
//     Σxy − n·x̄·ȳ formula when the means are far from zero.
//   - n = len(x); y is trusted to hold at least n values.

package matrix

import (
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/vec"

	"github.com/katalvlaran/coop/internal/kernel"
)

// CovarianceVec returns the sample covariance Σ(x−x̄)(y−ȳ)/(n−1).
// n <= 1 yields NaN or ±Inf.
func CovarianceVec(x, y []float64) float64 {
	n := len(x)
	mx, my := vecMeans(x, y)

	return kernel.CenteredCross(x, y, mx, my) / float64(n-1)
}

// CorrelationVec returns the Pearson correlation of x and y.
// A constant vector yields NaN.
func CorrelationVec(x, y []float64) float64 {
	mx, my := vecMeans(x, y)
	y = y[:len(x)]

	var sxy, sxx, syy, dx, dy float64
	for k := range x {
		dx = x[k] - mx
		dy = y[k] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	return sxy / (math.Sqrt(sxx) * math.Sqrt(syy))
}

// CosineVec returns Σxy / (‖x‖‖y‖). An all-zero vector yields NaN.
func CosineVec(x, y []float64) float64 {
	y = y[:len(x)]

	var sxy, sxx, syy float64
	for k := range x {
		sxy += x[k] * y[k]
		sxx += x[k] * x[k]
		syy += y[k] * y[k]
	}

	return sxy / (math.Sqrt(sxx) * math.Sqrt(syy))
}

// PairwiseVec dispatches on stat for a vector pair.
func PairwiseVec(stat Statistic, x, y []float64) (float64, error) {
	switch stat {
	case StatCovariance:
		return CovarianceVec(x, y), nil
	case StatCorrelation:
		return CorrelationVec(x, y), nil
	case StatCosine:
		return CosineVec(x, y), nil
	default:
		return 0, matrixErrorf(opPairwise, ErrBadStatistic)
	}
}

// vecMeans computes both means; y is cut to len(x).
func vecMeans(x, y []float64) (float64, float64) {
	n := len(x)
	sx, sy := vec.SumFloat64(x), vec.SumFloat64(y[:n])
	inv := 1.0 / float64(n)

	return sx * inv, sy * inv
}
