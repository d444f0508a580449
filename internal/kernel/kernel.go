// SPDX-License-Identifier: MIT
// Package kernel holds the centered dot products of the pairwise statistics engine.
//
// Purpose:
//   - Σ w[k]*(x[k]-mean) with the mean of x subtracted on the fly, so column i of
//     the caller's input is never copied or mutated per pair.
//   - Σ (x[k]-mx)*(y[k]-my) for the vector-pair covariance.
//   - Plain sums, dots and constant shifts come from go-highway's hwy/contrib/vec;
//     these two fused forms have no counterpart there.
//   - Multiple independent accumulators break the floating-point add dependency
//     chain. The number of lanes is chosen once at init from golang.org/x/sys/cpu.
//
// Determinism:
//   - For a fixed Level the summation order is fixed, so results are reproducible
//     run to run on the same machine. Different levels may differ in the last ulps.
package kernel

import "golang.org/x/sys/cpu"

// Level identifies the accumulator width used by the kernels.
type Level int

const (
	// Scalar uses a single accumulator.
	Scalar Level = 1
	// Unroll4 uses four accumulators (AVX2 / ASIMD class hardware).
	Unroll4 Level = 4
	// Unroll8 uses eight accumulators (AVX-512 class hardware).
	Unroll8 Level = 8
)

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case Scalar:
		return "scalar"
	case Unroll4:
		return "unroll4"
	case Unroll8:
		return "unroll8"
	default:
		return "unknown"
	}
}

var level = detect()

// detect maps CPU features to an accumulator width.
func detect() Level {
	switch {
	case cpu.X86.HasAVX512F:
		return Unroll8
	case cpu.X86.HasAVX2, cpu.ARM64.HasASIMD:
		return Unroll4
	default:
		return Scalar
	}
}

// Current returns the level selected at init.
func Current() Level { return level }

// CenteredDot returns Σ w[k]*(x[k]-mean) over k < len(w).
// w is typically a column that was already centered in a scratch buffer.
func CenteredDot(w, x []float64, mean float64) float64 { return CenteredDotAt(level, w, x, mean) }

// CenteredDotAt is CenteredDot at the given level.
func CenteredDotAt(l Level, w, x []float64, mean float64) float64 {
	switch l {
	case Unroll8:
		return centeredDot8(w, x, mean)
	case Unroll4:
		return centeredDot4(w, x, mean)
	default:
		return centeredDot1(w, x, mean)
	}
}

// CenteredCross returns Σ (x[k]-mx)*(y[k]-my) over k < len(x).
func CenteredCross(x, y []float64, mx, my float64) float64 {
	y = y[:len(x)]
	if level == Scalar {
		var s float64
		for k := range x {
			s += (x[k] - mx) * (y[k] - my)
		}
		return s
	}

	var s0, s1, s2, s3 float64
	n := len(x)
	k := 0
	for ; k+4 <= n; k += 4 {
		s0 += (x[k] - mx) * (y[k] - my)
		s1 += (x[k+1] - mx) * (y[k+1] - my)
		s2 += (x[k+2] - mx) * (y[k+2] - my)
		s3 += (x[k+3] - mx) * (y[k+3] - my)
	}
	for ; k < n; k++ {
		s0 += (x[k] - mx) * (y[k] - my)
	}

	return (s0 + s1) + (s2 + s3)
}

func centeredDot1(w, x []float64, mean float64) float64 {
	x = x[:len(w)]
	var s float64
	for k := range w {
		s += w[k] * (x[k] - mean)
	}
	return s
}

func centeredDot4(w, x []float64, mean float64) float64 {
	x = x[:len(w)]
	var s0, s1, s2, s3 float64
	n := len(w)
	k := 0
	for ; k+4 <= n; k += 4 {
		s0 += w[k] * (x[k] - mean)
		s1 += w[k+1] * (x[k+1] - mean)
		s2 += w[k+2] * (x[k+2] - mean)
		s3 += w[k+3] * (x[k+3] - mean)
	}
	for ; k < n; k++ {
		s0 += w[k] * (x[k] - mean)
	}
	return (s0 + s1) + (s2 + s3)
}

func centeredDot8(w, x []float64, mean float64) float64 {
	x = x[:len(w)]
	var s0, s1, s2, s3, s4, s5, s6, s7 float64
	n := len(w)
	k := 0
	for ; k+8 <= n; k += 8 {
		s0 += w[k] * (x[k] - mean)
		s1 += w[k+1] * (x[k+1] - mean)
		s2 += w[k+2] * (x[k+2] - mean)
		s3 += w[k+3] * (x[k+3] - mean)
		s4 += w[k+4] * (x[k+4] - mean)
		s5 += w[k+5] * (x[k+5] - mean)
		s6 += w[k+6] * (x[k+6] - mean)
		s7 += w[k+7] * (x[k+7] - mean)
	}
	for ; k < n; k++ {
		s0 += w[k] * (x[k] - mean)
	}
	return ((s0 + s1) + (s2 + s3)) + ((s4 + s5) + (s6 + s7))
}
