// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Small deterministic fixtures (column-major builders, seeded random data).
//   - A counting Scratch that can fail a chosen acquisition, to prove that every
//     exit path releases what it acquired.

package matrix_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coop/matrix"
)

const (
	epsTight = 1e-12
	epsLoose = 1e-9
)

// hide wraps any Matrix to hide its concrete type, forcing the At-based path.
type hide struct{ matrix.Matrix }

// NewFilledDense builds an r×c Dense from column-major values or fails the test.
func NewFilledDense(t *testing.T, r, c int, colMajor []float64) *matrix.Dense {
	t.Helper()
	cp := append([]float64(nil), colMajor...)
	d, err := matrix.NewDenseFrom(r, c, cp)
	require.NoError(t, err)

	return d
}

// randomColumns returns an m×n column-major buffer with column j drawn from
// N(shift*j, (j+1)²). Distinct means and scales exercise centering.
func randomColumns(seed int64, m, n int, shift float64) []float64 {
	r := rand.New(rand.NewSource(seed))
	x := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			x[i+m*j] = shift*float64(j) + float64(j+1)*r.NormFloat64()
		}
	}

	return x
}

// column returns a copy of column j of an m-row column-major buffer.
func column(x []float64, m, j int) []float64 {
	return append([]float64(nil), x[m*j:m*j+m]...)
}

// sampleVariance is an independent textbook oracle: Σ(x-x̄)²/(n-1).
func sampleVariance(x []float64) float64 {
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	var ss float64
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}

	return ss / float64(len(x)-1)
}

// requireAllClose compares two slices elementwise with an absolute tolerance.
func requireAllClose(t *testing.T, want, got []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for k := range want {
		require.InDeltaf(t, want[k], got[k], eps, "index %d", k)
	}
}

// requireSymmetricBits asserts out[i+n*j] and out[j+n*i] are bit-identical.
func requireSymmetricBits(t *testing.T, n int, out []float64) {
	t.Helper()
	for j := 0; j < n; j++ {
		for i := j + 1; i < n; i++ {
			require.Equalf(t, math.Float64bits(out[i+n*j]), math.Float64bits(out[j+n*i]),
				"(%d,%d) vs (%d,%d)", i, j, j, i)
		}
	}
}

// filled returns a slice of length k with every value set to v.
func filled(k int, v float64) []float64 {
	out := make([]float64, k)
	for i := range out {
		out[i] = v
	}

	return out
}

var errInjected = errors.New("injected allocation failure")

// countingScratch tracks outstanding buffers and fails the failOn-th Acquire
// (1-based; 0 never fails).
type countingScratch struct {
	failOn   int
	calls    int
	live     int
	requests []int
}

func (s *countingScratch) Acquire(n int) ([]float64, error) {
	s.calls++
	s.requests = append(s.requests, n)
	if s.calls == s.failOn {
		return nil, errInjected
	}
	s.live++

	return make([]float64, n), nil
}

func (s *countingScratch) Release([]float64) { s.live-- }
