// SPDX-License-Identifier: MIT

// Package matrix: domain types.
// This file contains ONLY domain-facing types: the Matrix interface consumed by
// the facades and the Statistic selector. Errors and options live in dedicated
// files (errors.go, options.go).
package matrix

import (
	"fmt"
	"strings"
)

// Matrix represents a two-dimensional array of float64 values.
// The facades accept any Matrix; *Dense unlocks the zero-copy fast path.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows (observations).
	Rows() int

	// Cols returns the number of columns (variables).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i or j is outside the shape.
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns an independent deep copy.
	Clone() Matrix
}

// Statistic selects the pairwise association measure.
// The numeric values match the selector codes used by foreign callers.
type Statistic int

const (
	// StatCosine is the cosine similarity Σxy / (‖x‖‖y‖).
	StatCosine Statistic = 1
	// StatCorrelation is the Pearson correlation coefficient.
	StatCorrelation Statistic = 2
	// StatCovariance is the sample covariance with Bessel's correction.
	StatCovariance Statistic = 3
)

// String implements fmt.Stringer.
func (s Statistic) String() string {
	switch s {
	case StatCosine:
		return "cosine"
	case StatCorrelation:
		return "correlation"
	case StatCovariance:
		return "covariance"
	default:
		return fmt.Sprintf("Statistic(%d)", int(s))
	}
}

// ParseStatistic accepts the long names and the short CLI aliases
// ("cos", "cor", "cov"), case-insensitively.
func ParseStatistic(s string) (Statistic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cos", "cosine":
		return StatCosine, nil
	case "cor", "corr", "correlation", "pearson":
		return StatCorrelation, nil
	case "cov", "covar", "covariance":
		return StatCovariance, nil
	default:
		return 0, matrixErrorf("ParseStatistic", fmt.Errorf("%q: %w", s, ErrBadStatistic))
	}
}

// valid reports whether s is one of the known selectors.
func (s Statistic) valid() bool {
	return s == StatCosine || s == StatCorrelation || s == StatCovariance
}
