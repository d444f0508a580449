// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors and the integer code
// mapping used by foreign-function callers. Facades return these sentinels
// wrapped with the operation name; tests MUST check them via errors.Is.
// Panics are reserved for programmer errors in Option constructors.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency. Kernels return
// sentinels bare; facades wrap them as "Op: %w" via matrixErrorf.
//
// ERROR PRIORITY (facades):
// nil -> shape/length -> statistic selector -> scratch allocation.

var (
	// ErrOutOfMemory is the only error the in-place engine can raise: a scratch
	// buffer (column means, working column, or normalization norms) could not be
	// acquired. The output buffer is left allocated and untouched by the failed step.
	ErrOutOfMemory = errors.New("matrix: unable to allocate necessary memory")

	// ErrInvalidDimensions indicates that requested matrix dimensions are negative
	// or that a flat buffer does not hold rows*cols values.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operands, e.g. vectors of
	// different length or an output buffer shorter than n*n.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrBadStatistic reports an unknown Statistic selector.
	ErrBadStatistic = errors.New("matrix: invalid statistic type")

	// ErrNaNInf indicates that a NaN or Inf was given where a finite value is required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)

// Integer codes for callers that cross a foreign-function boundary.
const (
	// CodeOK signals success.
	CodeOK = 0
	// CodeOutOfMemory signals ErrOutOfMemory.
	CodeOutOfMemory = -1
	// CodeInvalid signals any validation error raised by the facades.
	CodeInvalid = -2
)

// ErrorCode maps err to a single integer: 0 on success, CodeOutOfMemory when a
// scratch buffer could not be acquired, CodeInvalid otherwise.
// The engine itself only ever produces the first two.
func ErrorCode(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrOutOfMemory):
		return CodeOutOfMemory
	default:
		return CodeInvalid
	}
}

// matrixErrorf wraps err with the operation tag, preserving errors.Is.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
