// SPDX-License-Identifier: MIT

package sparse

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedColPtr reports a column-pointer array that is empty, does not
	// start at 0, decreases, or does not end at the row-index count.
	ErrMalformedColPtr = errors.New("sparse: malformed column pointer array")

	// ErrLengthMismatch reports value/row/column arrays of different lengths.
	ErrLengthMismatch = errors.New("sparse: value and index arrays differ in length")

	// ErrIndexOutOfRange reports an index outside the declared shape.
	ErrIndexOutOfRange = errors.New("sparse: index out of range")

	// ErrBadIndexBase reports an index base other than 0 or 1.
	ErrBadIndexBase = errors.New("sparse: index base must be 0 or 1")
)

// sparseErrorf wraps err with the operation tag.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
