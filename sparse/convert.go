// SPDX-License-Identifier: MIT

package sparse

// CSCToCOO expands a compressed-sparse-column pointer array into one column index
// per stored entry, so (rowInd[k], colInd[k]) is the coordinate of entry k.
// colPtr has one element per column plus a terminator; colPtr[c+1]-colPtr[c] is
// the entry count of column c.
//
// Errors:
//   - ErrMalformedColPtr when colPtr is empty, does not start at 0, decreases,
//     or does not end at len(rowInd).
//
// Complexity: O(len(rowInd) + len(colPtr)).
func CSCToCOO(rowInd, colPtr []int32) ([]int32, error) {
	last := len(colPtr) - 1
	if last < 0 || colPtr[0] != 0 || int(colPtr[last]) != len(rowInd) {
		return nil, sparseErrorf("CSCToCOO", ErrMalformedColPtr)
	}

	colInd := make([]int32, len(rowInd))
	k := 0
	for c := 0; c < last; c++ {
		diff := int(colPtr[c+1]) - int(colPtr[c])
		if diff < 0 || k+diff > len(colInd) {
			return nil, sparseErrorf("CSCToCOO", ErrMalformedColPtr)
		}
		for end := k + diff; k < end; k++ {
			colInd[k] = int32(c)
		}
	}

	return colInd, nil
}
