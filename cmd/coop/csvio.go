// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/coop/matrix"
)

// ErrEmptyInput reports a CSV without data rows.
var ErrEmptyInput = errors.New("coop: input has no data rows")

// table is a parsed numeric CSV.
type table struct {
	names []string // column names; nil without a header row
	data  *matrix.Dense
}

// readTable parses numeric CSV from r. Empty cells are rejected; "NaN" and
// "Inf" parse as their IEEE values.
func readTable(r io.Reader, comma rune, header bool) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	t := &table{}
	var rows [][]float64
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line++

		if header && t.names == nil {
			t.names = append([]string(nil), rec...)
			continue
		}

		row := make([]float64, len(rec))
		for k, cell := range rec {
			if row[k], err = strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
				return nil, fmt.Errorf("line %d, column %d: %w", line, k+1, err)
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	data, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, err
	}
	t.data = data

	return t, nil
}

// readTableFile opens path and parses it with readTable.
func readTableFile(path string, comma rune, header bool) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := readTable(f, comma, header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// writeMatrix prints the n×n result as CSV with prec decimals. When names is set,
// a header row and a leading name column are added.
func writeMatrix(w io.Writer, res *matrix.Dense, names []string, comma rune, prec int) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	n := res.Cols()
	withNames := len(names) == n && n > 0
	if withNames {
		if err := cw.Write(append([]string{""}, names...)); err != nil {
			return err
		}
	}

	rec := make([]string, 0, n+1)
	for i := 0; i < res.Rows(); i++ {
		rec = rec[:0]
		if withNames {
			rec = append(rec, names[i])
		}
		for j := 0; j < n; j++ {
			v, err := res.At(i, j)
			if err != nil {
				return err
			}
			rec = append(rec, strconv.FormatFloat(v, 'f', prec, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
