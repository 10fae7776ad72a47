package resolve

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there is no row to transpose.
	ErrEmptyInput = errors.New("nothing to transpose")

	// ErrRaggedRows is returned when rows do not share the same length.
	ErrRaggedRows = errors.New("rows have different lengths")
)

// Transpose converts row-major data into column-major data: column i of the
// result holds the i-th value of every row, in row order. The width is taken
// from the first row. The input is not modified.
func Transpose[R ~[]int](rows []R) ([][]int, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d values, row 0 has %d: %w", i, len(row), width, ErrRaggedRows)
		}
	}

	columns := make([][]int, width)
	for c := range columns {
		col := make([]int, len(rows))
		for r, row := range rows {
			col[r] = row[c]
		}
		columns[c] = col
	}
	return columns, nil
}
