package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidSeries is returned when a series violates its shape or ordering invariants.
var ErrInvalidSeries = errors.New("model: invalid series")

// Series is an ordered, column-named numeric table.
// Rows are keyed by a strictly increasing timestamp, or by position when the
// index is nil. Values are stored column-major; NaN marks a missing value.
type Series struct {
	index   []time.Time
	columns []string
	data    [][]float64
}

// NewSeries validates and copies the inputs into a new Series.
// data is column-major: data[j] holds column j. index may be nil for positional data.
func NewSeries(index []time.Time, columns []string, data [][]float64) (*Series, error) {
	if len(columns) != len(data) {
		return nil, fmt.Errorf("%w: %d column names for %d columns", ErrInvalidSeries, len(columns), len(data))
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidSeries, c)
		}
		seen[c] = struct{}{}
	}
	rows := len(index)
	if index == nil && len(data) > 0 {
		rows = len(data[0])
	}
	for j, col := range data {
		if len(col) != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrInvalidSeries, columns[j], len(col), rows)
		}
	}
	for i := 1; i < len(index); i++ {
		if !index[i].After(index[i-1]) {
			return nil, fmt.Errorf("%w: index not strictly increasing at row %d", ErrInvalidSeries, i)
		}
	}

	s := &Series{
		index:   cloneIndex(index),
		columns: append([]string(nil), columns...),
		data:    make([][]float64, len(data)),
	}
	for j, col := range data {
		s.data[j] = append([]float64(nil), col...)
	}
	return s, nil
}

// Len returns the number of rows.
func (s *Series) Len() int {
	if s.index != nil {
		return len(s.index)
	}
	if len(s.data) == 0 {
		return 0
	}
	return len(s.data[0])
}

// NumCols returns the number of columns.
func (s *Series) NumCols() int { return len(s.columns) }

// HasIndex reports whether rows are keyed by timestamps rather than position.
func (s *Series) HasIndex() bool { return s.index != nil }

// Columns returns a copy of the column names.
func (s *Series) Columns() []string { return append([]string(nil), s.columns...) }

// Index returns a copy of the time index, or nil for positional series.
func (s *Series) Index() []time.Time { return cloneIndex(s.index) }

// Time returns the timestamp of row i. Positional series return the zero time.
func (s *Series) Time(i int) time.Time {
	if s.index == nil {
		return time.Time{}
	}
	return s.index[i]
}

// At returns the value at row i, column j.
func (s *Series) At(i, j int) float64 { return s.data[j][i] }

// Col returns a copy of column j.
func (s *Series) Col(j int) []float64 { return append([]float64(nil), s.data[j]...) }

// Row returns a copy of row i across all columns.
func (s *Series) Row(i int) []float64 {
	row := make([]float64, len(s.data))
	for j := range s.data {
		row[j] = s.data[j][i]
	}
	return row
}

// ColIndex returns the position of the named column, or -1.
func (s *Series) ColIndex(name string) int {
	for j, c := range s.columns {
		if c == name {
			return j
		}
	}
	return -1
}

// Clone returns a deep copy.
func (s *Series) Clone() *Series {
	return s.WithValues(s.copyData())
}

// WithValues returns a series sharing this one's index and column names
// (copied) with data as its column-major values. data is owned by the result
// and must have the same shape as s.
func (s *Series) WithValues(data [][]float64) *Series {
	return &Series{
		index:   cloneIndex(s.index),
		columns: append([]string(nil), s.columns...),
		data:    data,
	}
}

// WithColumns returns a copy of s restricted to, and ordered by, the given column positions.
func (s *Series) WithColumns(cols ...int) *Series {
	out := &Series{
		index:   cloneIndex(s.index),
		columns: make([]string, len(cols)),
		data:    make([][]float64, len(cols)),
	}
	for k, j := range cols {
		out.columns[k] = s.columns[j]
		out.data[k] = append([]float64(nil), s.data[j]...)
	}
	return out
}

// Slice returns rows [from, to) as a new series.
func (s *Series) Slice(from, to int) *Series {
	out := &Series{
		columns: append([]string(nil), s.columns...),
		data:    make([][]float64, len(s.data)),
	}
	if s.index != nil {
		out.index = cloneIndex(s.index[from:to])
	}
	for j := range s.data {
		out.data[j] = append([]float64(nil), s.data[j][from:to]...)
	}
	return out
}

// CumSum returns the column-wise cumulative sum. NaN values contribute zero.
func (s *Series) CumSum() *Series {
	data := make([][]float64, len(s.data))
	for j, col := range s.data {
		out := make([]float64, len(col))
		sum := 0.0
		for i, v := range col {
			if !math.IsNaN(v) {
				sum += v
			}
			out[i] = sum
		}
		data[j] = out
	}
	return s.WithValues(data)
}

func (s *Series) copyData() [][]float64 {
	data := make([][]float64, len(s.data))
	for j, col := range s.data {
		data[j] = append([]float64(nil), col...)
	}
	return data
}

// cloneIndex copies idx, keeping nil and empty distinct.
func cloneIndex(idx []time.Time) []time.Time {
	if idx == nil {
		return nil
	}
	out := make([]time.Time, len(idx))
	copy(out, idx)
	return out
}
