package model

import (
	"fmt"
	"time"
)

// RBind concatenates the rows of a and b into a new series.
// Both must carry the same column names in the same order. Time-indexed
// series are merged in timestamp order; a timestamp present in both is an
// error since the index must stay strictly increasing. Positional series are
// appended. Neither input is modified.
func RBind(a, b *Series) (*Series, error) {
	if len(a.columns) != len(b.columns) {
		return nil, fmt.Errorf("%w: rbind %d columns with %d columns", ErrInvalidSeries, len(a.columns), len(b.columns))
	}
	for j := range a.columns {
		if a.columns[j] != b.columns[j] {
			return nil, fmt.Errorf("%w: rbind column %d %q != %q", ErrInvalidSeries, j, a.columns[j], b.columns[j])
		}
	}
	if a.HasIndex() != b.HasIndex() {
		return nil, fmt.Errorf("%w: rbind time-indexed with positional series", ErrInvalidSeries)
	}

	n := a.Len() + b.Len()
	out := &Series{
		columns: append([]string(nil), a.columns...),
		data:    make([][]float64, len(a.columns)),
	}
	for j := range out.data {
		out.data[j] = make([]float64, 0, n)
	}

	if !a.HasIndex() || a.Len() == 0 || b.Len() == 0 || a.index[a.Len()-1].Before(b.index[0]) {
		if a.HasIndex() {
			out.index = make([]time.Time, 0, n)
			out.index = append(out.index, a.index...)
			out.index = append(out.index, b.index...)
		}
		for j := range out.data {
			out.data[j] = append(out.data[j], a.data[j]...)
			out.data[j] = append(out.data[j], b.data[j]...)
		}
		return out, nil
	}

	// overlapping ranges: two-way merge on the index
	out.index = make([]time.Time, 0, n)
	i, k := 0, 0
	for i < a.Len() || k < b.Len() {
		var src *Series
		var row int
		switch {
		case k >= b.Len() || (i < a.Len() && a.index[i].Before(b.index[k])):
			src, row = a, i
			i++
		case i >= a.Len() || b.index[k].Before(a.index[i]):
			src, row = b, k
			k++
		default:
			return nil, fmt.Errorf("%w: rbind duplicate timestamp %s", ErrInvalidSeries, a.index[i].Format(time.RFC3339))
		}
		out.index = append(out.index, src.index[row])
		for j := range out.data {
			out.data[j] = append(out.data[j], src.data[j][row])
		}
	}
	return out, nil
}
