// Package render draws series as plain-text charts and reports.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"OHLCToolkit/internal/calculator"
	"OHLCToolkit/internal/model"
)

// BarWidth is the width of a full chart bar in characters.
const BarWidth = 40

// Chart writes one line per row of the named column of s, with a bar scaled
// between the column's minimum and maximum. Rows whose mask entry is true are
// marked with '*'. mask may be nil; otherwise it must have one entry per row.
func Chart(w io.Writer, s *model.Series, column string, mask []bool) error {
	if mask != nil && len(mask) != s.Len() {
		return fmt.Errorf("chart: mask has %d entries for %d rows: %w", len(mask), s.Len(), calculator.ErrInvalidArgument)
	}
	j, err := calculator.ColumnIndex(s, column)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	values := s.Col(j)
	lo, hi := bounds(values)

	var b strings.Builder
	name := s.Columns()[j]
	if s.Len() == 0 {
		fmt.Fprintf(&b, "%s (no rows)\n", name)
	} else {
		fmt.Fprintf(&b, "%s  %s .. %s  (%d rows, min %.2f, max %.2f)\n",
			name, rowLabel(s, 0), rowLabel(s, s.Len()-1), s.Len(), lo, hi)
	}
	for i, v := range values {
		mark := ' '
		if mask != nil && mask[i] {
			mark = '*'
		}
		fmt.Fprintf(&b, "%-10s %c %10.2f |%-*s|\n", rowLabel(s, i), mark, v, BarWidth, bar(v, lo, hi))
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func rowLabel(s *model.Series, i int) string {
	if s.HasIndex() {
		return s.Time(i).Format(time.DateOnly)
	}
	return fmt.Sprintf("%d", i)
}

// bounds returns the minimum and maximum of the non-missing values.
func bounds(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo, hi = min(lo, v), max(hi, v)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

func bar(v, lo, hi float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if hi == lo {
		return strings.Repeat("#", BarWidth)
	}
	n := int(math.Round((v - lo) / (hi - lo) * BarWidth))
	return strings.Repeat("#", max(n, 1))
}
