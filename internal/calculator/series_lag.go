package calculator

import (
	"math"

	"OHLCToolkit/internal/model"
)

// LagSeries shifts every column of s by k rows along its index.
// Rows exposed by the shift repeat the first (k > 0) or last (k < 0)
// original row instead of being left missing.
func LagSeries(s *model.Series, k int) *model.Series {
	n := s.Len()
	data := make([][]float64, s.NumCols())
	for j := range data {
		col := s.Col(j)
		out := make([]float64, n)
		for i := range out {
			src := i - k
			if src < 0 {
				src = 0
			} else if src >= n {
				src = n - 1
			}
			out[i] = col[src]
		}
		data[j] = out
	}
	return s.WithValues(data)
}

// DiffSeries returns s minus s lagged by lag rows along its index.
// Every row that ends up incomplete, whether from the diff boundary or from
// missing input values, is zero-filled. Unlike Diff, boundary rows are
// therefore all zero rather than copies of the original values.
func DiffSeries(s *model.Series, lag int) *model.Series {
	n := s.Len()
	data := make([][]float64, s.NumCols())
	for j := range data {
		col := s.Col(j)
		out := make([]float64, n)
		for i := range out {
			src := i - lag
			if src < 0 || src >= n {
				out[i] = math.NaN()
				continue
			}
			out[i] = col[i] - col[src]
		}
		data[j] = out
	}

	for i := 0; i < n; i++ {
		complete := true
		for j := range data {
			if math.IsNaN(data[j][i]) {
				complete = false
				break
			}
		}
		if complete {
			continue
		}
		for j := range data {
			data[j][i] = 0
		}
	}
	return s.WithValues(data)
}
