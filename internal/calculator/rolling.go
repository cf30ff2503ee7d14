package calculator

import (
	"fmt"
	"math"

	"OHLCToolkit/internal/model"
)

// RollingSum returns the trailing sum over window rows for every column.
// It is computed as the cumulative sum minus the cumulative sum lagged by
// window; the first window rows hold the cumulative sum itself so partial
// windows use all available data. Missing inputs count as zero and the
// result never contains NaN.
func RollingSum(s *model.Series, window int) (*model.Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling sum: window must be positive, got %d: %w", window, ErrInvalidArgument)
	}
	cum := s.CumSum()
	data := make([][]float64, cum.NumCols())
	for j := range data {
		cs := cum.Col(j)
		out := make([]float64, len(cs))
		for i := range cs {
			if i < window {
				out[i] = cs[i]
			} else {
				out[i] = cs[i] - cs[i-window]
			}
		}
		data[j] = out
	}
	return s.WithValues(data), nil
}

// RollingMax returns the maximum over the trailing window rows for every column.
// The series is treated as if window-1 zeros preceded it, so the first window
// outputs never drop below zero. Missing inputs are skipped; a window with no
// values at all yields NaN.
func RollingMax(s *model.Series, window int) (*model.Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling max: window must be positive, got %d: %w", window, ErrInvalidArgument)
	}
	data := make([][]float64, s.NumCols())
	for j := range data {
		data[j] = slidingMax(s.Col(j), window)
	}
	return s.WithValues(data), nil
}

// slidingMax runs a monotonic deque over x with window-1 leading zeros.
func slidingMax(x []float64, window int) []float64 {
	pad := window - 1
	at := func(p int) float64 {
		if p < pad {
			return 0
		}
		return x[p-pad]
	}

	out := make([]float64, len(x))
	deque := make([]int, 0, window)
	for p := 0; p < len(x)+pad; p++ {
		for len(deque) > 0 && deque[0] <= p-window {
			deque = deque[1:]
		}
		if v := at(p); !math.IsNaN(v) {
			for len(deque) > 0 && at(deque[len(deque)-1]) <= v {
				deque = deque[:len(deque)-1]
			}
			deque = append(deque, p)
		}
		if i := p - pad; i >= 0 {
			if len(deque) == 0 {
				out[i] = math.NaN()
			} else {
				out[i] = at(deque[0])
			}
		}
	}
	return out
}
