package calculator

import (
	"fmt"

	"OHLCToolkit/internal/model"
)

// column positions of a standard OHLC table
const (
	colOpen = iota
	colHigh
	colLow
	colClose
	colVolume
	colAdjusted
)

// Adjust scales open, high, low and close by adjusted/close so that prices
// reflect splits and dividends. Volume, adjusted and any further columns are
// copied unchanged.
func Adjust(s *model.Series) (*model.Series, error) {
	if s.NumCols() < 6 {
		return nil, fmt.Errorf("adjust: need 6 OHLC columns, got %d: %w", s.NumCols(), ErrInvalidArgument)
	}
	closes, adjusted := s.Col(colClose), s.Col(colAdjusted)
	data := make([][]float64, s.NumCols())
	for j := range data {
		col := s.Col(j)
		if j <= colClose {
			for i := range col {
				col[i] *= adjusted[i] / closes[i]
			}
		}
		data[j] = col
	}
	return s.WithValues(data), nil
}

// ReduceForm converts the first five OHLCV columns into differences:
// close becomes its lag-1 difference (the first row keeps the close itself)
// and open, high and low become their distance from the close.
// Volume is unchanged.
func ReduceForm(s *model.Series) (*model.Series, error) {
	if s.NumCols() < 5 {
		return nil, fmt.Errorf("reduce form: need 5 OHLCV columns, got %d: %w", s.NumCols(), ErrInvalidArgument)
	}
	closes := s.Col(colClose)
	data := make([][]float64, 5)
	for j := colOpen; j <= colLow; j++ {
		col := s.Col(j)
		for i := range col {
			col[i] -= closes[i]
		}
		data[j] = col
	}
	data[colClose] = DiffVector(closes, 1)
	data[colVolume] = s.Col(colVolume)
	return s.WithColumns(0, 1, 2, 3, 4).WithValues(data), nil
}

// ExpandForm inverts ReduceForm: the close is rebuilt by cumulative
// summation and open, high and low are added back onto it.
func ExpandForm(r *model.Series) (*model.Series, error) {
	if r.NumCols() < 5 {
		return nil, fmt.Errorf("expand form: need 5 OHLCV columns, got %d: %w", r.NumCols(), ErrInvalidArgument)
	}
	closes := r.Col(colClose)
	for i := 1; i < len(closes); i++ {
		closes[i] += closes[i-1]
	}
	data := make([][]float64, 5)
	for j := colOpen; j <= colLow; j++ {
		col := r.Col(j)
		for i := range col {
			col[i] += closes[i]
		}
		data[j] = col
	}
	data[colClose] = closes
	data[colVolume] = r.Col(colVolume)
	return r.WithColumns(0, 1, 2, 3, 4).WithValues(data), nil
}
