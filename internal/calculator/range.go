package calculator

import (
	"errors"
	"fmt"
	"math"

	"OHLCToolkit/internal/model"
)

// Range scans the High and Low columns of the last window rows of an OHLC
// series and returns the highest high and lowest low. Missing values are skipped.
func Range(s *model.Series, window int) (high, low float64, err error) {
	if window <= 0 {
		return 0, 0, fmt.Errorf("range: window must be positive, got %d: %w", window, ErrInvalidArgument)
	}
	if s.Len() == 0 {
		return 0, 0, fmt.Errorf("range: no rows: %w", ErrInvalidArgument)
	}
	hj, err := ColumnIndex(s, model.FieldHigh)
	if err != nil {
		return 0, 0, fmt.Errorf("range: %w", err)
	}
	lj, err := ColumnIndex(s, model.FieldLow)
	if err != nil {
		return 0, 0, fmt.Errorf("range: %w", err)
	}

	start := max(s.Len()-window, 0)
	high, low = math.Inf(-1), math.Inf(1)
	for i := start; i < s.Len(); i++ {
		if h := s.At(i, hj); h > high {
			high = h
		}
		if l := s.At(i, lj); l < low {
			low = l
		}
	}
	if math.IsInf(high, -1) || math.IsInf(low, 1) {
		return 0, 0, fmt.Errorf("range: last %d rows are all missing: %w", window, ErrInvalidArgument)
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high], clamped to 0..1.
// A flat range reports 0.5.
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	return min(max((current-low)/(high-low), 0), 1), nil
}
