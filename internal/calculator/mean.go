package calculator

import (
	"fmt"

	"OHLCToolkit/internal/model"
)

// RollingMean returns the trailing mean over window rows, built on RollingSum.
// Partial windows at the start average the rows seen so far.
func RollingMean(s *model.Series, window int) (*model.Series, error) {
	sum, err := RollingSum(s, window)
	if err != nil {
		return nil, fmt.Errorf("rolling mean: %w", err)
	}
	data := make([][]float64, sum.NumCols())
	for j := range data {
		col := sum.Col(j)
		for i := range col {
			col[i] /= float64(min(i+1, window))
		}
		data[j] = col
	}
	return s.WithValues(data), nil
}
