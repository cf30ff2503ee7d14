package calculator

import (
	"fmt"

	"OHLCToolkit/internal/model"
)

// neutralRSI is reported while fewer than period+1 rows have been seen.
const neutralRSI = 50.0

// RSI computes the Wilder-smoothed relative strength index of every column.
// The first period rows report 50; from row period on the value is based on
// the changes seen so far, seeded with their simple average.
func RSI(s *model.Series, period int) (*model.Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi: period must be positive, got %d: %w", period, ErrInvalidArgument)
	}
	changes := DiffSeries(s, 1)
	data := make([][]float64, s.NumCols())
	for j := range data {
		ch := changes.Col(j)
		out := make([]float64, len(ch))
		var avgGain, avgLoss float64
		for i, c := range ch {
			gain, loss := 0.0, 0.0
			if c > 0 {
				gain = c
			} else {
				loss = -c
			}
			switch {
			case i == 0:
			case i <= period:
				avgGain += gain / float64(period)
				avgLoss += loss / float64(period)
			default:
				avgGain = (avgGain*float64(period-1) + gain) / float64(period)
				avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
			}
			out[i] = rsiValue(i, period, avgGain, avgLoss)
		}
		data[j] = out
	}
	return s.WithValues(data), nil
}

func rsiValue(i, period int, avgGain, avgLoss float64) float64 {
	switch {
	case i < period:
		return neutralRSI
	case avgLoss == 0:
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}
