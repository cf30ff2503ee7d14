package model

// Signals holds the series derived from one symbol's OHLC history.
// Every series shares the row index of Bars.
type Signals struct {
	Symbol string
	Bars   *Series // adjusted OHLC aggregated to the configured period
	Change *Series // close minus the close lag periods earlier, zero at the boundary
	Return *Series // Change relative to the lagged close
	Mean   *Series // rolling mean of the close
	High   *Series // rolling maximum of the close
	Volume *Series // rolling sum of the volume
	RSI    *Series

	// Breakout marks rows whose close reached the rolling high.
	Breakout []bool

	RangeHigh     float64
	RangeLow      float64
	RangePosition float64 // last close within [RangeLow, RangeHigh], 0..1

	WarningMsg string
}

// Last returns the final value of a single-column series, or 0 when empty.
func Last(s *Series) float64 {
	if s == nil || s.Len() == 0 || s.NumCols() == 0 {
		return 0
	}
	return s.At(s.Len()-1, 0)
}
