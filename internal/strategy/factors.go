package strategy

import (
	"math"

	"OHLCToolkit/internal/model"
)

// relative divides change by base row by row. A zero or missing base yields 0.
func relative(change, base *model.Series) *model.Series {
	c, b := change.Col(0), base.Col(0)
	out := make([]float64, len(c))
	for i := range c {
		if b[i] == 0 || math.IsNaN(b[i]) {
			continue
		}
		out[i] = c[i] / b[i]
	}
	return change.WithValues([][]float64{out})
}

// breakouts marks rows where close is at or above its rolling high.
func breakouts(closes, high *model.Series) []bool {
	c, h := closes.Col(0), high.Col(0)
	out := make([]bool, len(c))
	for i := range c {
		out[i] = !math.IsNaN(c[i]) && c[i] >= h[i]
	}
	return out
}
