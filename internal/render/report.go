package render

import (
	"fmt"
	"strings"
	"time"

	"OHLCToolkit/internal/calculator"
	"OHLCToolkit/internal/model"
)

// FormatReport summarizes the latest row of a symbol's signals.
func FormatReport(sig *model.Signals, asOf time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s | %s | %d bars\n", sig.Symbol, asOf.Format(time.DateOnly), sig.Bars.Len()))
	if sig.Bars.Len() == 0 {
		return b.String()
	}
	last := sig.Bars.Len() - 1
	b.WriteString(fmt.Sprintf("  last bar: %s\n", rowLabel(sig.Bars, last)))

	if j, err := calculator.ColumnIndex(sig.Bars, model.FieldClose); err == nil {
		b.WriteString(fmt.Sprintf("  close: %.2f (change %+.2f, %+.2f%%)\n",
			sig.Bars.At(last, j), model.Last(sig.Change), model.Last(sig.Return)*100))
	}
	b.WriteString(fmt.Sprintf("  rolling mean: %.2f | rolling high: %.2f\n", model.Last(sig.Mean), model.Last(sig.High)))
	b.WriteString(fmt.Sprintf("  rolling volume: %.0f\n", model.Last(sig.Volume)))
	b.WriteString(fmt.Sprintf("  RSI: %.1f\n", model.Last(sig.RSI)))
	b.WriteString(fmt.Sprintf("  range: %.2f .. %.2f (position %.0f%%)\n", sig.RangeLow, sig.RangeHigh, sig.RangePosition*100))

	breakouts := 0
	for _, hit := range sig.Breakout {
		if hit {
			breakouts++
		}
	}
	b.WriteString(fmt.Sprintf("  breakouts: %d of %d\n", breakouts, len(sig.Breakout)))

	if sig.WarningMsg != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", sig.WarningMsg))
	}
	return b.String()
}
