package strategy

import (
	"errors"
	"fmt"

	"OHLCToolkit/internal/calculator"
	"OHLCToolkit/internal/model"
)

// ErrNoBars is returned when there is nothing to evaluate.
var ErrNoBars = errors.New("strategy: no bars")

// overboughtRSI triggers the take-profit warning.
const overboughtRSI = 85

// Params controls how raw bars are turned into signals.
type Params struct {
	Period      calculator.Period
	Window      int // rolling mean, max and volume window, in periods
	Lag         int // change horizon, in periods
	RSIPeriod   int
	RangeWindow int // periods scanned for the high/low range
}

// DefaultParams returns daily bars with a 20-period window.
func DefaultParams() Params {
	return Params{
		Period:      calculator.PeriodDaily,
		Window:      20,
		Lag:         1,
		RSIPeriod:   14,
		RangeWindow: 252,
	}
}

// Evaluate adjusts raw six-column OHLC bars, aggregates them to p.Period and
// derives the signal series.
func Evaluate(raw *model.Series, p Params) (*model.Signals, error) {
	if raw == nil || raw.Len() == 0 {
		return nil, ErrNoBars
	}
	symbol := calculator.SymbolName(raw)

	// Step a: split/dividend adjust, then aggregate
	bars, err := calculator.Adjust(raw)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}
	if p.Period != calculator.PeriodDaily && bars.HasIndex() {
		bars, err = calculator.ToPeriod(bars, calculator.CalendarEndpoints(bars.Index(), p.Period))
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
		}
	}

	closes, err := calculator.ExtractColumn(bars, model.FieldClose)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}
	volume, err := calculator.ExtractColumn(bars, model.FieldVolume)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}

	// Step b: change over the lag horizon
	change := calculator.DiffSeries(closes, p.Lag)
	ret := relative(change, calculator.LagSeries(closes, p.Lag))

	// Step c: rolling statistics
	mean, err := calculator.RollingMean(closes, p.Window)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}
	high, err := calculator.RollingMax(closes, p.Window)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}
	vol, err := calculator.RollingSum(volume, p.Window)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}
	rsi, err := calculator.RSI(closes, p.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}

	// Step d: where the last close sits in the recent range
	rangeHigh, rangeLow, err := calculator.Range(bars, p.RangeWindow)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}
	pos, err := calculator.RangePosition(model.Last(closes), rangeHigh, rangeLow)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}

	sig := &model.Signals{
		Symbol:        symbol,
		Bars:          bars,
		Change:        change,
		Return:        ret,
		Mean:          mean,
		High:          high,
		Volume:        vol,
		RSI:           rsi,
		Breakout:      breakouts(closes, high),
		RangeHigh:     rangeHigh,
		RangeLow:      rangeLow,
		RangePosition: pos,
	}

	// Step e: take-profit warning
	if model.Last(rsi) > overboughtRSI {
		sig.WarningMsg = fmt.Sprintf("RSI %.1f > %d: consider taking profit", model.Last(rsi), overboughtRSI)
	}
	return sig, nil
}
