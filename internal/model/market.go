package model

import (
	"sort"
	"time"
)

// Standard OHLC field names, in column order.
const (
	FieldOpen     = "Open"
	FieldHigh     = "High"
	FieldLow      = "Low"
	FieldClose    = "Close"
	FieldVolume   = "Volume"
	FieldAdjusted = "Adjusted"
)

// OHLCFields lists the six standard OHLC columns in order.
var OHLCFields = []string{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume, FieldAdjusted}

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	Adjusted float64
}

// OHLCColumns returns the six column names for symbol, e.g. "VTI.Open".
// An empty symbol yields the bare field names.
func OHLCColumns(symbol string) []string {
	cols := make([]string, len(OHLCFields))
	for i, f := range OHLCFields {
		if symbol == "" {
			cols[i] = f
		} else {
			cols[i] = symbol + "." + f
		}
	}
	return cols
}

// SeriesFromBars converts bars into a six-column OHLC series named after symbol.
// Bars are sorted chronologically and duplicate timestamps keep the last bar.
func SeriesFromBars(symbol string, bars []OHLCV) (*Series, error) {
	sorted := append([]OHLCV(nil), bars...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	dedup := sorted[:0]
	for _, b := range sorted {
		if n := len(dedup); n > 0 && dedup[n-1].Time.Equal(b.Time) {
			dedup[n-1] = b
			continue
		}
		dedup = append(dedup, b)
	}

	index := make([]time.Time, len(dedup))
	data := make([][]float64, len(OHLCFields))
	for j := range data {
		data[j] = make([]float64, len(dedup))
	}
	for i, b := range dedup {
		index[i] = b.Time
		data[0][i] = b.Open
		data[1][i] = b.High
		data[2][i] = b.Low
		data[3][i] = b.Close
		data[4][i] = b.Volume
		data[5][i] = b.Adjusted
	}
	return NewSeries(index, OHLCColumns(symbol), data)
}
