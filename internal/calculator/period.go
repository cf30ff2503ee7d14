package calculator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"OHLCToolkit/internal/model"
)

// Period is a calendar aggregation frequency.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod maps a config value to a Period.
func ParsePeriod(v string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(v))); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q: %w", v, ErrInvalidArgument)
	}
}

func (p Period) key(t time.Time) int {
	switch p {
	case PeriodWeekly:
		year, week := t.ISOWeek()
		return year*100 + week
	case PeriodMonthly:
		return t.Year()*100 + int(t.Month())
	default:
		return t.Year()*1000 + t.YearDay()
	}
}

// CalendarEndpoints returns the boundaries of the calendar periods spanned by
// index: 0, every row where a new period starts, and len(index).
func CalendarEndpoints(index []time.Time, p Period) []int {
	ep := []int{0}
	for i := 1; i < len(index); i++ {
		if p.key(index[i]) != p.key(index[i-1]) {
			ep = append(ep, i)
		}
	}
	if n := len(index); n > 0 {
		ep = append(ep, n)
	}
	return ep
}

// ToPeriod aggregates s over the intervals delimited by endpoints.
//
// A series with at least four columns is treated as OHLC by position: open
// takes the first value, high the maximum, low the minimum, close the last,
// volume the sum and every further column the last value. A single-column
// series is turned into open/high/low/close of that column. Each output row
// is stamped with the last timestamp of its interval.
func ToPeriod(s *model.Series, endpoints []int) (*model.Series, error) {
	if err := validEndpoints(endpoints, s.Len()); err != nil {
		return nil, fmt.Errorf("to period: %w", err)
	}

	var columns []string
	var src [][]float64
	var aggs []func([]float64) float64
	switch {
	case s.NumCols() >= 4:
		columns = s.Columns()
		for j := 0; j < s.NumCols(); j++ {
			src = append(src, s.Col(j))
			switch j {
			case colOpen:
				aggs = append(aggs, first)
			case colHigh:
				aggs = append(aggs, highest)
			case colLow:
				aggs = append(aggs, lowest)
			case colVolume:
				aggs = append(aggs, total)
			default:
				aggs = append(aggs, last)
			}
		}
	case s.NumCols() == 1:
		columns = model.OHLCColumns(SymbolName(s))[:4]
		col := s.Col(0)
		src = [][]float64{col, col, col, col}
		aggs = []func([]float64) float64{first, highest, lowest, last}
	default:
		return nil, fmt.Errorf("to period: need 1 or at least 4 columns, got %d: %w", s.NumCols(), ErrInvalidArgument)
	}

	nOut := len(endpoints) - 1
	data := make([][]float64, len(src))
	for j := range data {
		data[j] = make([]float64, nOut)
		for k := 0; k < nOut; k++ {
			data[j][k] = aggs[j](src[j][endpoints[k]:endpoints[k+1]])
		}
	}
	var index []time.Time
	if s.HasIndex() {
		index = make([]time.Time, nOut)
		for k := range index {
			index[k] = s.Time(endpoints[k+1] - 1)
		}
	}
	return model.NewSeries(index, columns, data)
}

func first(v []float64) float64 { return v[0] }

func last(v []float64) float64 { return v[len(v)-1] }

func highest(v []float64) float64 {
	m := math.NaN()
	for _, x := range v {
		if math.IsNaN(m) || x > m {
			m = x
		}
	}
	return m
}

func lowest(v []float64) float64 {
	m := math.NaN()
	for _, x := range v {
		if math.IsNaN(m) || x < m {
			m = x
		}
	}
	return m
}

func total(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		if !math.IsNaN(x) {
			sum += x
		}
	}
	return sum
}
