package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"OHLCToolkit/internal/merge"
	"OHLCToolkit/internal/model"

	"go.uber.org/zap"
)

// ErrNoData is returned by CollectAll when no symbol could be downloaded.
var ErrNoData = errors.New("collector: no symbol downloaded")

// MockFetcher returns deterministic data for development and testing.
// Bars holds fixed data per symbol; other symbols get generated weekday bars.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.OHLCV
	Err   map[string]error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol string, from, to time.Time) (*model.Series, error) {
	m.Calls++
	if err := m.Err[symbol]; err != nil {
		return nil, err
	}
	var bars []model.OHLCV
	if fixed, ok := m.Bars[symbol]; ok {
		for _, b := range fixed {
			if !b.Time.Before(from) && b.Time.Before(to) {
				bars = append(bars, b)
			}
		}
	} else {
		bars = generateMockBars(m.Price, from, to)
	}
	return model.SeriesFromBars(symbol, bars)
}

// generateMockBars emits one bar per weekday in [from, to), drifting upward
// from basePrice by 0.1% per day since the Unix epoch day of the bar.
func generateMockBars(basePrice float64, from, to time.Time) []model.OHLCV {
	var bars []model.OHLCV
	day := from.UTC().Truncate(24 * time.Hour)
	if day.Before(from) {
		day = day.AddDate(0, 0, 1)
	}
	for ; day.Before(to); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(day.Unix()/86400%1000)*0.001)
		bars = append(bars, model.OHLCV{
			Time:     day,
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			Volume:   1000000,
			Adjusted: p * 0.98,
		})
	}
	return bars
}

// Collector downloads series in fixed-size date chunks and reassembles them.
type Collector struct {
	Fetcher   Fetcher
	ChunkDays int
}

// NewCollector creates a new Collector. chunkDays <= 0 downloads each range in one request.
func NewCollector(fetcher Fetcher, chunkDays int) *Collector {
	return &Collector{Fetcher: fetcher, ChunkDays: chunkDays}
}

// Collect downloads [from, to) for symbol chunk by chunk and row-binds the chunks.
func (c *Collector) Collect(ctx context.Context, symbol string, from, to time.Time) (*model.Series, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("collect %s: empty date range %s..%s", symbol, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	var chunks []*model.Series
	for _, w := range c.windows(from, to) {
		s, err := c.Fetcher.FetchSeries(ctx, symbol, w[0], w[1])
		if err != nil {
			return nil, fmt.Errorf("fetch %s %s..%s: %w", symbol, w[0].Format(time.DateOnly), w[1].Format(time.DateOnly), err)
		}
		chunks = append(chunks, s)
	}
	zap.L().Debug("downloaded chunks",
		zap.String("symbol", symbol),
		zap.String("source", c.Fetcher.Name()),
		zap.Int("chunks", len(chunks)),
	)
	s, err := merge.ConcatAll(chunks)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", symbol, err)
	}
	return s, nil
}

// CollectAll downloads every symbol into a symbol table. A symbol that fails
// is logged and left out; ErrNoData is returned only if all of them fail.
func (c *Collector) CollectAll(ctx context.Context, symbols []string, from, to time.Time) (map[string]*model.Series, error) {
	table := make(map[string]*model.Series, len(symbols))
	var errs []error
	for _, sym := range symbols {
		s, err := c.Collect(ctx, sym, from, to)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			zap.L().Warn("skipping symbol", zap.String("symbol", sym), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		table[sym] = s
	}
	if len(table) == 0 && len(symbols) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrNoData, errors.Join(errs...))
	}
	return table, nil
}

// Symbols returns the symbols of a table in sorted order.
func Symbols(table map[string]*model.Series) []string {
	out := make([]string, 0, len(table))
	for sym := range table {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func (c *Collector) windows(from, to time.Time) [][2]time.Time {
	if c.ChunkDays <= 0 {
		return [][2]time.Time{{from, to}}
	}
	var out [][2]time.Time
	for start := from; start.Before(to); {
		end := start.AddDate(0, 0, c.ChunkDays)
		if end.After(to) {
			end = to
		}
		out = append(out, [2]time.Time{start, end})
		start = end
	}
	return out
}
