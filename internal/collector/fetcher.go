package collector

import (
	"context"
	"time"

	"OHLCToolkit/internal/model"
)

// Fetcher downloads daily OHLC bars for a symbol.
// The returned series carries the six standard columns named "SYMBOL.Field"
// and covers timestamps in [from, to). An empty range yields an empty series.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol string, from, to time.Time) (*model.Series, error)
	Name() string
}
