package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"OHLCToolkit/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jan1  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb1  = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mar15 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
)

func TestCollector_ChunksMatchSingleRequest(t *testing.T) {
	mock := &MockFetcher{Price: 100}
	ctx := context.Background()

	whole, err := NewCollector(mock, 0).Collect(ctx, "SPY", jan1, mar15)
	require.NoError(t, err)
	require.Equal(t, 1, mock.Calls)

	mock.Calls = 0
	chunked, err := NewCollector(mock, 7).Collect(ctx, "SPY", jan1, mar15)
	require.NoError(t, err)
	assert.Equal(t, 11, mock.Calls)

	assert.Equal(t, whole.Index(), chunked.Index())
	assert.Equal(t, whole.Columns(), chunked.Columns())
	for j := 0; j < whole.NumCols(); j++ {
		assert.Equal(t, whole.Col(j), chunked.Col(j))
	}
	assert.Equal(t, "SPY.Close", chunked.Columns()[3])
}

func TestCollector_EmptyChunksAreKept(t *testing.T) {
	// a weekend-only chunk yields an empty series that must still concatenate
	mock := &MockFetcher{Price: 50}
	sat := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	s, err := NewCollector(mock, 1).Collect(context.Background(), "X", sat, sat.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.HasIndex())
}

func TestCollector_InvalidRange(t *testing.T) {
	_, err := NewCollector(&MockFetcher{}, 0).Collect(context.Background(), "X", feb1, jan1)
	require.Error(t, err)
}

func TestCollectAll_SkipsFailedSymbols(t *testing.T) {
	boom := errors.New("boom")
	mock := &MockFetcher{Price: 10, Err: map[string]error{"BAD": boom}}

	table, err := NewCollector(mock, 10).CollectAll(context.Background(), []string{"VTI", "BAD", "IEF"}, jan1, feb1)
	require.NoError(t, err)
	assert.Equal(t, []string{"IEF", "VTI"}, Symbols(table))

	_, err = NewCollector(mock, 10).CollectAll(context.Background(), []string{"BAD"}, jan1, feb1)
	require.ErrorIs(t, err, ErrNoData)
	require.ErrorIs(t, err, boom)
}

func TestMockFetcher_FixedBars(t *testing.T) {
	mock := &MockFetcher{Bars: map[string][]model.OHLCV{
		"A": {
			{Time: jan1, Close: 1},
			{Time: jan1.AddDate(0, 0, 1), Close: 2},
			{Time: feb1, Close: 3},
		},
	}}
	s, err := mock.FetchSeries(context.Background(), "A", jan1, feb1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, s.Col(3))
}

const yahooResponse = `{"chart":{"result":[{"timestamp":[%d,%d,%d],
"indicators":{"quote":[{"open":[10,null,12],"high":[11,null,13],"low":[9,null,11],"close":[10.5,null,12.5],"volume":[1000,null,3000]}],
"adjclose":[{"adjclose":[10.0,null,12.0]}]}}],"error":null}}`

func TestYahooFetcher(t *testing.T) {
	d0, d1, d2 := jan1.Add(14*time.Hour), jan1.Add(38*time.Hour), jan1.Add(62*time.Hour)
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		fmt.Fprintf(w, yahooResponse, d0.Unix(), d1.Unix(), d2.Unix())
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	s, err := f.FetchSeries(context.Background(), "SPX500", jan1, feb1)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/^GSPC", gotPath)
	assert.Contains(t, gotQuery, fmt.Sprintf("period1=%d", jan1.Unix()))
	assert.Equal(t, 2, s.Len(), "null bar must be skipped")
	assert.Equal(t, []string{"SPX500.Open", "SPX500.High", "SPX500.Low", "SPX500.Close", "SPX500.Volume", "SPX500.Adjusted"}, s.Columns())
	assert.Equal(t, []float64{10, 11, 9, 10.5, 1000, 10}, s.Row(0))
	assert.Equal(t, []float64{12, 13, 11, 12.5, 3000, 12}, s.Row(1))
	assert.True(t, s.Time(1).Equal(d2))
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchSeries(context.Background(), "NOPE", jan1, feb1)
	require.ErrorContains(t, err, "delisted")
}

func TestRESTFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "IEF", r.URL.Query().Get("symbol"))
		fmt.Fprintf(w, `[{"timestamp":%d,"open":2,"high":3,"low":1,"close":2.5,"volume":7},
			{"timestamp":%d,"open":1,"high":2,"low":0.5,"close":1.5,"volume":5,"adjusted":1.4}]`,
			jan1.AddDate(0, 0, 1).Unix(), jan1.Unix())
	}))
	defer srv.Close()

	s, err := NewRESTFetcher(srv.URL, "secret", "").FetchSeries(context.Background(), "IEF", jan1, feb1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 0.5, 1.5, 5, 1.4}, s.Row(0))
	assert.Equal(t, []float64{2, 3, 1, 2.5, 7, 2.5}, s.Row(1))

	_, err = NewRESTFetcher(srv.URL, "wrong", "").FetchSeries(context.Background(), "IEF", jan1, feb1)
	require.ErrorContains(t, err, "status 401")
}

func TestSQLiteFetcher(t *testing.T) {
	f, err := NewSQLiteFetcher(filepath.Join(t.TempDir(), "bars.db"))
	require.NoError(t, err)
	defer f.Close()

	for i, c := range []float64{10, 11, 12, 13} {
		ts := jan1.AddDate(0, 0, i).Unix()
		_, err := f.db.Exec(`INSERT INTO bars (symbol, timestamp, open, high, low, close, volume, adjusted)
			VALUES (?,?,?,?,?,?,?,?)`, "VTI", ts, c, c+1, c-1, c, 100*c, nil)
		require.NoError(t, err)
	}
	_, err = f.db.Exec(`INSERT INTO bars VALUES ('IEF', ?, 1, 1, 1, 1, 1, 0.5)`, jan1.Unix())
	require.NoError(t, err)

	s, err := f.FetchSeries(context.Background(), "VTI", jan1.AddDate(0, 0, 1), jan1.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{11, 12, 10, 11, 1100, 11}, s.Row(0))
	assert.True(t, s.Time(0).Equal(jan1.AddDate(0, 0, 1)))

	s, err = NewCollector(f, 2).Collect(context.Background(), "VTI", jan1, feb1)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11, 12, 13}, s.Col(3))
}
