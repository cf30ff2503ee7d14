package collector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"OHLCToolkit/internal/model"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteFetcher implements Fetcher by reading bars that an external loader
// has written into a local SQLite database.
type SQLiteFetcher struct {
	db   *sql.DB
	path string
}

// NewSQLiteFetcher opens (or creates) the SQLite database and ensures the bars table exists.
func NewSQLiteFetcher(dbPath string) (*SQLiteFetcher, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the loader keep writing while we read.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	f := &SQLiteFetcher{db: db, path: dbPath}
	if err := f.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	zap.L().Info("sqlite bar source opened", zap.String("path", dbPath))
	return f, nil
}

func (f *SQLiteFetcher) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bars (
			symbol    TEXT    NOT NULL,
			timestamp INTEGER NOT NULL,
			open      REAL,
			high      REAL,
			low       REAL,
			close     REAL,
			volume    REAL,
			adjusted  REAL,
			PRIMARY KEY (symbol, timestamp)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_ts ON bars(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := f.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (f *SQLiteFetcher) Name() string { return "sqlite" }

// FetchSeries reads bars for symbol with timestamps in [from, to).
// A NULL adjusted price falls back to the close.
func (f *SQLiteFetcher) FetchSeries(ctx context.Context, symbol string, from, to time.Time) (*model.Series, error) {
	rows, err := f.db.QueryContext(ctx, `SELECT timestamp, open, high, low, close, volume, COALESCE(adjusted, close)
		FROM bars
		WHERE symbol = ? AND timestamp >= ? AND timestamp < ?
		ORDER BY timestamp`,
		symbol, from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume, &b.Adjusted); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bars: %w", err)
	}
	return model.SeriesFromBars(symbol, bars)
}

// Close closes the underlying database.
func (f *SQLiteFetcher) Close() error {
	zap.L().Info("closing sqlite bar source", zap.String("path", f.path))
	return f.db.Close()
}
