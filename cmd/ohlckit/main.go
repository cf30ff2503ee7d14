package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"OHLCToolkit/internal/calculator"
	"OHLCToolkit/internal/collector"
	"OHLCToolkit/internal/config"
	"OHLCToolkit/internal/logger"
	"OHLCToolkit/internal/scheduler"
	"OHLCToolkit/internal/strategy"

	"go.uber.org/zap"
)

func main() {
	boot, _ := logger.New("info")

	// Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		boot.Fatal("load config", zap.Error(err))
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		boot.Fatal("init logger", zap.Error(err))
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)
	log.Info("ohlckit starting")

	if err := cfg.Validate(); err != nil {
		log.Fatal("config validation", zap.Error(err))
	}

	// Init fetcher
	fetcher, closer, err := newFetcher(cfg)
	if err != nil {
		log.Fatal("init data source", zap.Error(err))
	}
	defer closer.Close()
	log.Info("data source ready", zap.String("source", fetcher.Name()))

	period, _ := calculator.ParsePeriod(cfg.Aggregation.Period)
	job := scheduler.Job{
		Symbols:      cfg.Symbols,
		LookbackDays: cfg.History.LookbackDays,
		Params: strategy.Params{
			Period:      period,
			Window:      cfg.Signals.RollingWindow,
			Lag:         cfg.Signals.Lag,
			RSIPeriod:   cfg.Signals.RSIPeriod,
			RangeWindow: cfg.Signals.RangeWindow,
		},
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	col := collector.NewCollector(fetcher, cfg.History.ChunkDays)
	sched := scheduler.NewScheduler(ctx, col, job, cfg.Output.Path)

	// No schedule: refresh once and exit
	if cfg.Schedule.Cron == "" {
		if err := sched.RunNow(ctx); err != nil {
			log.Error("refresh failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatal("register cron task", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, refreshing now")
		go func() {
			if err := sched.RunNow(ctx); err != nil {
				log.Error("refresh failed", zap.Error(err))
			}
		}()
	}

	log.Info("ohlckit is running, press Ctrl+C to stop", zap.String("cron", cfg.Schedule.Cron))
	<-ctx.Done()
	log.Info("shutdown signal received, stopping")
}

// newFetcher builds the configured data source. The returned closer releases
// any resources it holds.
func newFetcher(cfg *config.Config) (collector.Fetcher, io.Closer, error) {
	switch cfg.DataSource.Provider {
	case config.ProviderREST:
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy), noClose{}, nil
	case config.ProviderSQLite:
		f, err := collector.NewSQLiteFetcher(cfg.DataSource.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	case config.ProviderMock:
		return &collector.MockFetcher{Price: 100}, noClose{}, nil
	default:
		f := collector.NewYahooFetcher(cfg.Proxy)
		if cfg.DataSource.BaseURL != "" {
			f.BaseURL = cfg.DataSource.BaseURL
		}
		return f, noClose{}, nil
	}
}

type noClose struct{}

func (noClose) Close() error { return nil }
