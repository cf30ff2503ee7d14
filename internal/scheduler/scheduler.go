package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"OHLCToolkit/internal/collector"
	"OHLCToolkit/internal/model"
	"OHLCToolkit/internal/render"
	"OHLCToolkit/internal/strategy"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job describes what one refresh downloads and evaluates.
type Job struct {
	Symbols      []string
	LookbackDays int
	Params       strategy.Params
}

// Scheduler runs the refresh job on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Job       Job
	Ctx       context.Context

	// OutputPath receives each refresh's report, replacing the previous one.
	// When empty the report is written to Out.
	OutputPath string
	Out        io.Writer
	Now        func() time.Time

	mu sync.Mutex
}

// NewScheduler creates a new Scheduler. Overlapping cron runs are skipped.
func NewScheduler(ctx context.Context, col *collector.Collector, job Job, outputPath string) *Scheduler {
	logger := cronLogger{zap.L().Sugar()}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Collector:  col,
		Job:        job,
		Ctx:        ctx,
		OutputPath: outputPath,
		Out:        os.Stdout,
		Now:        time.Now,
	}
}

// Register adds the refresh job under the given cron spec (with seconds).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	zap.L().Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	zap.L().Info("scheduler stopped")
}

// RunNow executes one refresh immediately.
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.refresh(ctx)
}

func (s *Scheduler) refreshTask() {
	if err := s.refresh(s.Ctx); err != nil {
		zap.L().Error("refresh failed", zap.Error(err))
	}
}

func (s *Scheduler) refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()
	to := now.Truncate(24*time.Hour).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -s.Job.LookbackDays)
	zap.L().Info("running refresh",
		zap.Strings("symbols", s.Job.Symbols),
		zap.String("from", from.Format(time.DateOnly)),
		zap.String("to", to.Format(time.DateOnly)),
	)

	table, err := s.Collector.CollectAll(ctx, s.Job.Symbols, from, to)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	var buf bytes.Buffer
	var evaluated int
	for _, sym := range collector.Symbols(table) {
		sig, err := strategy.Evaluate(table[sym], s.Job.Params)
		if err != nil {
			zap.L().Warn("skipping evaluation", zap.String("symbol", sym), zap.Error(err))
			continue
		}
		buf.WriteString(render.FormatReport(sig, now))
		buf.WriteString("\n")
		if err := render.Chart(&buf, sig.Bars, model.FieldClose, sig.Breakout); err != nil {
			return fmt.Errorf("chart %s: %w", sym, err)
		}
		buf.WriteString("\n")
		evaluated++
	}
	if evaluated == 0 {
		return errors.New("no symbol could be evaluated")
	}

	if err := s.write(buf.Bytes()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	zap.L().Info("refresh complete", zap.Int("symbols", evaluated))
	return nil
}

// write replaces OutputPath atomically, or writes to Out.
func (s *Scheduler) write(report []byte) error {
	if s.OutputPath == "" {
		_, err := s.Out.Write(report)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.OutputPath), 0o755); err != nil {
		return err
	}
	tmp := s.OutputPath + ".tmp"
	if err := os.WriteFile(tmp, report, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.OutputPath)
}

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
