package config

import (
	"fmt"
	"os"

	"OHLCToolkit/internal/calculator"
	"OHLCToolkit/internal/logger"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "configs/config.yaml"

// Data source providers.
const (
	ProviderYahoo  = "yahoo"
	ProviderREST   = "rest"
	ProviderSQLite = "sqlite"
	ProviderMock   = "mock"
)

// Config holds all application configuration.
type Config struct {
	DataSource  DataSourceConfig  `yaml:"data_source" envPrefix:"DATA_"`
	Symbols     []string          `yaml:"symbols" env:"SYMBOLS" envSeparator:","`
	History     HistoryConfig     `yaml:"history" envPrefix:"HISTORY_"`
	Aggregation AggregationConfig `yaml:"aggregation" envPrefix:"AGGREGATION_"`
	Signals     SignalsConfig     `yaml:"signals" envPrefix:"SIGNALS_"`
	Schedule    ScheduleConfig    `yaml:"schedule" envPrefix:"SCHEDULE_"`
	Output      OutputConfig      `yaml:"output" envPrefix:"OUTPUT_"`
	Log         LogConfig         `yaml:"log" envPrefix:"LOG_"`
	Proxy       string            `yaml:"proxy" env:"HTTPS_PROXY"`
}

// DataSourceConfig selects where bars are downloaded from.
type DataSourceConfig struct {
	Provider   string `yaml:"provider" env:"PROVIDER"`
	BaseURL    string `yaml:"base_url" env:"BASE_URL"`
	APIKey     string `yaml:"api_key" env:"API_KEY"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
}

// HistoryConfig controls how much history is downloaded and in what chunks.
type HistoryConfig struct {
	LookbackDays int `yaml:"lookback_days" env:"LOOKBACK_DAYS"`
	ChunkDays    int `yaml:"chunk_days" env:"CHUNK_DAYS"`
}

type AggregationConfig struct {
	Period string `yaml:"period" env:"PERIOD"`
}

// SignalsConfig sizes the rolling and lagged signals, in aggregated periods.
type SignalsConfig struct {
	RollingWindow int `yaml:"rolling_window" env:"ROLLING_WINDOW"`
	Lag           int `yaml:"lag" env:"LAG"`
	RSIPeriod     int `yaml:"rsi_period" env:"RSI_PERIOD"`
	RangeWindow   int `yaml:"range_window" env:"RANGE_WINDOW"`
}

// ScheduleConfig holds the refresh cron spec (with seconds). Empty runs once.
type ScheduleConfig struct {
	Cron string `yaml:"cron" env:"CRON"`
}

// OutputConfig sets where reports and charts are written. Empty means stdout.
type OutputConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// Path returns CONFIG_PATH or DefaultPath.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	_ = godotenv.Load()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderYahoo
	}
	if c.DataSource.SQLitePath == "" {
		c.DataSource.SQLitePath = "data/bars.db"
	}
	if len(c.Symbols) == 0 {
		c.Symbols = []string{"SPX500"}
	}
	if c.History.LookbackDays == 0 {
		c.History.LookbackDays = 365
	}
	if c.History.ChunkDays == 0 {
		c.History.ChunkDays = 90
	}
	if c.Aggregation.Period == "" {
		c.Aggregation.Period = string(calculator.PeriodDaily)
	}
	if c.Signals.RollingWindow == 0 {
		c.Signals.RollingWindow = 20
	}
	if c.Signals.Lag == 0 {
		c.Signals.Lag = 1
	}
	if c.Signals.RSIPeriod == 0 {
		c.Signals.RSIPeriod = 14
	}
	if c.Signals.RangeWindow == 0 {
		c.Signals.RangeWindow = 252
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderMock:
	case ProviderREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for provider %q", ProviderREST)
		}
	case ProviderSQLite:
		if c.DataSource.SQLitePath == "" {
			return fmt.Errorf("data_source.sqlite_path is required for provider %q", ProviderSQLite)
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, rest, sqlite, mock", c.DataSource.Provider)
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	if c.History.LookbackDays <= 0 {
		return fmt.Errorf("history.lookback_days must be positive")
	}
	if c.History.ChunkDays < 0 {
		return fmt.Errorf("history.chunk_days must not be negative")
	}
	if _, err := calculator.ParsePeriod(c.Aggregation.Period); err != nil {
		return fmt.Errorf("aggregation.period: %w", err)
	}
	if c.Signals.RollingWindow <= 0 || c.Signals.Lag <= 0 || c.Signals.RSIPeriod <= 0 || c.Signals.RangeWindow <= 0 {
		return fmt.Errorf("signals: rolling_window, lag, rsi_period and range_window must be positive")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
