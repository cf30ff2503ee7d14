package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
data_source:
  provider: rest
  base_url: http://bars.local
  api_key: from-file
symbols: [VTI, IEF]
history:
  lookback_days: 730
  chunk_days: 30
aggregation:
  period: weekly
signals:
  rolling_window: 10
schedule:
  cron: "0 0 22 * * 1-5"
log:
  level: debug
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ProviderREST, cfg.DataSource.Provider)
	assert.Equal(t, "from-file", cfg.DataSource.APIKey)
	assert.Equal(t, []string{"VTI", "IEF"}, cfg.Symbols)
	assert.Equal(t, 730, cfg.History.LookbackDays)
	assert.Equal(t, 30, cfg.History.ChunkDays)
	assert.Equal(t, "weekly", cfg.Aggregation.Period)
	assert.Equal(t, 10, cfg.Signals.RollingWindow)
	assert.Equal(t, 1, cfg.Signals.Lag)
	assert.Equal(t, 14, cfg.Signals.RSIPeriod)
	assert.Equal(t, "0 0 22 * * 1-5", cfg.Schedule.Cron)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Output.Path)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ProviderYahoo, cfg.DataSource.Provider)
	assert.Equal(t, []string{"SPX500"}, cfg.Symbols)
	assert.Equal(t, 365, cfg.History.LookbackDays)
	assert.Equal(t, 90, cfg.History.ChunkDays)
	assert.Equal(t, "daily", cfg.Aggregation.Period)
	assert.Equal(t, 20, cfg.Signals.RollingWindow)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATA_API_KEY", "from-env")
	t.Setenv("SYMBOLS", "SPY,QQQ,TLT")
	t.Setenv("HISTORY_CHUNK_DAYS", "7")
	t.Setenv("SIGNALS_LAG", "5")
	t.Setenv("OUTPUT_PATH", "/tmp/report.txt")
	t.Setenv("HTTPS_PROXY", "http://proxy:3128")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.DataSource.APIKey)
	assert.Equal(t, "http://bars.local", cfg.DataSource.BaseURL)
	assert.Equal(t, []string{"SPY", "QQQ", "TLT"}, cfg.Symbols)
	assert.Equal(t, 7, cfg.History.ChunkDays)
	assert.Equal(t, 5, cfg.Signals.Lag)
	assert.Equal(t, "/tmp/report.txt", cfg.Output.Path)
	assert.Equal(t, "http://proxy:3128", cfg.Proxy)
}

func TestLoad_BadInput(t *testing.T) {
	_, err := Load(writeConfig(t, "symbols: [unterminated"))
	require.Error(t, err)

	t.Setenv("HISTORY_LOOKBACK_DAYS", "many")
	_, err = Load(writeConfig(t, sample))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "ftp" }},
		{"rest without url", func(c *Config) { c.DataSource.Provider = ProviderREST }},
		{"sqlite without path", func(c *Config) {
			c.DataSource.Provider = ProviderSQLite
			c.DataSource.SQLitePath = ""
		}},
		{"no symbols", func(c *Config) { c.Symbols = nil }},
		{"negative lookback", func(c *Config) { c.History.LookbackDays = -1 }},
		{"negative chunk", func(c *Config) { c.History.ChunkDays = -1 }},
		{"bad period", func(c *Config) { c.Aggregation.Period = "hourly" }},
		{"negative window", func(c *Config) { c.Signals.RollingWindow = -3 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, Path())
	t.Setenv("CONFIG_PATH", "/etc/ohlckit.yaml")
	assert.Equal(t, "/etc/ohlckit.yaml", Path())
}
