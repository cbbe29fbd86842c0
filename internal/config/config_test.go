package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []int{10, 20, 50}, cfg.Analysis.RollingWindows)
	assert.Equal(t, 5, cfg.Analysis.ShortMAWindow)
	assert.Equal(t, 15, cfg.Analysis.LongMAWindow)
	assert.Equal(t, 1000, cfg.Forecast.Simulations)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
analysis:
  rolling_windows: [5, 25]
  short_ma_window: 3
  long_ma_window: 9
forecast:
  simulations: 250
store:
  backend: file
  path: /tmp/sessions.json
server:
  addr: ":9090"
  rps: 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 25}, cfg.Analysis.RollingWindows)
	assert.Equal(t, 3, cfg.Analysis.ShortMAWindow)
	assert.Equal(t, 250, cfg.Forecast.Simulations)
	assert.Equal(t, "/tmp/sessions.json", cfg.Store.Path)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.InDelta(t, 2.5, cfg.Server.RPS, 1e-12)

	// Untouched sections keep their defaults.
	assert.Equal(t, 100, cfg.Forecast.SessionsAhead)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty rolling windows",
			mutate:  func(c *Config) { c.Analysis.RollingWindows = nil },
			wantErr: "rolling_windows",
		},
		{
			name:    "window below minimum",
			mutate:  func(c *Config) { c.Analysis.RollingWindows = []int{1} },
			wantErr: "too small",
		},
		{
			name:    "long MA not above short MA",
			mutate:  func(c *Config) { c.Analysis.LongMAWindow = 5 },
			wantErr: "must exceed",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Store.Backend = "sqlite" },
			wantErr: "unknown store backend",
		},
		{
			name: "postgres backend without database",
			mutate: func(c *Config) {
				c.Store.Backend = "postgres"
				c.Database.Enabled = false
			},
			wantErr: "database is not enabled",
		},
		{
			name: "database enabled without DSN",
			mutate: func(c *Config) {
				c.Database.Enabled = true
				c.Database.DSN = ""
			},
			wantErr: "DSN is required",
		},
		{
			name:    "zero simulations",
			mutate:  func(c *Config) { c.Forecast.Simulations = 0 },
			wantErr: "simulations must be positive",
		},
		{
			name:    "non-positive rps",
			mutate:  func(c *Config) { c.Server.RPS = 0 },
			wantErr: "rps must be positive",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
