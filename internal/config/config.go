// Package config loads and validates the application configuration from
// YAML, with defaults that match the analytics engine's tuned windows.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Forecast ForecastConfig `yaml:"forecast"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Server   ServerConfig   `yaml:"server"`
}

// AnalysisConfig controls the decay detectors' window parameters. The
// composite scorer's weights were tuned against the defaults; change
// them with care.
type AnalysisConfig struct {
	RollingWindows []int `yaml:"rolling_windows"` // Default: 10, 20, 50
	ShortMAWindow  int   `yaml:"short_ma_window"` // Default: 5
	LongMAWindow   int   `yaml:"long_ma_window"`  // Default: 15
}

// ForecastConfig controls the Monte Carlo projection.
type ForecastConfig struct {
	Simulations   int   `yaml:"simulations"`    // Default: 1000
	SessionsAhead int   `yaml:"sessions_ahead"` // Default: 100
	Seed          int64 `yaml:"seed"`           // 0 = derive from wall clock
}

// StoreConfig selects and configures the session store backend.
type StoreConfig struct {
	Backend string `yaml:"backend"` // "file" or "postgres"
	Path    string `yaml:"path"`    // JSON file path for the file backend
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
	Enabled         bool          `yaml:"enabled"`
}

// RedisConfig holds report-cache settings.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Enabled  bool          `yaml:"enabled"`
}

// ServerConfig holds report API settings.
type ServerConfig struct {
	Addr  string  `yaml:"addr"`
	RPS   float64 `yaml:"rps"`   // Requests per second per client
	Burst int     `yaml:"burst"` // Burst capacity
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			RollingWindows: []int{10, 20, 50},
			ShortMAWindow:  5,
			LongMAWindow:   15,
		},
		Forecast: ForecastConfig{
			Simulations:   1000,
			SessionsAhead: 100,
		},
		Store: StoreConfig{
			Backend: "file",
			Path:    "poker_sessions.json",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			QueryTimeout:    30 * time.Second,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  5 * time.Minute,
		},
		Server: ServerConfig{
			Addr:  ":8080",
			RPS:   10,
			Burst: 20,
		},
	}
}

// Load reads and validates a YAML configuration file, filling omitted
// sections with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run
// with.
func (c *Config) Validate() error {
	if len(c.Analysis.RollingWindows) == 0 {
		return fmt.Errorf("analysis.rolling_windows must not be empty")
	}
	for _, w := range c.Analysis.RollingWindows {
		if w < 2 {
			return fmt.Errorf("rolling window %d is too small (minimum 2)", w)
		}
	}
	if c.Analysis.ShortMAWindow < 1 {
		return fmt.Errorf("analysis.short_ma_window must be positive")
	}
	if c.Analysis.LongMAWindow <= c.Analysis.ShortMAWindow {
		return fmt.Errorf("analysis.long_ma_window (%d) must exceed short_ma_window (%d)",
			c.Analysis.LongMAWindow, c.Analysis.ShortMAWindow)
	}
	if c.Forecast.Simulations < 1 {
		return fmt.Errorf("forecast.simulations must be positive")
	}
	if c.Forecast.SessionsAhead < 1 {
		return fmt.Errorf("forecast.sessions_ahead must be positive")
	}
	switch c.Store.Backend {
	case "file", "postgres":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == "postgres" && !c.Database.Enabled {
		return fmt.Errorf("store backend is postgres but database is not enabled")
	}
	if c.Database.Enabled && c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required when enabled")
	}
	if c.Server.RPS <= 0 {
		return fmt.Errorf("server.rps must be positive")
	}
	return nil
}
