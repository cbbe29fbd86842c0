// Package db manages the PostgreSQL connection pool and wires the
// concrete repositories.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/TeamCinco/Poker-Analysis/internal/config"
	"github.com/TeamCinco/Poker-Analysis/internal/persistence"
	"github.com/TeamCinco/Poker-Analysis/internal/persistence/postgres"
)

// Manager owns the database handle and repository instances.
type Manager struct {
	db     *sqlx.DB
	config config.DatabaseConfig
	repos  *persistence.Repository
}

// NewManager opens a connection pool with the configured limits and
// verifies connectivity before returning.
func NewManager(cfg config.DatabaseConfig) (*Manager, error) {
	if !cfg.Enabled {
		return &Manager{config: cfg}, nil
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required when enabled")
	}

	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Manager{
		db:     db,
		config: cfg,
		repos: &persistence.Repository{
			Sessions: postgres.NewSessionsRepo(db, cfg.QueryTimeout),
			Scores:   postgres.NewScoresRepo(db, cfg.QueryTimeout),
		},
	}, nil
}

// Repos returns the repository bundle, or nil when the database is
// disabled.
func (m *Manager) Repos() *persistence.Repository {
	return m.repos
}

// Healthy pings the database within the query timeout.
func (m *Manager) Healthy(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database disabled")
	}
	ctx, cancel := context.WithTimeout(ctx, m.config.QueryTimeout)
	defer cancel()
	return m.db.PingContext(ctx)
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
