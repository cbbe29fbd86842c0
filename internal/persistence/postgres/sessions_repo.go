// Package postgres implements the persistence repositories on
// PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/TeamCinco/Poker-Analysis/internal/persistence"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

// sessionsRepo implements SessionRepo for PostgreSQL.
type sessionsRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewSessionsRepo creates a PostgreSQL session repository.
func NewSessionsRepo(db *sqlx.DB, timeout time.Duration) persistence.SessionRepo {
	return &sessionsRepo{db: db, timeout: timeout}
}

func (r *sessionsRepo) Insert(ctx context.Context, rec session.Record) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO sessions (id, ts, buy_in, cash_out, fees, profit_loss, new_deposit, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Date, rec.BuyIn, rec.CashOut, rec.Fees,
		rec.ProfitLoss, rec.NewDeposit, rec.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *sessionsRepo) List(ctx context.Context) ([]session.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, ts, buy_in, cash_out, fees, profit_loss, new_deposit, notes
		FROM sessions
		ORDER BY ts ASC`

	var records []session.Record
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return records, nil
}

func (r *sessionsRepo) Get(ctx context.Context, id uuid.UUID) (*session.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, ts, buy_in, cash_out, fees, profit_loss, new_deposit, notes
		FROM sessions
		WHERE id = $1`

	var rec session.Record
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	return &rec, nil
}

func (r *sessionsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

func (r *sessionsRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sessions`); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}
