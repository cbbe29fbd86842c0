package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/TeamCinco/Poker-Analysis/internal/persistence"
)

// scoresRepo implements ScoreRepo for PostgreSQL.
type scoresRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewScoresRepo creates a PostgreSQL decay-score repository.
func NewScoresRepo(db *sqlx.DB, timeout time.Duration) persistence.ScoreRepo {
	return &scoresRepo{db: db, timeout: timeout}
}

func (r *scoresRepo) Insert(ctx context.Context, snap persistence.ScoreSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO decay_scores (ts, sessions, alpha_decay_score, decay_level, recommendation)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		snap.Timestamp, snap.Sessions, snap.AlphaDecayScore,
		snap.DecayLevel, snap.Recommendation)
	if err != nil {
		return fmt.Errorf("failed to insert decay score: %w", err)
	}
	return nil
}

func (r *scoresRepo) Latest(ctx context.Context) (*persistence.ScoreSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, ts, sessions, alpha_decay_score, decay_level, recommendation, created_at
		FROM decay_scores
		ORDER BY ts DESC
		LIMIT 1`

	var snap persistence.ScoreSnapshot
	if err := r.db.GetContext(ctx, &snap, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest decay score: %w", err)
	}
	return &snap, nil
}

func (r *scoresRepo) History(ctx context.Context, limit int) ([]persistence.ScoreSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, ts, sessions, alpha_decay_score, decay_level, recommendation, created_at
		FROM decay_scores
		ORDER BY ts DESC
		LIMIT $1`

	var snaps []persistence.ScoreSnapshot
	if err := r.db.SelectContext(ctx, &snaps, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list decay scores: %w", err)
	}
	return snaps, nil
}
