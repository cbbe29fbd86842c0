// Package persistence defines the repository contracts used to store
// session records and computed alpha-decay scores. The analytics engine
// itself never touches storage; these collaborators feed it and keep its
// outputs.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

// ScoreSnapshot records one computed alpha-decay assessment so the decay
// history can be charted over time.
type ScoreSnapshot struct {
	ID              int64     `json:"id" db:"id"`
	Timestamp       time.Time `json:"ts" db:"ts"`
	Sessions        int       `json:"sessions" db:"sessions"`
	AlphaDecayScore float64   `json:"alpha_decay_score" db:"alpha_decay_score"`
	DecayLevel      string    `json:"decay_level" db:"decay_level"`
	Recommendation  string    `json:"recommendation" db:"recommendation"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// SessionRepo stores and retrieves session records in chronological
// order. Implementations must return sessions ordered by date ascending;
// the analytics engine trusts that ordering and does not re-sort.
type SessionRepo interface {
	// Insert adds one session record.
	Insert(ctx context.Context, rec session.Record) error

	// List returns all sessions ordered by date ascending.
	List(ctx context.Context) ([]session.Record, error)

	// Get returns one session by ID, or nil if absent.
	Get(ctx context.Context, id uuid.UUID) (*session.Record, error)

	// Delete removes one session by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count reports the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

// ScoreRepo persists computed decay scores.
type ScoreRepo interface {
	// Insert stores one score snapshot.
	Insert(ctx context.Context, snap ScoreSnapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*ScoreSnapshot, error)

	// History returns up to limit snapshots ordered by timestamp
	// descending.
	History(ctx context.Context, limit int) ([]ScoreSnapshot, error)
}

// Repository bundles the concrete repos behind one handle.
type Repository struct {
	Sessions SessionRepo
	Scores   ScoreRepo
}
