// Package file implements the session repository as a single JSON file,
// matching the original tracker's on-disk format. It suits a single
// player tracking their own bankroll without a database.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TeamCinco/Poker-Analysis/internal/persistence"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

// Store keeps all session records in one JSON file, loaded on open and
// rewritten on every mutation.
type Store struct {
	mu   sync.Mutex
	path string
	recs []session.Record
}

// Open loads the store at path. A missing file is an empty store, not an
// error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.recs); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", path, err)
	}
	return s, nil
}

// AddSession appends a session built from raw amounts. A zero buy-in is
// a continuation session: it plays the previous cash-out forward and
// records no new deposit.
func (s *Store) AddSession(ctx context.Context, date time.Time, buyIn, cashOut, fees float64, notes string) (session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newDeposit := buyIn
	if buyIn == 0 && len(s.recs) > 0 {
		buyIn = s.recs[len(s.recs)-1].CashOut
		newDeposit = 0
	}

	rec := session.NewRecord(date, buyIn, cashOut, fees, notes)
	rec.NewDeposit = newDeposit
	s.recs = append(s.recs, rec)
	if err := s.flush(); err != nil {
		s.recs = s.recs[:len(s.recs)-1]
		return session.Record{}, err
	}
	return rec, nil
}

// Insert implements persistence.SessionRepo.
func (s *Store) Insert(ctx context.Context, rec session.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs = append(s.recs, rec)
	if err := s.flush(); err != nil {
		s.recs = s.recs[:len(s.recs)-1]
		return err
	}
	return nil
}

// List returns all sessions in insertion (chronological) order.
func (s *Store) List(ctx context.Context) ([]session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]session.Record, len(s.recs))
	copy(out, s.recs)
	return out, nil
}

// Get returns one session by ID, or nil if absent.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.recs {
		if r.ID == id {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

// Delete removes one session by ID.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.recs {
		if r.ID == id {
			s.recs = append(s.recs[:i], s.recs[i+1:]...)
			return s.flush()
		}
	}
	return fmt.Errorf("session %s not found", id)
}

// Count reports the number of stored sessions.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs), nil
}

// flush rewrites the backing file. Callers hold the lock.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.recs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", s.path, err)
	}
	return nil
}

var _ persistence.SessionRepo = (*Store)(nil)
