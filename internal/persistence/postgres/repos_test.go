package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamCinco/Poker-Analysis/internal/persistence"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestSessionsInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db, 5*time.Second)

	rec := session.NewRecord(time.Date(2025, 5, 2, 19, 0, 0, 0, time.UTC), 100, 180, 5, "cash game")

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(rec.ID, rec.Date, rec.BuyIn, rec.CashOut, rec.Fees,
			rec.ProfitLoss, rec.NewDeposit, rec.Notes).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsListOrdersByDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db, 5*time.Second)

	id1, id2 := uuid.New(), uuid.New()
	t1 := time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)
	t2 := t1.AddDate(0, 0, 1)

	rows := sqlmock.NewRows([]string{"id", "ts", "buy_in", "cash_out", "fees", "profit_loss", "new_deposit", "notes"}).
		AddRow(id1, t1, 100.0, 150.0, 0.0, 50.0, 100.0, "").
		AddRow(id2, t2, 150.0, 140.0, 0.0, -10.0, 0.0, "tilted")

	mock.ExpectQuery("SELECT id, ts, buy_in, cash_out, fees, profit_loss, new_deposit, notes").
		WillReturnRows(rows)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, id1, records[0].ID)
	assert.InDelta(t, -10, records[1].ProfitLoss, 1e-9)
	assert.Equal(t, "tilted", records[1].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsGetAbsentReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db, 5*time.Second)

	id := uuid.New()
	mock.ExpectQuery("SELECT id, ts, buy_in, cash_out, fees, profit_loss, new_deposit, notes").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db, 5*time.Second)

	id := uuid.New()
	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db, 5*time.Second)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoresInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScoresRepo(db, 5*time.Second)

	snap := persistence.ScoreSnapshot{
		Timestamp:       time.Date(2025, 5, 3, 12, 0, 0, 0, time.UTC),
		Sessions:        60,
		AlphaDecayScore: 72.5,
		DecayLevel:      "SEVERE ALPHA DECAY",
		Recommendation:  "STOP PLAYING - Your edge has significantly deteriorated",
	}

	mock.ExpectExec("INSERT INTO decay_scores").
		WithArgs(snap.Timestamp, snap.Sessions, snap.AlphaDecayScore,
			snap.DecayLevel, snap.Recommendation).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Insert(context.Background(), snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoresLatestEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScoresRepo(db, 5*time.Second)

	mock.ExpectQuery("SELECT id, ts, sessions, alpha_decay_score").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	snap, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoresHistoryDefaultLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScoresRepo(db, 5*time.Second)

	now := time.Now().UTC().Truncate(time.Second)
	rows := sqlmock.NewRows([]string{"id", "ts", "sessions", "alpha_decay_score", "decay_level", "recommendation", "created_at"}).
		AddRow(int64(2), now, 60, 35.0, "MODERATE ALPHA DECAY", "REDUCE STAKES - Review strategy and take a break", now).
		AddRow(int64(1), now.Add(-24*time.Hour), 55, 12.0, "STABLE/IMPROVING", "CONTINUE - Performance remains strong", now)

	mock.ExpectQuery("SELECT id, ts, sessions, alpha_decay_score").
		WithArgs(100).
		WillReturnRows(rows)

	snaps, err := repo.History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, int64(2), snaps[0].ID)
	assert.InDelta(t, 35.0, snaps[0].AlphaDecayScore, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}
