package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	TotalSessions int     `json:"total_sessions"`
	Score         float64 `json:"score"`
}

func TestGetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute)

	mock.ExpectGet("report:latest").SetVal(`{"total_sessions":60,"score":12.5}`)

	var got payload
	require.NoError(t, c.Get(context.Background(), "report:latest", &got))
	assert.Equal(t, payload{TotalSessions: 60, Score: 12.5}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute)

	mock.ExpectGet("report:latest").RedisNil()

	var got payload
	err := c.Get(context.Background(), "report:latest", &got)
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCorruptPayload(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute)

	mock.ExpectGet("report:latest").SetVal("{not json")

	var got payload
	err := c.Get(context.Background(), "report:latest", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestSetAndInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute)

	mock.ExpectSet("report:latest", []byte(`{"total_sessions":5,"score":0}`), time.Minute).SetVal("OK")
	c.Set(context.Background(), "report:latest", payload{TotalSessions: 5})

	mock.ExpectDel("report:latest").SetVal(1)
	c.Invalidate(context.Background(), "report:latest")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBreakerFailsOpenAfterConsecutiveErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute)
	boom := errors.New("connection refused")

	for i := 0; i < 3; i++ {
		mock.ExpectGet("report:latest").SetErr(boom)
		var got payload
		assert.ErrorIs(t, c.Get(context.Background(), "report:latest", &got), ErrMiss)
	}

	// The breaker is open now: no further Redis calls are made and
	// callers still just see a miss.
	var got payload
	assert.ErrorIs(t, c.Get(context.Background(), "report:latest", &got), ErrMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissesDoNotTripBreaker(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute)

	for i := 0; i < 4; i++ {
		mock.ExpectGet("report:latest").RedisNil()
	}
	for i := 0; i < 4; i++ {
		var got payload
		assert.ErrorIs(t, c.Get(context.Background(), "report:latest", &got), ErrMiss)
	}

	// Still closed: a real hit goes straight through.
	mock.ExpectGet("report:latest").SetVal(`{"total_sessions":1,"score":1}`)
	var got payload
	assert.NoError(t, c.Get(context.Background(), "report:latest", &got))
}
