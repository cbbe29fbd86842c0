// Package cache keeps recently computed analytics reports in Redis so
// repeated report requests do not recompute everything. The cache fails
// open: a down Redis trips a circuit breaker and callers fall back to
// recomputing.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// ErrMiss is returned when the key is absent or the cache is
// unavailable.
var ErrMiss = fmt.Errorf("cache miss")

// ReportCache stores serialized report payloads with a TTL.
type ReportCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
}

// New builds a report cache around an existing Redis client.
func New(client *redis.Client, ttl time.Duration) *ReportCache {
	settings := gobreaker.Settings{
		Name:    "report-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).
				Str("from", from.String()).Str("to", to.String()).
				Msg("report cache breaker state change")
		},
	}
	return &ReportCache{
		client:  client,
		ttl:     ttl,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Get unmarshals the cached payload for key into dest. Returns ErrMiss
// when the key is absent or Redis is unavailable.
func (c *ReportCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := c.breaker.Execute(func() (interface{}, error) {
		data, err := c.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			// A miss is a healthy answer, not a breaker failure.
			return []byte(nil), nil
		}
		return data, err
	})
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("report cache get failed")
		return ErrMiss
	}
	data := raw.([]byte)
	if data == nil {
		return ErrMiss
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode cached report: %w", err)
	}
	return nil
}

// Set stores value under key with the configured TTL. Failures are
// logged, not propagated: a cold cache is not an error.
func (c *ReportCache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("report cache encode failed")
		return
	}
	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, data, c.ttl).Err()
	})
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("report cache set failed")
	}
}

// Invalidate drops the cached payload for key, typically after a new
// session is recorded.
func (c *ReportCache) Invalidate(ctx context.Context, key string) {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Del(ctx, key).Err()
	})
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("report cache invalidate failed")
	}
}
