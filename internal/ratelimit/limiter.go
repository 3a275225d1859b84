package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces rate-limit counters in Redis.
	keyPrefix = "ratelimit:"

	// DefaultWindow is the fixed window length for mail-sending routes.
	DefaultWindow = time.Hour
)

// Limiter is a fixed-window counter over Redis. It guards the routes that
// trigger outbound mail so a single client cannot drain the relay quota.
// A nil Limiter is valid and allows everything, which is how the server
// runs when no Redis URL is configured.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// New creates a Limiter allowing `limit` events per `window` per key.
func New(client *redis.Client, limit int, window time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{client: client, limit: limit, window: window}
}

// Allow increments the counter for (scope, subject) in the current window
// and reports whether the event is within the limit. The INCR and EXPIRE
// run in one pipeline; the TTL is only set when the key is fresh so the
// window does not slide.
func (l *Limiter) Allow(ctx context.Context, scope, subject string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}

	key := WindowKey(scope, subject, time.Now(), l.window)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}

	return incr.Val() <= int64(l.limit), nil
}

// WindowKey builds the Redis key for a fixed window. The window index is
// part of the key, so counters from past windows simply expire.
func WindowKey(scope, subject string, now time.Time, window time.Duration) string {
	idx := now.UnixNano() / int64(window)
	return fmt.Sprintf("%s%s:%s:%d", keyPrefix, scope, subject, idx)
}
