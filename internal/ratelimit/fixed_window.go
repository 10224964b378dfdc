// Package ratelimit guards the credential endpoints (login, signup) with a
// redis fixed-window counter keyed by client IP.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 2 * time.Second

// INCR + PEXPIRE must be atomic so the first hit of a window always arms the
// expiry, even under concurrent requests.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// FixedWindowLimiter counts requests per key in fixed wall-clock windows.
// State lives in redis so all API instances share one budget.
type FixedWindowLimiter struct {
	limit  int
	window time.Duration
	client *redis.Client
	prefix string
}

// NewRedisFixedWindowLimiter connects the limiter to redis. Limit and window
// must be positive.
func NewRedisFixedWindowLimiter(addr, password, prefix string, limit int, window time.Duration) (*FixedWindowLimiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, errors.New("rate limiter requires positive limit and window")
	}
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("rate limiter redis addr is required")
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = "rentals:ratelimit"
	}
	return &FixedWindowLimiter{
		limit:  limit,
		window: window,
		client: redis.NewClient(&redis.Options{Addr: strings.TrimSpace(addr), Password: password}),
		prefix: prefix,
	}, nil
}

// Allow reports whether key still has quota in the current window. Redis
// failures deny the request: brute-force protection must not degrade to open
// when the backing store is down.
func (l *FixedWindowLimiter) Allow(key string) bool {
	if l == nil {
		return false
	}
	if key = strings.TrimSpace(key); key == "" {
		key = "unknown"
	}

	windowMs := l.window.Milliseconds()
	slot := time.Now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false
	}
	return count <= int64(l.limit)
}
