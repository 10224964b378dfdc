package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockPrefix = "rentals:jobs:lock"

// RedisLocker implements Locker with a redis SET NX lock per job name.
type RedisLocker struct {
	client *redis.Client
}

// NewRedisLocker connects a locker to redis.
func NewRedisLocker(addr, password string) *RedisLocker {
	return &RedisLocker{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})}
}

// TryLock acquires the per-job lock. The TTL bounds how long a crashed
// holder can block the next pass.
func (l *RedisLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (bool, func(), error) {
	key := fmt.Sprintf("%s:%s", lockPrefix, name)
	ok, err := l.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, func() {}, fmt.Errorf("acquire job lock: %w", err)
	}
	if !ok {
		return false, func() {}, nil
	}
	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.client.Del(releaseCtx, key).Err()
	}
	return true, release, nil
}
