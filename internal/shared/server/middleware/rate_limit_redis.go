package middleware

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sibap-dev/storm/internal/shared/telemetry"
)

// RedisLimiter is a fixed-window counter shared by every API instance. A window
// admits Burst requests and lasts Burst/Rate seconds. Redis errors fail open.
type RedisLimiter struct {
	Client *redis.Client
	Prefix string
}

// NewRedisLimiter connects to redisURL (redis://host:port/db).
func NewRedisLimiter(redisURL string) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisLimiter{Client: redis.NewClient(opts), Prefix: "ratelimit:"}, nil
}

// Ping checks the connection.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.Client.Ping(ctx).Err()
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || l.Client == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	window := time.Duration(math.Ceil(float64(rule.Burst)/rule.Rate*1000)) * time.Millisecond
	if window < time.Second {
		window = time.Second
	}
	redisKey := l.Prefix + key

	// The window starts with the first hit; SET NX PX and INCR run in one MULTI.
	var (
		count *redis.IntCmd
		ttl   *redis.DurationCmd
	)
	_, err := l.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, window)
		count = pipe.Incr(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		telemetry.Warn("ratelimit.redis_error", map[string]any{"key": key, "err": err})
		return true, 0
	}

	wait := ttl.Val()
	if wait < 0 {
		// Counter without an expiry, e.g. written by an older release.
		if err := l.Client.PExpire(ctx, redisKey, window).Err(); err != nil {
			telemetry.Warn("ratelimit.redis_error", map[string]any{"key": key, "err": err})
		}
		wait = window
	}
	if count.Val() <= int64(rule.Burst) {
		return true, 0
	}
	if wait == 0 {
		wait = window
	}
	return false, wait
}

// Close releases the client.
func (l *RedisLimiter) Close() error {
	if l == nil || l.Client == nil {
		return nil
	}
	return l.Client.Close()
}
