package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-builder/internal/shared/telemetry"
)

// RedisLimiter is a fixed-window limiter shared by every API instance.
// Each window admits rule.Burst requests and lasts Burst/Rate seconds.
// It fails open when Redis is unreachable.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisLimiter{client: client, prefix: prefix, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || l.client == nil {
		return true, 0
	}
	if rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	window := time.Duration(float64(rule.Burst) / rule.Rate * float64(time.Second))
	if window <= 0 {
		return true, 0
	}
	now := l.now()
	slot := now.UnixNano() / int64(window)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, slot)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.PExpire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		telemetry.Error("ratelimit.redis_unavailable", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return true, 0
	}
	if incr.Val() <= int64(rule.Burst) {
		return true, 0
	}
	windowEnd := time.Unix(0, (slot+1)*int64(window))
	return false, windowEnd.Sub(now)
}

var _ Limiter = (*RedisLimiter)(nil)
var _ Limiter = (*RateLimiter)(nil)
