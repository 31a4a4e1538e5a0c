package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

const defaultRateLimitGroup = "DEFAULT"

// RateLimitRule allows Burst requests at once, refilled at Rate per second.
// The zero rule does not limit.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// PerMinute allows n requests per minute with a burst of n.
func PerMinute(n int) RateLimitRule {
	if n <= 0 {
		return RateLimitRule{}
	}
	return RateLimitRule{Rate: float64(n) / 60.0, Burst: n}
}

func (r RateLimitRule) unlimited() bool {
	return r.Rate <= 0 || r.Burst <= 0
}

// refillTime is how long an empty bucket takes to fill again.
func (r RateLimitRule) refillTime() time.Duration {
	return time.Duration(float64(r.Burst) / r.Rate * float64(time.Second))
}

// Limiter decides whether the request identified by key may proceed and,
// if not, how long the caller should wait.
type Limiter interface {
	Allow(ctx context.Context, key string, rule RateLimitRule) (bool, time.Duration)
}

type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	// GroupFor picks the group for a request; empty means DefaultGroup.
	GroupFor func(*gin.Context) string
	Limiter  Limiter
}

// RateLimit throttles requests per principal and group. The principal is the
// authenticated user when there is one, else the client IP. Groups without a
// rule pass through.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok || rule.unlimited() {
			c.Next()
			return
		}

		allowed, wait := cfg.Limiter.Allow(c.Request.Context(), principal(c)+"|"+group, rule)
		if allowed {
			c.Next()
			return
		}
		if wait < time.Second {
			wait = time.Second
		}
		c.Header("Retry-After", strconv.Itoa(int((wait+time.Second-1)/time.Second)))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again later.",
			gin.H{"retryAfterMs": wait.Milliseconds()})
	}
}

func principal(c *gin.Context) string {
	if id := strings.TrimSpace(UserIDFromContext(c)); id != "" {
		return id
	}
	return c.ClientIP()
}

// RateLimiter is an in-process token bucket limiter. Buckets that have been
// idle long enough to be full again are dropped on the next sweep.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	now       func() time.Time
	lastSweep time.Time
}

type tokenBucket struct {
	tokens float64
	seen   time.Time
	idle   time.Duration
}

const sweepInterval = time.Minute

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{buckets: make(map[string]*tokenBucket), now: now}
}

func (l *RateLimiter) Allow(_ context.Context, key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.unlimited() {
		return true, 0
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: float64(rule.Burst), seen: now, idle: rule.refillTime()}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.seen).Seconds(); elapsed > 0 {
		b.tokens += elapsed * rule.Rate
		if b.tokens > float64(rule.Burst) {
			b.tokens = float64(rule.Burst)
		}
		b.seen = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	wait := time.Duration((1 - b.tokens) / rule.Rate * float64(time.Second))
	return false, wait.Round(time.Millisecond)
}

func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.seen) >= b.idle {
			delete(l.buckets, key)
		}
	}
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
