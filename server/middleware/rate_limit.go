package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	apierrors "github.com/hrygo/extractdate/server/internal/errors"
)

// DefaultIdleTTL is how long a client key may stay unused before its limiter is dropped.
const DefaultIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client key.
//
// Keys unused for longer than the idle TTL are evicted, so the map grows with
// the number of recently active clients rather than every client ever seen.
// An evicted key starts again with a full burst.
type RateLimiter struct {
	mu        sync.Mutex
	limits    map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a rate limiter allowing perSecond requests per key
// with the given burst. A non-positive perSecond disables limiting.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	rl := &RateLimiter{
		limits:  make(map[string]*limiterEntry),
		rate:    limit,
		burst:   burst,
		idleTTL: DefaultIdleTTL,
		now:     time.Now,
	}
	rl.lastSweep = rl.now()
	return rl
}

// getLimiter gets or creates a limiter for the given key and sweeps idle
// keys at most once per idle TTL. It also returns the time it was read at.
func (rl *RateLimiter) getLimiter(key string) (*rate.Limiter, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	if entry, ok := rl.limits[key]; ok {
		entry.lastSeen = now
		return entry.limiter, now
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limits[key] = &limiterEntry{limiter: limiter, lastSeen: now}
	return limiter, now
}

// sweep drops every key idle since before now-idleTTL. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, entry := range rl.limits {
		if now.Sub(entry.lastSeen) >= rl.idleTTL {
			delete(rl.limits, key)
		}
	}
	rl.lastSweep = now
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	limiter, now := rl.getLimiter(key)
	return limiter.AllowN(now, 1)
}

// Middleware rejects requests over the per-client-IP limit with 429.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				err := apierrors.RateLimitExceeded("rate limit exceeded")
				return c.JSON(err.HTTPStatus(), err)
			}
			return next(c)
		}
	}
}
