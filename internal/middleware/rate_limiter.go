package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Limiter counts one hit for key and reports whether it is still within
// budget, plus how long until the budget resets when it is not.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RateLimit rejects requests over the limiter's budget with 429, keyed by
// client IP. Limiter errors let the request through.
func RateLimit(l Limiter, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retry, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// ── In-memory fixed window ────────────────────────────────────────────────────

type windowEntry struct {
	count     int
	windowEnd time.Time
}

// MemoryLimiter keeps per-key counters in process memory. Expired entries are
// swept at most once per window so keys that never return do not accumulate.
type MemoryLimiter struct {
	mu        sync.Mutex
	entries   map[string]*windowEntry
	limit     int
	window    time.Duration
	nextSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextSweep) {
		for k, e := range l.entries {
			if now.After(e.windowEnd) {
				delete(l.entries, k)
			}
		}
		l.nextSweep = now.Add(l.window)
	}

	e, ok := l.entries[key]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(l.window)}
		l.entries[key] = e
	}

	e.count++
	if e.count > l.limit {
		return false, e.windowEnd.Sub(now), nil
	}
	return true, 0, nil
}
