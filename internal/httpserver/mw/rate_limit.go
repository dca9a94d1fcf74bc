package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/utils"
)

// RateLimitConfig configures a token bucket per client IP within one route
// group. Groups never share buckets.
type RateLimitConfig struct {
	Scope             string // route group, ex: "api" or "graphql"
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int
	SweepInterval     time.Duration
	IdleTTL           time.Duration
	TrustProxy        bool             // resolve IP from proxy headers when true
	Now               func() time.Time // defaults to time.Now
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	lastRef  time.Time
	lastSeen time.Time
}

type limiter struct {
	cfg       RateLimitConfig
	rate      float64 // tokens per second
	capacity  float64
	mu        sync.Mutex
	buckets   map[string]*bucket // keyed by scope and client IP
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.RefillPerIPPerMin < 1 {
		cfg.RefillPerIPPerMin = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &limiter{
		cfg:       cfg,
		rate:      float64(cfg.RefillPerIPPerMin) / 60.0,
		capacity:  float64(cfg.Burst),
		buckets:   make(map[string]*bucket, 1024),
		lastSweep: cfg.Now(),
	}
}

func (l *limiter) key(ip string) string {
	return l.cfg.Scope + "|" + ip
}

func (l *limiter) getBucket(key string, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.cfg.SweepInterval ||
		(l.cfg.MaxEntries > 0 && len(l.buckets) >= l.cfg.MaxEntries) {
		l.sweepLocked(now)
	}
	b := l.buckets[key]
	if b == nil {
		b = &bucket{tokens: l.capacity, lastRef: now, lastSeen: now}
		l.buckets[key] = b
	}
	return b
}

// take consumes one token. When none is left it returns the seconds until
// the next one.
func (l *limiter) take(key string, now time.Time) (ok bool, remaining int, retryAfterSec int) {
	b := l.getBucket(key, now)

	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.lastRef).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.rate)
		b.lastRef = now
	}
	b.lastSeen = now

	if b.tokens >= 1.0 {
		b.tokens--
		return true, int(math.Floor(b.tokens)), 0
	}

	sec := int(math.Ceil((1.0 - b.tokens) / l.rate))
	return false, 0, max(sec, 1)
}

func (l *limiter) sweepLocked(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// RateLimit limits each client IP within cfg.Scope. Rejections are JSON 429
// responses carrying Retry-After.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limitStr := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, l.cfg.TrustProxy)
			ok, remaining, retry := l.take(l.key(ip), l.cfg.Now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limitStr)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if l.cfg.Scope != "" {
				h.Set("X-RateLimit-Scope", l.cfg.Scope)
			}

			if !ok {
				h.Set("Retry-After", strconv.Itoa(retry))
				respond.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
