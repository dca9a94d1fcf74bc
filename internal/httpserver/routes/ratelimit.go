package routes

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/mw"
)

// rateLimit returns the limiter of one route group, or a passthrough when
// limiting is disabled.
func rateLimit(d deps.Deps, scope string) func(http.Handler) http.Handler {
	if d.RateLimit.Burst <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw.RateLimit(mw.RateLimitConfig{
		Scope:             scope,
		Burst:             d.RateLimit.Burst,
		RefillPerIPPerMin: d.RateLimit.PerMin,
		MaxEntries:        10000,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
		Now:               d.TimeNow,
	})
}
