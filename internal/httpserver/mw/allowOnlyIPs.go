package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/logger"
	"github.com/MrSnakeDoc/secdash/internal/utils"
)

// AllowOnlyCIDRS lets through only the clients matched by nets, parsed at
// config load. A nil or empty matcher is a passthrough.
// trustProxy should be true when running behind a trusted reverse proxy/tunnel (e.g., cloudflared).
func AllowOnlyCIDRS(nets *utils.IPMatcher, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	if nets.IsEmpty() {
		log.Debug("ip allowlist empty, passthrough mode")
		return passthrough
	}

	log.Debug("ip allowlist enabled",
		logger.String("nets", nets.String()),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !nets.Allow(ip) {
				log.Debug("client rejected by ip allowlist",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				respond.Error(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func passthrough(next http.Handler) http.Handler { return next }
