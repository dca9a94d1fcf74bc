package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/version"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	version.Info
}

// Healthz reports liveness. It does not depend on the record store.
func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		respond.JSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: now().Sub(start).Seconds(),
			Info:          d.Build,
		})
	}
}
