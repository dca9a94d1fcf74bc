package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/logger"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	RecordsLoaded *int   `json:"records_loaded,omitempty"`
	RecordsStored *int64 `json:"records_stored,omitempty"`
	LoadedAt      string `json:"loaded_at,omitempty"`
	Source        string `json:"source,omitempty"`
	Fingerprint   string `json:"fingerprint,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store":      checkStore(d),
			"redis":      checkRedis(r.Context(), d),
			"view_cache": checkViewCache(d),
		}

		respond.JSON(w, http.StatusOK, infraResponse{
			Status:     determineStatus(components),
			Components: components,
		})
	}
}

func determineStatus(components map[string]componentStatus) string {
	// Nothing can be served without the record store
	if store, exists := components["store"]; exists && !store.OK {
		return "critical"
	}

	// Redis is optional: only an enabled-but-unreachable redis degrades the service
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}

	return "ok"
}

func checkStore(d deps.Deps) componentStatus {
	if d.MemoryIndex == nil || !d.MemoryIndex.Loaded() {
		return componentStatus{OK: false, Error: "not loaded"}
	}

	count := d.MemoryIndex.Count()
	return componentStatus{
		OK:            true,
		RecordsLoaded: &count,
		LoadedAt:      d.MemoryIndex.LoadedAt().Format("2006-01-02 15:04:05"),
		Source:        d.MemoryIndex.Source(),
		Fingerprint:   d.MemoryIndex.Fingerprint(),
	}
}

// checkRedis pings redis and reports the size of the shared record list.
func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisStore == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "view-cache-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	unreachable := func(err error) componentStatus {
		d.Logger.Warn("redis health check failed", logger.Error(err))
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "views-recomputed",
			Error:  "unreachable",
		}
	}

	if err := d.RedisStore.Ping(ctx); err != nil {
		return unreachable(err)
	}
	stored, err := d.RedisStore.CountRecords(ctx)
	if err != nil {
		return unreachable(err)
	}

	return componentStatus{
		OK:            true,
		Mode:          "optimal",
		RecordsStored: &stored,
	}
}

func checkViewCache(d deps.Deps) componentStatus {
	if d.Dashboard == nil || !d.Dashboard.CacheEnabled() {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	return componentStatus{OK: true, Mode: "redis"}
}
