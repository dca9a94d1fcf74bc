package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
)

type readyzResponse struct {
	Ready   bool `json:"ready"`
	Records int  `json:"records"`
}

// Readyz answers 200 once the record store is loaded, 503 before.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		if !d.MemoryIndex.Loaded() {
			respond.JSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}
		respond.JSON(w, http.StatusOK, readyzResponse{
			Ready:   true,
			Records: d.MemoryIndex.Count(),
		})
	}
}
