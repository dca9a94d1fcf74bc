package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
)

// Vulnerability serves the rendered record anchored on {sha}
func Vulnerability(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sha := strings.TrimSpace(chi.URLParam(r, "sha"))
		if sha == "" {
			respond.Error(w, http.StatusBadRequest, "missing sha")
			return
		}

		rec, err := d.Dashboard.Record(sha)
		if err != nil {
			writeServiceError(w, d.Logger, err)
			return
		}

		respond.JSON(w, http.StatusOK, d.UI.RenderRecord(rec, domain.GitHubLink(rec)))
	}
}
