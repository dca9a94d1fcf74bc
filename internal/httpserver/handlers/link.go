package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/logger"
)

// Link redirects to the GitHub page of the record anchored on {sha}
func Link(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sha := strings.TrimSpace(chi.URLParam(r, "sha"))
		if sha == "" {
			respond.Error(w, http.StatusBadRequest, "missing sha")
			return
		}

		link, ok := d.Dashboard.Link(sha)
		if !ok {
			d.Logger.Debug("no record for sha", logger.String("sha", sha))
			respond.Error(w, http.StatusNotFound, "unknown sha")
			return
		}

		d.Logger.Info("link redirect",
			logger.String("sha", sha),
			logger.String("url", link))
		http.Redirect(w, r, link, http.StatusFound)
	}
}
