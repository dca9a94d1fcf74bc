package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/secdash/internal/dashboard"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/logger"
)

// writeServiceError maps dashboard errors to a status code
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, dashboard.ErrNotLoaded):
		respond.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, dashboard.ErrRecordNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
		return
	}
	log.Error("dashboard request failed", logger.Error(err))
	respond.Error(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
