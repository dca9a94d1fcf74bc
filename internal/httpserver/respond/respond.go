// Package respond writes the JSON bodies shared by handlers and middlewares.
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}
