package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"jokes-fetcher/internal/models"
	"jokes-fetcher/internal/providers"
	"jokes-fetcher/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("JSON encode failed", logger.Err(err))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// statusFor maps the error classes of the lower layers to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, providers.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(op+" failed",
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.Err(err),
		)
	}
	writeJSON(w, status, errorBody(err.Error()))
}
