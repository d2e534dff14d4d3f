package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/streakpost/streakpost/internal/repository"
	"github.com/streakpost/streakpost/internal/service"
)

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
	})
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}

// respondServiceError maps sentinel errors to HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without leaking detail.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrProjectNotFound),
		errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrStatsNotFound),
		errors.Is(err, repository.ErrBadgeNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyStarted),
		errors.Is(err, service.ErrNotStarted),
		errors.Is(err, service.ErrGoalReached),
		errors.Is(err, repository.ErrStatsFrozen),
		errors.Is(err, repository.ErrBadgeAlreadyAwarded),
		errors.Is(err, service.ErrConsistency):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrDailyCapReached):
		respondError(w, http.StatusTooManyRequests, err.Error())
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
