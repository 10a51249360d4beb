package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/summitapp/summit/internal/apperr"
	"github.com/summitapp/summit/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps the error taxonomy onto status codes: validation 422,
// missing auth 401, unknown records 404, store failures 500 with the detail
// kept to the logs.
func writeError(w http.ResponseWriter, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "validation failed",
			"field":   ve.Field,
			"message": ve.Message,
		})
		return
	}

	if errors.Is(err, apperr.ErrUnauthenticated) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "authentication required",
		})
		return
	}

	if errors.Is(err, repository.ErrGoalNotFound) ||
		errors.Is(err, repository.ErrTodoNotFound) ||
		errors.Is(err, repository.ErrCategoryNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": err.Error(),
		})
		return
	}

	slog.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal error",
	})
}

func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return apperr.Validation("body", "invalid JSON")
	}
	return nil
}
