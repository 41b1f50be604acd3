package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vnnovate/crm-core/internal/infra/http/middleware"
	"github.com/vnnovate/crm-core/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the core error taxonomy onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message.
func writeError(w http.ResponseWriter, err error) {
	var (
		accessDenied *usecase.AccessDeniedError
		hierarchy    *usecase.HierarchyViolationError
		validation   *usecase.ValidationFailedError
		blocked      *usecase.IntegrityBlockedError
		notFound     *usecase.NotFoundError
	)

	switch {
	case errors.Is(err, usecase.ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": err.Error()})

	case errors.As(err, &accessDenied):
		middleware.RecordAccessDenied()
		writeJSON(w, http.StatusForbidden, map[string]any{"error": err.Error()})

	case errors.As(err, &hierarchy):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})

	case errors.As(err, &validation):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"issues": validation.Issues,
		})

	case errors.As(err, &blocked):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":          err.Error(),
			"blocking_count": blocked.BlockingCount,
			"blocking_ids":   blocked.BlockingIDs,
		})

	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})

	case usecase.IsDomainError(err):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})

	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}
