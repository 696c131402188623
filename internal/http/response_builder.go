// Package http provides the JSON API over the finance services.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"financas/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// respondError maps domain errors to status codes: unknown records are 404,
// validation and transition failures 422, anything else 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "url", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidAmount,
		core.ErrInvalidNature,
		core.ErrInvalidState,
		core.ErrInvalidTransition,
		core.ErrInvalidCategory,
		core.ErrInvalidDate,
		core.ErrEmptyUser,
		core.ErrEmptyAccount,
		core.ErrEmptyCategory,
		core.ErrEmptyBudgetName,
		core.ErrInvalidPeriod,
		core.ErrInvalidBudgetTyp,
		core.ErrInvalidGoalType,
		core.ErrInvalidGoalStatus,
		core.ErrInvalidPriority,
		core.ErrInvalidParcels,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
