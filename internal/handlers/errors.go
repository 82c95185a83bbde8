package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/diewo77/invoicegen/httpx"
	"github.com/diewo77/invoicegen/internal/services"
)

// respondError maps service errors onto status codes and snake_case codes.
func respondError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", ve.Violations)
	case errors.Is(err, services.ErrUnauthenticated):
		httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", nil)
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNoDocument):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrDuplicateEmail):
		httpx.JSONError(w, http.StatusConflict, "email_already_exists", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
	default:
		slog.Error("request failed", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}
