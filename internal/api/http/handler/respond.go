package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexnev/accountcore/internal/model"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// MethodNotAllowed answers requests that hit a known path with an
// unsupported method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// respondServiceError maps domain errors to HTTP statuses. Validation
// messages pass through verbatim; everything else gets a fixed phrase so
// internals never leak.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, model.ErrEmailTaken):
		respondError(w, http.StatusConflict, "An account with this email already exists.")
	case errors.Is(err, model.ErrTokenExpired):
		respondError(w, http.StatusBadRequest, "This link has expired. Please request a new one.")
	case errors.Is(err, model.ErrNotFound):
		respondError(w, http.StatusBadRequest, "This link is invalid or has already been used.")
	case errors.Is(err, model.ErrAuthenticationRequired):
		respondError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, model.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, model.ErrRateLimited):
		respondError(w, http.StatusTooManyRequests, "too many requests")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
