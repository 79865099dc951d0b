// Package httpapi exposes the application services as a JSON HTTP API.
// Amounts cross the wire as decimal strings ("156.80") and are converted
// to cents at this boundary.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sharveena123/paypals/internal/auth"
	"github.com/sharveena123/paypals/internal/ledger"
	"github.com/sharveena123/paypals/internal/money"
	"github.com/sharveena123/paypals/internal/service"
	"github.com/sharveena123/paypals/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Validation
// errors surface their message for inline display; anything unexpected
// gets a generic 500 so no partial balance or internal detail leaks.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrNoParticipants),
		errors.Is(err, ledger.ErrSplitMismatch),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidInput):
		respond(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		respond(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotGroupMember),
		errors.Is(err, service.ErrForbidden):
		respond(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrEmailExists):
		respond(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		respond(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrInvalidReference):
		// Upstream data corruption: already logged as a defect, tell the
		// client nothing beyond "it broke".
		respond(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	default:
		slog.Error("unhandled error", "error", err)
		respond(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}
