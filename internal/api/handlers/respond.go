package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/advocacy-resources/advo-sub001/internal/api/middleware"
	"github.com/advocacy-resources/advo-sub001/internal/domain/policy"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/observability"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

// Helper functions shared by all handlers.

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy to HTTP statuses. Internal
// detail never reaches the client; it is logged instead.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("unhandled error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeUnauthorized:
		respondWithError(w, http.StatusUnauthorized, appErr.Message)
	case apperrors.ErrorTypeForbidden:
		respondWithError(w, http.StatusForbidden, appErr.Message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusConflict, appErr.Message)
	default:
		observability.LoggerFromContext(r.Context()).Error().Err(appErr).Msg("request failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// authorize evaluates the policy for the request's principal. On denial it
// writes the error response and returns nil.
func authorize(w http.ResponseWriter, r *http.Request, action policy.Action, targetResourceID string) *policy.Principal {
	principal := middleware.PrincipalFromContext(r.Context())
	if err := policy.Evaluate(principal, action, targetResourceID); err != nil {
		respondWithAppError(w, r, err)
		return nil
	}
	return principal
}

// decodeJSON parses the request body into dst, treating malformed payloads
// as validation failures.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	return nil
}
