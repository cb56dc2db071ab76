package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"studentcontrol/internal/shared"
)

// JSONResponse is the standard success envelope.
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSONError is the standard error envelope.
type JSONError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON writes a success response with the standard envelope.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(JSONResponse{Success: true, Data: payload}); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

// WriteJSONError writes a standardized error response.
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(JSONError{Success: false, Message: message}); err != nil {
		log.Error().Err(err).Msg("failed to write JSON error response")
	}
}

// HandleError maps domain errors to HTTP responses. Every failure is
// surfaced as user-visible text; nothing here is process-fatal.
func HandleError(w http.ResponseWriter, err error) {
	var validationErr shared.ValidationError
	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, shared.ErrNoGrades):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrUnauthenticated):
		WriteJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrAuthorizationAbsent):
		WriteJSONError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		WriteJSONError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("internal error")
		WriteJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ExtractToken extracts the bearer token from the Authorization header.
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", shared.ErrUnauthenticated
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", shared.ErrUnauthenticated
	}
	return parts[1], nil
}
