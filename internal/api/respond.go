package api

import (
	"encoding/json"
	"net/http"

	"tradejournal/internal/services/auth"
	"tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

// envelope is the uniform response body for every API endpoint
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

func respondData(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// respondError maps domain errors onto HTTP status codes
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, errors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errors.ErrAlreadyExists),
		errors.Is(err, auth.ErrEmailAlreadyExists):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errors.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUserNotFound):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, errors.ErrForbidden),
		errors.Is(err, errors.ErrTradeNotOwned),
		errors.Is(err, errors.ErrStrategyNotOwned):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, errors.ErrInvalidInput),
		errors.Is(err, errors.ErrInvalidDateRange),
		errors.Is(err, errors.ErrInvalidTradeStatus),
		errors.Is(err, errors.ErrInvalidTradeType),
		errors.Is(err, errors.ErrInvalidPeriod),
		errors.Is(err, auth.ErrWeakPassword),
		isValidationError(err):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		logger.Errorf("unhandled API error: %v", err)
	}

	respondJSON(w, status, envelope{Success: false, Error: message})
}

func isValidationError(err error) bool {
	var ve *errors.ValidationError
	return errors.As(err, &ve)
}

// decodeJSON reads a request body into dst. Unknown fields are rejected
// so client typos surface as a 400 instead of silently dropped fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "invalid request body")
	}
	return nil
}
