package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bolao/service"

	log "github.com/sirupsen/logrus"
)

// Error codes for standardized API error responses
const (
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"
	ErrCodeVotingClosed   = "VOTING_CLOSED"
	ErrCodeProvaClosed    = "PROVA_CLOSED"
	ErrCodeChoiceLimit    = "CHOICE_LIMIT_EXCEEDED"
	ErrCodeInvalidOutcome = "INVALID_OUTCOME"
)

// APIError represents an error with an HTTP status code and error code
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

// BadRequest creates a 400 error with a custom message
func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: message}
}

// Unauthorized creates a 401 error with a custom message
func Unauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: message}
}

// NotFound creates a 404 error with a custom message
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

// InternalError creates a 500 error and logs the original error
func InternalError(err error) *APIError {
	log.WithError(err).Error("Internal server error")
	return &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternalServer, Message: "Internal server error"}
}

// ToAPIError maps service errors onto API errors
func ToAPIError(err error) *APIError {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: err.Error()}
	case errors.Is(err, service.ErrVotingClosed):
		return &APIError{Status: http.StatusConflict, Code: ErrCodeVotingClosed, Message: err.Error()}
	case errors.Is(err, service.ErrAlreadyClosed), errors.Is(err, service.ErrNotClosed):
		return &APIError{Status: http.StatusConflict, Code: ErrCodeProvaClosed, Message: err.Error()}
	case errors.Is(err, service.ErrChoiceLimitExceeded):
		return &APIError{Status: http.StatusConflict, Code: ErrCodeChoiceLimit, Message: err.Error()}
	case errors.Is(err, service.ErrInvalidOutcome):
		return &APIError{Status: http.StatusBadRequest, Code: ErrCodeInvalidOutcome, Message: err.Error()}
	case errors.Is(err, service.ErrConflict):
		return &APIError{Status: http.StatusConflict, Code: ErrCodeConflict, Message: err.Error()}
	}
	return InternalError(err)
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondOK writes a 200 OK JSON response
func respondOK(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// respondCreated writes a 201 Created JSON response
func respondCreated(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusCreated, data)
}

// respondDeleted writes a 204 No Content response
func respondDeleted(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		respondJSON(w, apiErr.Status, apiErr)
		return
	}
	apiErr = ToAPIError(err)
	respondJSON(w, apiErr.Status, apiErr)
}

// decodeJSON decodes the request body into target
func decodeJSON(r *http.Request, target interface{}) error {
	defer io.Copy(io.Discard, r.Body)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return BadRequest(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}
