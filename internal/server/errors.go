package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned in API error bodies
const (
	ErrCodeValidation = "REQUEST_VALIDATION_ERROR"
	ErrCodeMalformed  = "MALFORMED_DATA"
	ErrCodeRateLimit  = "RESOURCE_CONSTRAINT_ERROR"
	ErrCodeInternal   = "INTERNAL_PROCESSING_ERROR"
)

// apiError is the error value handlers return to the client
type apiError struct {
	Code    string
	Message string
	Err     error // underlying cause, never sent to the client
}

func (e *apiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *apiError) Unwrap() error {
	return e.Err
}

func newAPIError(code, message string, cause error) *apiError {
	return &apiError{Code: code, Message: message, Err: cause}
}

// status maps an error code to its HTTP status
func (e *apiError) status() int {
	switch e.Code {
	case ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case ErrCodeMalformed:
		return http.StatusBadRequest
	case ErrCodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, e *apiError) {
	writeJSON(w, e.status(), errorBody{Code: e.Code, Message: e.Message})
}
