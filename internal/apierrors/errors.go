package apierrors

import (
	"fmt"
	"net/http"
)

// Error codes returned to API clients.
const (
	CodeSessionNotFound  = "SESSION_NOT_FOUND"
	CodeAgentNotFound    = "AGENT_NOT_FOUND"
	CodeFunctionNotFound = "FUNCTION_NOT_FOUND"
	CodeNoProvider       = "NO_PROVIDER_CONFIGURED"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidToken     = "INVALID_AUDIO_TOKEN"
	CodeAudioNotFound    = "AUDIO_NOT_FOUND"
	CodeInternal         = "INTERNAL_ERROR"
)

// APIError is a client-facing error with an HTTP status and a machine-readable code.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	internal   error
}

func (e *APIError) Error() string {
	if e.internal != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.internal
}

// NotFoundError builds a 404 APIError.
func NotFoundError(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// UnauthorizedError builds a 401 APIError.
func UnauthorizedError(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: code, Message: message}
}

// BadRequestError builds a 400 APIError.
func BadRequestError(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// ServiceUnavailableError builds a 503 APIError wrapping the internal cause.
func ServiceUnavailableError(code, message string, internal error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, internal: internal}
}

// InternalAPIError builds a sanitized 500 APIError wrapping the internal cause.
func InternalAPIError(internal error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternal,
		Message:    "An internal error occurred. Please try again later.",
		internal:   internal,
	}
}
