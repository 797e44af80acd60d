package apierrors

import (
	"errors"

	"voice-server/internal/conversation/session"
	"voice-server/internal/functions"
	"voice-server/internal/llm"
	"voice-server/internal/speech"
	"voice-server/internal/store"
)

// MapError converts domain errors to APIErrors. Centralized so every handler
// returns the same shape for the same failure.
//
// If the error is already an APIError it is returned as-is; unknown errors
// become a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return NotFoundError(CodeSessionNotFound, "No active conversation for this call")

	case errors.Is(err, store.ErrNotFound):
		return NotFoundError(CodeAgentNotFound, "Agent not found")

	case errors.Is(err, functions.ErrFunctionNotFound):
		return NotFoundError(CodeFunctionNotFound, "Function not found")

	case errors.Is(err, speech.ErrInvalidAudioToken):
		return UnauthorizedError(CodeInvalidToken, "Invalid or expired audio token")

	case errors.Is(err, llm.ErrNoProviderConfigured):
		return ServiceUnavailableError(CodeNoProvider, "No language model provider is configured", err)

	default:
		return InternalAPIError(err)
	}
}
