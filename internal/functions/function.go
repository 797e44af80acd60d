package functions

import (
	"context"
	"errors"
	"time"

	"voice-server/internal/calendar"

	"github.com/google/uuid"
)

var ErrFunctionNotFound = errors.New("function not found")

// Result is the outcome of a function invocation. Success=false with an
// Error is a business negative the orchestrator can speak about; transport
// failures travel as Go errors and are retried by the executor.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK builds a successful result.
func OK(data interface{}) Result {
	return Result{Success: true, Data: data}
}

// Fail builds a business-negative result.
func Fail(reason string) Result {
	return Result{Success: false, Error: reason}
}

// CallContext carries the per-call facts a function may need: who is
// calling, which agent owns the call, and which calendar to book against.
type CallContext struct {
	CallID        string
	AgentID       uuid.UUID
	AgentName     string
	EventTypeID   string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ProviderHint  calendar.Source
}

// Function is one callable side-effect: a built-in or a user-registered
// endpoint. Invoke returns a business Result or a transient error; the
// executor retries only the latter, within the declared budget.
type Function interface {
	Name() string
	Description() string
	Parameters() map[string]interface{}
	Timeout() time.Duration
	Retries() int
	Invoke(ctx context.Context, args map[string]interface{}, call CallContext) (Result, error)
}
