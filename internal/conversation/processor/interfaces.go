package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"

	"voice-server/internal/functions"
	"voice-server/internal/llm"
	"voice-server/internal/store"

	"github.com/google/uuid"
)

// AgentStore loads agent configuration and caller identity, and records
// the call audit trail. Audit writes are best effort; a database hiccup
// never interrupts a live conversation.
type AgentStore interface {
	GetAgent(ctx context.Context, id uuid.UUID) (*store.Agent, error)
	GetContactByPhone(ctx context.Context, phone string) (*store.Contact, error)
	CreateCall(ctx context.Context, callID string, agentID uuid.UUID, callerPhone string) error
	UpdateCallStatus(ctx context.Context, callID, status string, durationSeconds *int64) error
	AppendCallMessage(ctx context.Context, callID, role, content, functionName string) (*store.CallMessage, error)
}

// LLMGateway generates model responses with provider fallback.
type LLMGateway interface {
	Generate(ctx context.Context, providerName string, req llm.Request) (*llm.Response, error)
}

// FunctionExecutor runs a named function under its timeout and retry
// budget.
type FunctionExecutor interface {
	Execute(ctx context.Context, name string, args map[string]interface{}, call functions.CallContext) (functions.Result, error)
}

// SchemaSource lists the function schemas advertised to the model.
type SchemaSource interface {
	Schemas() []llm.FunctionSchema
}
