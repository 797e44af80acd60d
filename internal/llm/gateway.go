package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voice-server/internal/observability"
)

var ErrNoProviderConfigured = errors.New("no llm provider configured")

// FallbackReply is spoken when every provider attempt fails. Silence on a
// live phone call is worse than a generic line.
const FallbackReply = "I'm sorry, I'm having a little trouble right now. Could you say that again?"

// EndCallFunctionName is the reserved function the model invokes to signal
// that the conversation is complete.
const EndCallFunctionName = "end_call"

// Provider is one interchangeable chat backend.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Gateway routes chat requests to a named provider, retrying once against
// the default provider before degrading to FallbackReply. Requests carry
// only the system prompt plus a bounded window of recent turns.
type Gateway struct {
	providers       map[string]Provider
	defaultProvider string
	timeout         time.Duration
	historyWindow   int
	logger          *observability.Logger
}

// NewGateway builds a gateway over the given providers. The first provider
// is the default. Fails at construction, not per call, when none are
// configured.
func NewGateway(timeout time.Duration, historyWindow int, logger *observability.Logger, providers ...Provider) (*Gateway, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviderConfigured
	}
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &Gateway{
		providers:       byName,
		defaultProvider: providers[0].Name(),
		timeout:         timeout,
		historyWindow:   historyWindow,
		logger:          logger,
	}, nil
}

// DefaultProvider returns the name of the provider used when an agent does
// not name one.
func (g *Gateway) DefaultProvider() string {
	return g.defaultProvider
}

// Generate sends the request to the named provider (default when empty or
// unknown). On failure it retries once against the default provider, then
// returns the neutral fallback reply. Callers always get a usable response.
func (g *Gateway) Generate(ctx context.Context, providerName string, req Request) (*Response, error) {
	req.Messages = g.windowedHistory(req.Messages)

	provider, ok := g.providers[providerName]
	if !ok {
		provider = g.providers[g.defaultProvider]
	}

	resp, err := g.attempt(ctx, provider, req)
	if err == nil {
		return g.finalize(resp), nil
	}
	g.logger.Error(ctx, fmt.Sprintf("provider %s failed, retrying with default", provider.Name()), err)

	if fallback := g.providers[g.defaultProvider]; fallback.Name() != provider.Name() {
		resp, err = g.attempt(ctx, fallback, req)
		if err == nil {
			return g.finalize(resp), nil
		}
		g.logger.Error(ctx, "default provider failed as well", err)
	}

	return &Response{Text: FallbackReply}, nil
}

func (g *Gateway) attempt(ctx context.Context, provider Provider, req Request) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := provider.Generate(attemptCtx, req)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", provider.Name(), err)
	}
	return resp, nil
}

func (g *Gateway) finalize(resp *Response) *Response {
	if resp.FunctionCall != nil && resp.FunctionCall.Name == EndCallFunctionName {
		resp.ConversationComplete = true
	}
	return resp
}

// windowedHistory keeps the leading system prompt plus the last
// historyWindow turns. Full history stays in the session for audit; it is
// not replayed to the model each turn.
func (g *Gateway) windowedHistory(messages []Message) []Message {
	if g.historyWindow <= 0 || len(messages) == 0 {
		return messages
	}

	var system []Message
	rest := messages
	if messages[0].Role == RoleSystem {
		system = messages[:1]
		rest = messages[1:]
	}

	if len(rest) > g.historyWindow {
		rest = rest[len(rest)-g.historyWindow:]
	}

	windowed := make([]Message, 0, len(system)+len(rest))
	windowed = append(windowed, system...)
	windowed = append(windowed, rest...)
	return windowed
}
