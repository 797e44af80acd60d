package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voice-server/internal/calendar"
	"voice-server/internal/conversation/session"
	"voice-server/internal/functions"
	"voice-server/internal/llm"
	"voice-server/internal/observability"
	"voice-server/internal/store"

	"github.com/google/uuid"
)

// Reply is what the telephony layer speaks back to the caller.
type Reply struct {
	Text     string
	VoiceID  string
	Complete bool
}

// Processor orchestrates one conversation turn at a time: session state,
// model generation, function execution, and the audit trail.
type Processor struct {
	sessions *session.Store
	agents   AgentStore
	gateway  LLMGateway
	executor FunctionExecutor
	schemas  SchemaSource

	confidenceFloor float64
	cleanupGrace    time.Duration
	logger          *observability.Logger
}

func NewProcessor(
	sessions *session.Store,
	agents AgentStore,
	gateway LLMGateway,
	executor FunctionExecutor,
	schemas SchemaSource,
	confidenceFloor float64,
	cleanupGrace time.Duration,
	logger *observability.Logger,
) *Processor {
	return &Processor{
		sessions:        sessions,
		agents:          agents,
		gateway:         gateway,
		executor:        executor,
		schemas:         schemas,
		confidenceFloor: confidenceFloor,
		cleanupGrace:    cleanupGrace,
		logger:          logger,
	}
}

// InitializeConversation creates the session for a newly connected call
// and produces the agent's opening line. A duplicate delivery for a call
// that already has a session re-greets without resetting state.
func (p *Processor) InitializeConversation(ctx context.Context, callID string, agentID uuid.UUID, callerPhone string) (*Reply, error) {
	agent, err := p.agents.GetAgent(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent %s: %w", agentID, err)
	}

	customerName, customerEmail := "", ""
	if callerPhone != "" {
		if contact, err := p.agents.GetContactByPhone(ctx, callerPhone); err == nil {
			customerName = contact.Name.String
			customerEmail = contact.Email.String
		}
	}

	sess, created := p.sessions.GetOrCreate(callID, session.AgentConfig{
		ID:                agent.ID,
		Name:              agent.Name,
		Description:       agent.Description.String,
		PromptTemplate:    agent.PromptTemplate,
		Provider:          agent.Provider,
		Model:             agent.Model,
		Temperature:       agent.Temperature,
		VoiceID:           agent.VoiceID,
		CalendarEventType: agent.CalendarEventType.String,
	}, callerPhone, customerName)

	sess.LockTurn()
	defer sess.UnlockTurn()

	if created {
		sess.SetCustomer("", "", customerEmail)
		if agent.CalendarProvider.Valid {
			sess.SetCalendarProviderOverride(calendar.Source(agent.CalendarProvider.String))
		}
		systemPrompt := buildSystemPrompt(agent.PromptTemplate, agent.Name, customerName, callerPhone, time.Now())
		sess.AppendMessage(llm.RoleSystem, systemPrompt, "")

		if err := p.agents.CreateCall(ctx, callID, agent.ID, callerPhone); err != nil {
			p.logger.Error(ctx, "failed to record call start", err)
		}
	}

	greeting := p.generateGreeting(ctx, sess)
	sess.AppendMessage(llm.RoleAssistant, greeting, "")
	p.audit(ctx, callID, llm.RoleAssistant, greeting, "")

	return &Reply{Text: greeting, VoiceID: sess.Agent.VoiceID}, nil
}

func (p *Processor) generateGreeting(ctx context.Context, sess *session.Session) string {
	req := p.buildRequest(sess)
	req.Messages = append(req.Messages, llm.Message{
		Role:    llm.RoleUser,
		Content: "The call has just connected. Greet the caller and offer to help.",
	})
	// The greeting is conversational only; no functions yet.
	req.Functions = nil

	resp, err := p.gateway.Generate(ctx, sess.Agent.Provider, req)
	if err != nil || resp.Text == "" || resp.Text == llm.FallbackReply {
		if err != nil {
			p.logger.Error(ctx, "greeting generation failed", err)
		}
		return genericGreeting
	}
	return resp.Text
}

// ProcessUserInput runs one conversation turn for a transcribed
// utterance. Low-confidence or empty transcripts are answered with a
// reprompt without consulting the model.
func (p *Processor) ProcessUserInput(ctx context.Context, callID, transcript string, confidence float64) (*Reply, error) {
	sess, err := p.sessions.Get(callID)
	if err != nil {
		return nil, err
	}

	sess.LockTurn()
	defer sess.UnlockTurn()

	if transcript == "" || confidence < p.confidenceFloor {
		sess.Touch()
		fields := observability.WithFields(ctx,
			observability.Field{Key: "confidence", Value: confidence})
		p.logger.Info(fields, "low confidence transcript, asking caller to repeat")
		return &Reply{Text: repeatPrompt, VoiceID: sess.Agent.VoiceID}, nil
	}

	sess.AppendMessage(llm.RoleUser, transcript, "")
	p.audit(ctx, callID, llm.RoleUser, transcript, "")

	resp, err := p.gateway.Generate(ctx, sess.Agent.Provider, p.buildRequest(sess))
	if err != nil {
		return nil, fmt.Errorf("model generation failed: %w", err)
	}

	complete := resp.ConversationComplete
	text := resp.Text

	if resp.FunctionCall != nil && resp.FunctionCall.Name != llm.EndCallFunctionName {
		text, err = p.runFunctionTurn(ctx, sess, resp.FunctionCall)
		if err != nil {
			return nil, err
		}
	}

	if text == "" {
		if complete {
			text = farewellLine
		} else {
			text = llm.FallbackReply
		}
	}
	if !complete && soundsLikeClosing(text) {
		complete = true
	}

	sess.AppendMessage(llm.RoleAssistant, text, "")
	p.audit(ctx, callID, llm.RoleAssistant, text, "")

	return &Reply{Text: text, VoiceID: sess.Agent.VoiceID, Complete: complete}, nil
}

// runFunctionTurn executes the requested function and asks the model to
// phrase the outcome for the caller. One function hop per turn: the
// follow-up generation advertises no functions, so it must produce text.
func (p *Processor) runFunctionTurn(ctx context.Context, sess *session.Session, call *llm.FunctionCall) (string, error) {
	name, phone, email := sess.Customer()
	result, err := p.executor.Execute(ctx, call.Name, call.Arguments, functions.CallContext{
		CallID:        sess.CallID,
		AgentID:       sess.Agent.ID,
		AgentName:     sess.Agent.Name,
		EventTypeID:   sess.Agent.CalendarEventType,
		CustomerName:  name,
		CustomerPhone: phone,
		CustomerEmail: email,
		ProviderHint:  sess.CalendarProviderOverride(),
	})
	if err != nil {
		// Unknown function: the model asked for something that does not
		// exist. Tell it so instead of failing the turn.
		p.logger.Error(ctx, fmt.Sprintf("model requested unknown function %s", call.Name), err)
		result = functions.Fail("that action is not available")
	}

	if data, ok := result.Data.(functions.CheckAvailabilityData); ok {
		sess.SetPendingSlots(data.Slots)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode function result: %w", err)
	}
	sess.AppendMessage(llm.RoleFunction, string(payload), call.Name)
	p.audit(ctx, sess.CallID, llm.RoleFunction, string(payload), call.Name)

	req := p.buildRequest(sess)
	req.Functions = nil
	resp, err := p.gateway.Generate(ctx, sess.Agent.Provider, req)
	if err != nil {
		return "", fmt.Errorf("model generation failed: %w", err)
	}
	if resp.Text != "" && resp.Text != llm.FallbackReply {
		return resp.Text, nil
	}
	return speakResult(result), nil
}

// speakResult is the fail-closed phrasing when the model gives nothing
// usable back after a function ran.
func speakResult(result functions.Result) string {
	if result.Success {
		return "All set. Is there anything else I can help you with?"
	}
	if result.Error != "" {
		return fmt.Sprintf("I'm sorry, %s. Is there anything else I can do?", result.Error)
	}
	return llm.FallbackReply
}

// CleanupConversation closes out a finished call: marks the audit record
// and schedules the session for removal after a short grace period, so a
// late webhook that raced the hangup still finds its session. Safe to call
// repeatedly and for calls that never established a session.
func (p *Processor) CleanupConversation(ctx context.Context, callID, status string) error {
	sess, err := p.sessions.Get(callID)
	if err != nil {
		return nil
	}

	duration := int64(time.Since(sess.StartTime()).Seconds())
	if status == "" {
		status = store.CallStatusCompleted
	}
	if err := p.agents.UpdateCallStatus(ctx, callID, status, &duration); err != nil {
		p.logger.Error(ctx, "failed to record call completion", err)
	}

	p.sessions.DeleteAfter(callID, p.cleanupGrace)
	return nil
}

// NotePartialTranscript marks session activity for an interim speech
// result. Partials never enter the transcript or reach the model.
func (p *Processor) NotePartialTranscript(callID string) {
	if sess, err := p.sessions.Get(callID); err == nil {
		sess.Touch()
	}
}

func (p *Processor) buildRequest(sess *session.Session) llm.Request {
	history := sess.Messages()
	messages := make([]llm.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, llm.Message{
			Role:         m.Role,
			Content:      m.Content,
			FunctionName: m.FunctionName,
		})
	}
	return llm.Request{
		Model:       sess.Agent.Model,
		Temperature: sess.Agent.Temperature,
		Messages:    messages,
		Functions:   p.schemas.Schemas(),
	}
}

func (p *Processor) audit(ctx context.Context, callID string, role llm.Role, content, functionName string) {
	if _, err := p.agents.AppendCallMessage(ctx, callID, string(role), content, functionName); err != nil {
		p.logger.Error(ctx, "failed to append call message", err)
	}
}
