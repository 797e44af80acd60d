package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Call statuses as reported by the telephony carrier.
const (
	CallStatusRinging    = "ringing"
	CallStatusInProgress = "in-progress"
	CallStatusCompleted  = "completed"
	CallStatusFailed     = "failed"
	CallStatusBusy       = "busy"
	CallStatusNoAnswer   = "no-answer"
	CallStatusCanceled   = "canceled"
)

type Call struct {
	CallID          string         `db:"call_id"`
	AgentID         uuid.UUID      `db:"agent_id"`
	CallerPhone     sql.NullString `db:"caller_phone"`
	Status          string         `db:"status"`
	DurationSeconds sql.NullInt64  `db:"duration_seconds"`
	StartedAt       string         `db:"started_at"`
	EndedAt         sql.NullString `db:"ended_at"`
}

// CallMessage is one audit-trail entry. Written fire-and-forget during a
// call and never read back by the conversation core.
type CallMessage struct {
	ID           uuid.UUID      `db:"id"`
	CallID       string         `db:"call_id"`
	Role         string         `db:"role"`
	Content      string         `db:"content"`
	FunctionName sql.NullString `db:"function_name"`
	CreatedAt    string         `db:"created_at"`
}

const sqlCreateCall = `
INSERT INTO calls (call_id, agent_id, caller_phone, status)
VALUES ($1, $2, $3, $4)
ON CONFLICT (call_id) DO NOTHING`

func (s Store) CreateCall(ctx context.Context, callID string, agentID uuid.UUID, callerPhone string) error {
	_, err := s.db.ExecContext(ctx, sqlCreateCall, callID, agentID, nullIfEmpty(callerPhone), CallStatusInProgress)
	if err != nil {
		s.logger.Error(ctx, "failed to create call record", err)
		return fmt.Errorf("failed to create call record: %w", err)
	}
	return nil
}

const sqlUpdateCallStatus = `
UPDATE calls
SET status = $2,
    duration_seconds = COALESCE($3, duration_seconds),
    ended_at = CASE WHEN $2 IN ('completed', 'failed', 'busy', 'no-answer', 'canceled') THEN now() ELSE ended_at END
WHERE call_id = $1`

func (s Store) UpdateCallStatus(ctx context.Context, callID, status string, durationSeconds *int64) error {
	_, err := s.db.ExecContext(ctx, sqlUpdateCallStatus, callID, status, durationSeconds)
	if err != nil {
		s.logger.Error(ctx, "failed to update call status", err)
		return fmt.Errorf("failed to update call status: %w", err)
	}
	return nil
}

const sqlAppendCallMessage = `
INSERT INTO call_messages (call_id, role, content, function_name)
VALUES ($1, $2, $3, $4)
RETURNING *`

func (s Store) AppendCallMessage(ctx context.Context, callID, role, content, functionName string) (*CallMessage, error) {
	var message CallMessage
	err := s.db.GetContext(ctx, &message, sqlAppendCallMessage, callID, role, content, nullIfEmpty(functionName))
	if err != nil {
		s.logger.Error(ctx, "failed to append call message", err)
		return nil, fmt.Errorf("failed to append call message: %w", err)
	}
	return &message, nil
}

const sqlGetCallMessages = `
SELECT * FROM call_messages WHERE call_id = $1 ORDER BY created_at ASC`

func (s Store) GetCallMessages(ctx context.Context, callID string) ([]CallMessage, error) {
	var messages []CallMessage
	err := s.db.SelectContext(ctx, &messages, sqlGetCallMessages, callID)
	if err != nil {
		s.logger.Error(ctx, "failed to get call messages", err)
		return nil, fmt.Errorf("failed to get call messages: %w", err)
	}
	return messages, nil
}
