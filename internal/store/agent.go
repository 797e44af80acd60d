package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Agent is a user-authored voice agent: the prompt drives the conversation,
// the rest configures which model speaks and which calendar it books into.
type Agent struct {
	ID                uuid.UUID      `db:"id"`
	Name              string         `db:"name"`
	Description       sql.NullString `db:"description"`
	PromptTemplate    string         `db:"prompt_template"`
	Provider          string         `db:"provider"`
	Model             string         `db:"model"`
	Temperature       float64        `db:"temperature"`
	VoiceID           string         `db:"voice_id"`
	CalendarProvider  sql.NullString `db:"calendar_provider"`
	CalendarEventType sql.NullString `db:"calendar_event_type"`
	CreatedAt         string         `db:"created_at"`
	UpdatedAt         string         `db:"updated_at"`
}

const sqlGetAgentByID = `
SELECT * FROM agents WHERE id = $1`

func (s Store) GetAgent(ctx context.Context, id uuid.UUID) (*Agent, error) {
	var agent Agent
	err := s.db.GetContext(ctx, &agent, sqlGetAgentByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get agent by ID", err)
		return nil, fmt.Errorf("failed to get agent by ID: %w", err)
	}
	return &agent, nil
}

const sqlCreateAgent = `
INSERT INTO agents (name, description, prompt_template, provider, model, temperature, voice_id, calendar_provider, calendar_event_type)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING *`

type CreateAgentParams struct {
	Name              string
	Description       string
	PromptTemplate    string
	Provider          string
	Model             string
	Temperature       float64
	VoiceID           string
	CalendarProvider  string
	CalendarEventType string
}

func (s Store) CreateAgent(ctx context.Context, params CreateAgentParams) (*Agent, error) {
	var agent Agent
	err := s.db.GetContext(ctx, &agent, sqlCreateAgent,
		params.Name,
		nullIfEmpty(params.Description),
		params.PromptTemplate,
		params.Provider,
		params.Model,
		params.Temperature,
		params.VoiceID,
		nullIfEmpty(params.CalendarProvider),
		nullIfEmpty(params.CalendarEventType),
	)
	if err != nil {
		s.logger.Error(ctx, "failed to create agent", err)
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return &agent, nil
}

func nullIfEmpty(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
