package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// FunctionConfig is a user-registered function: a name and JSON schema
// exposed to the language model, backed by an HTTP endpoint with its own
// credentials. Configs of the same name shadow built-in functions.
type FunctionConfig struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	Parameters     json.RawMessage `db:"parameters"`
	EndpointURL    string          `db:"endpoint_url"`
	APIKey         sql.NullString  `db:"api_key"`
	TimeoutSeconds int             `db:"timeout_seconds"`
	MaxRetries     int             `db:"max_retries"`
	Active         bool            `db:"active"`
	CreatedAt      string          `db:"created_at"`
}

const sqlGetActiveFunctionConfigs = `
SELECT * FROM function_configs WHERE active = true ORDER BY name ASC`

func (s Store) GetActiveFunctionConfigs(ctx context.Context) ([]FunctionConfig, error) {
	var configs []FunctionConfig
	err := s.db.SelectContext(ctx, &configs, sqlGetActiveFunctionConfigs)
	if err != nil {
		s.logger.Error(ctx, "failed to get active function configs", err)
		return nil, fmt.Errorf("failed to get active function configs: %w", err)
	}
	return configs, nil
}

const sqlCreateFunctionConfig = `
INSERT INTO function_configs (name, description, parameters, endpoint_url, api_key, timeout_seconds, max_retries, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, true)
RETURNING *`

type CreateFunctionConfigParams struct {
	Name           string
	Description    string
	Parameters     json.RawMessage
	EndpointURL    string
	APIKey         string
	TimeoutSeconds int
	MaxRetries     int
}

func (s Store) CreateFunctionConfig(ctx context.Context, params CreateFunctionConfigParams) (*FunctionConfig, error) {
	var config FunctionConfig
	err := s.db.GetContext(ctx, &config, sqlCreateFunctionConfig,
		params.Name,
		params.Description,
		params.Parameters,
		params.EndpointURL,
		nullIfEmpty(params.APIKey),
		params.TimeoutSeconds,
		params.MaxRetries,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to create function config", err)
		return nil, fmt.Errorf("failed to create function config: %w", err)
	}
	return &config, nil
}
