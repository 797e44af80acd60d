package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"voice-server/internal/observability"
	"voice-server/internal/store"
)

// DynamicFunction is a user-registered function backed by an HTTP endpoint.
// The endpoint receives the model's arguments plus call identifiers and
// answers with a Result-shaped JSON body.
type DynamicFunction struct {
	config     store.FunctionConfig
	httpClient *http.Client
	logger     *observability.Logger
}

// NewDynamicFunction builds a function from its stored configuration.
func NewDynamicFunction(config store.FunctionConfig, logger *observability.Logger) *DynamicFunction {
	return &DynamicFunction{
		config:     config,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (f *DynamicFunction) Name() string        { return f.config.Name }
func (f *DynamicFunction) Description() string { return f.config.Description }

func (f *DynamicFunction) Parameters() map[string]interface{} {
	var params map[string]interface{}
	if err := json.Unmarshal(f.config.Parameters, &params); err != nil {
		// A broken stored schema should not take the call down; advertise an
		// argument-free function instead.
		return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
	}
	return params
}

func (f *DynamicFunction) Timeout() time.Duration {
	if f.config.TimeoutSeconds > 0 {
		return time.Duration(f.config.TimeoutSeconds) * time.Second
	}
	return 10 * time.Second
}

func (f *DynamicFunction) Retries() int {
	return f.config.MaxRetries
}

type dynamicPayload struct {
	CallID        string                 `json:"call_id"`
	CustomerPhone string                 `json:"customer_phone,omitempty"`
	Arguments     map[string]interface{} `json:"arguments"`
}

func (f *DynamicFunction) Invoke(ctx context.Context, args map[string]interface{}, call CallContext) (Result, error) {
	body, err := json.Marshal(dynamicPayload{
		CallID:        call.CallID,
		CustomerPhone: call.CustomerPhone,
		Arguments:     args,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal dynamic function payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build dynamic function request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if f.config.APIKey.Valid {
		req.Header.Set("Authorization", "Bearer "+f.config.APIKey.String)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("dynamic function %s: %w", f.config.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Result{}, fmt.Errorf("dynamic function %s returned status %d", f.config.Name, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		// 4xx is the endpoint's answer, not a transport failure.
		return Fail(fmt.Sprintf("the %s service declined the request", f.config.Name)), nil
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("failed to decode dynamic function response: %w", err)
	}
	return result, nil
}
