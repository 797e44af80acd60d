package googleai

import (
	"context"
	"fmt"

	"voice-server/internal/llm"
	"voice-server/internal/observability"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const ProviderName = "google"

// Client adapts the Gemini API to the llm.Provider contract.
type Client struct {
	apiKey string
	logger *observability.Logger
}

func NewClient(apiKey string, logger *observability.Logger) *Client {
	return &Client{apiKey: apiKey, logger: logger}
}

func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		c.logger.Error(ctx, "failed to create Gemini client", err)
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(req.Model)
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if len(req.Functions) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: toDeclarations(req.Functions)}}
	}

	history, prompt := splitMessages(req.Messages, model)

	chat := model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Error(ctx, "gemini chat failed", err)
		return nil, fmt.Errorf("gemini chat: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.FunctionCall:
			return &llm.Response{
				FunctionCall: &llm.FunctionCall{Name: p.Name, Arguments: p.Args},
			}, nil
		case genai.Text:
			text += string(p)
		}
	}

	return &llm.Response{Text: text}, nil
}

// splitMessages maps the transcript onto Gemini's chat shape: the system
// prompt becomes a system instruction, the final user turn is the prompt,
// everything between is history.
func splitMessages(messages []llm.Message, model *genai.GenerativeModel) ([]*genai.Content, string) {
	var history []*genai.Content
	prompt := ""

	for i, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(m.Content)}}
			continue
		}

		content := m.Content
		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "model" // Gemini SDK expects "model"
		}
		if m.Role == llm.RoleFunction {
			content = fmt.Sprintf("[%s result] %s", m.FunctionName, m.Content)
		}

		if i == len(messages)-1 && role == "user" {
			prompt = content
			continue
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(content)},
		})
	}

	if prompt == "" {
		prompt = "Please greet the caller."
	}
	return history, prompt
}

func toDeclarations(functions []llm.FunctionSchema) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        f.Name,
			Description: f.Description,
			Parameters:  toSchema(f.Parameters),
		})
	}
	return decls
}

// toSchema converts a JSON-schema object into the Gemini schema type. Only
// the subset used by our function descriptors is handled.
func toSchema(params map[string]interface{}) *genai.Schema {
	if params == nil {
		return nil
	}

	schema := &genai.Schema{Type: toSchemaType(params["type"])}
	if desc, ok := params["description"].(string); ok {
		schema.Description = desc
	}

	if props, ok := params["properties"].(map[string]interface{}); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if prop, ok := raw.(map[string]interface{}); ok {
				schema.Properties[name] = toSchema(prop)
			}
		}
	}

	if required, ok := params["required"].([]interface{}); ok {
		for _, r := range required {
			if name, ok := r.(string); ok {
				schema.Required = append(schema.Required, name)
			}
		}
	}

	if items, ok := params["items"].(map[string]interface{}); ok {
		schema.Items = toSchema(items)
	}

	return schema
}

func toSchemaType(raw interface{}) genai.Type {
	t, _ := raw.(string)
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
