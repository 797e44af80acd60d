package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"voice-server/internal/llm"
	"voice-server/internal/observability"

	"github.com/openai/openai-go"
	openaiOption "github.com/openai/openai-go/option"
)

const ProviderName = "openai"

// Client adapts the OpenAI chat completions API to the llm.Provider
// contract, including tool calling.
type Client struct {
	client openai.Client
	logger *observability.Logger
}

func NewClient(apiKey string, logger *observability.Logger) *Client {
	return &Client{
		client: openai.NewClient(openaiOption.WithAPIKey(apiKey)),
		logger: logger,
	}
}

func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: toMessageParams(req.Messages),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if len(req.Functions) > 0 {
		params.Tools = toToolParams(req.Functions)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logger.Error(ctx, "openai chat completion failed", err)
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai chat completion returned no choices")
	}

	message := completion.Choices[0].Message
	if len(message.ToolCalls) > 0 {
		call := message.ToolCalls[0]
		args := map[string]interface{}{}
		if call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("openai tool call arguments: %w", err)
			}
		}
		return &llm.Response{
			FunctionCall: &llm.FunctionCall{Name: call.Function.Name, Arguments: args},
		}, nil
	}

	return &llm.Response{Text: message.Content}, nil
}

func toMessageParams(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case llm.RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		case llm.RoleFunction:
			// Function results are replayed as plain context; the orchestrator
			// has already turned the structured result into a sentence.
			params = append(params, openai.UserMessage(fmt.Sprintf("[%s result] %s", m.FunctionName, m.Content)))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}
	return params
}

func toToolParams(functions []llm.FunctionSchema) []openai.ChatCompletionToolParam {
	tools := make([]openai.ChatCompletionToolParam, 0, len(functions))
	for _, f := range functions {
		tools = append(tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        f.Name,
				Description: openai.String(f.Description),
				Parameters:  openai.FunctionParameters(f.Parameters),
			},
		})
	}
	return tools
}
