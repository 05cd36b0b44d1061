// Package agent provides the loop that connects the model to the shopping
// tools.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"shopping-agent/logger"
	"shopping-agent/tools"
)

const maxToolCalls = 10

const instructions = `You are a helpful shopping assistant. Use the product list from the API
to recommend products based on the user's query. Be friendly and concise.`

// Options configures the model endpoint.
type Options struct {
	// BaseURL of an OpenAI-compatible API, e.g. Gemini's /v1beta/openai/.
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Agent answers one shopping query at a time, executing tool calls
// requested by the model.
type Agent struct {
	model    string
	registry *tools.Registry
	client   *openai.Client
	log      *logger.Logger
}

// New creates an Agent talking to an OpenAI-compatible chat completions API.
func New(opts Options, registry *tools.Registry, log *logger.Logger) *Agent {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second // model responses can be slow
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Agent{
		model:    opts.Model,
		registry: registry,
		client:   openai.NewClientWithConfig(cfg),
		log:      log.With("component", "agent"),
	}
}

// Chat answers a single query. Every call starts a fresh conversation.
func (a *Agent) Chat(ctx context.Context, query string) (string, error) {
	log := a.log.With("run_id", uuid.NewString())
	log.Info("query", "text", query)

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: instructions},
		{Role: openai.ChatMessageRoleUser, Content: query},
	}

	for i := 0; i < maxToolCalls; i++ {
		reply, err := a.sendRequest(ctx, log, messages)
		if err != nil {
			return "", err
		}

		if len(reply.ToolCalls) == 0 {
			log.Info("answered", "rounds", i+1, "content_len", len(reply.Content))
			return strings.TrimSpace(reply.Content), nil
		}

		messages = append(messages, reply)

		for _, tc := range reply.ToolCalls {
			result, err := a.executeTool(ctx, tc)
			if err != nil {
				log.Warn("tool call failed", "tool", tc.Function.Name, "error", err)
				result = fmt.Sprintf("Error: %v", err)
			}

			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	return "", fmt.Errorf("exceeded maximum tool calls (%d)", maxToolCalls)
}

func (a *Agent) sendRequest(ctx context.Context, log *logger.Logger, messages []openai.ChatCompletionMessage) (openai.ChatCompletionMessage, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
		Tools:    a.registry.ToOpenAITools(),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Warn("model rejected request", "status", apiErr.HTTPStatusCode, "message", apiErr.Message)
		}
		return openai.ChatCompletionMessage{}, fmt.Errorf("calling model: %w", err)
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{}, errors.New("model returned no choices")
	}

	choice := resp.Choices[0]
	log.Debug("response",
		"finish_reason", choice.FinishReason,
		"content_len", len(choice.Message.Content),
		"tool_calls", len(choice.Message.ToolCalls))
	for i, tc := range choice.Message.ToolCalls {
		log.Debug("tool call", "index", i, "name", tc.Function.Name, "arguments", tc.Function.Arguments)
	}

	msg := choice.Message
	if msg.Role == "" {
		msg.Role = openai.ChatMessageRoleAssistant
	}
	return msg, nil
}

func (a *Agent) executeTool(ctx context.Context, tc openai.ToolCall) (string, error) {
	tool, ok := a.registry.Get(tc.Function.Name)
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", tc.Function.Name)
	}

	var args map[string]any
	if strings.TrimSpace(tc.Function.Arguments) != "" {
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return "", fmt.Errorf("parsing tool arguments: %w", err)
		}
	}

	return tool.Execute(ctx, args)
}
