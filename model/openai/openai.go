// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API (including function/tool calling). It adapts the
// normalized message transcript into the SDK's message format and back.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/model"
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.0,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate performs a single blocking chat completion. It adapts OpenAI Chat
// Completions (with function/tool calling) into a model.Response.
func (m *Model) Generate(ctx context.Context, req *model.Request) (*model.Response, error) {
	params := m.buildParams(req, buildMessages(req.Messages))

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &model.GenerationError{Model: m.opts.Model, Err: fmt.Errorf("openai api error: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return nil, &model.GenerationError{Model: m.opts.Model, Err: fmt.Errorf("no choices returned")}
	}

	ch0 := resp.Choices[0]

	toolCalls := make([]core.ToolCall, 0, len(ch0.Message.ToolCalls))
	for _, tc := range ch0.Message.ToolCalls {
		toolCalls = append(toolCalls, core.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: parseArguments(tc.Function.Arguments),
			Requestor: "assistant",
		})
	}

	usage := &core.TokenUsage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}

	return &model.Response{
		Content:      ch0.Message.Content,
		ToolCalls:    toolCalls,
		Cost:         model.CostOf(m.opts.Model, usage),
		Usage:        usage,
		FinishReason: ch0.FinishReason,
	}, nil
}

// buildMessages converts the normalized transcript into OpenAI chat messages.
// Tool results already follow their originating assistant tool calls in the
// transcript, so the conversion is a straight pass.
func buildMessages(msgs []core.Message) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	for _, m := range msgs {
		switch msg := m.(type) {
		case *core.SystemMessage:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case *core.UserMessage:
			messages = append(messages, openai.UserMessage(msg.Content))
		case *core.AssistantMessage:
			if !msg.IsToolCall() {
				messages = append(messages, openai.AssistantMessage(msg.Content))
				continue
			}
			toolCalls := make([]openai.ChatCompletionMessageToolCallParam, 0, len(msg.ToolCalls))
			for _, tc := range msg.ToolCalls {
				toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCallParam{
					ID:   tc.ID,
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Name,
						Arguments: marshalArguments(tc.Arguments),
					},
				})
			}
			messages = append(
				messages,
				openai.ChatCompletionMessageParamUnion{OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: toolCalls,
				}},
			)
		case *core.ToolMessage:
			messages = append(messages, openai.ToolMessage(msg.Content, msg.ID))
		case *core.MultiToolMessage:
			for _, tm := range msg.Messages {
				messages = append(messages, openai.ToolMessage(tm.Content, tm.ID))
			}
		}
	}
	return messages
}

// buildParams assembles the OpenAI request parameters including tool definitions.
// Per-request generation options override the adapter defaults.
func (m *Model) buildParams(
	req *model.Request,
	messages []openai.ChatCompletionMessageParamUnion,
) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}
	if opts := req.Options; opts != nil {
		if opts.Temperature != nil {
			params.Temperature = openai.Float(*opts.Temperature)
		}
		if opts.MaxTokens != nil {
			params.MaxCompletionTokens = openai.Int(int64(*opts.MaxTokens))
		}
		if opts.Seed != nil {
			params.Seed = openai.Int(int64(*opts.Seed))
		}
	}
	if len(req.Tools) == 0 {
		return params
	}
	tools := make([]openai.ChatCompletionToolParam, len(req.Tools))
	for i, spec := range req.Tools {
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        spec.Name,
				Description: openai.String(spec.Description),
				Parameters:  spec.Parameters,
			},
		}
	}
	params.Tools = tools
	return params
}

// marshalArguments renders tool call arguments as the JSON string the API expects.
func marshalArguments(args map[string]interface{}) string {
	if len(args) == 0 {
		return "{}"
	}
	data, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// parseArguments decodes the JSON argument string returned by the API. A
// malformed payload yields an empty map; parameter validation at the tool
// boundary reports the missing arguments.
func parseArguments(raw string) map[string]interface{} {
	if raw == "" {
		return map[string]interface{}{}
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return map[string]interface{}{}
	}
	return args
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:          m.opts.Model,
		Provider:      "openai",
		SupportsTools: true,
	}
}
