// Package anthropic provides a model wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/tool"
)

// Options configures the Anthropic model adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Model wraps the Anthropic Messages API behind the generic model.Model interface.
type Model struct {
	client *anthropic.Client
	opts   Options
}

// NewModel creates a new Anthropic model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.0,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Model{
		client: &client,
		opts:   opts,
	}
}

// NewModelFromClient creates a new Anthropic model from an existing client
func NewModelFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.0,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Model{
		client: client,
		opts:   opts,
	}
}

// Generate performs a single blocking Messages API call. It adapts the
// Anthropic Messages API (with tool use) into a model.Response.
func (m *Model) Generate(ctx context.Context, req *model.Request) (*model.Response, error) {
	params := anthropic.MessageNewParams{
		Model:       m.opts.Model,
		Messages:    m.buildMessages(req.Messages),
		MaxTokens:   m.opts.MaxTokens,
		Temperature: anthropic.Float(m.opts.Temperature),
	}

	// The Messages API has no seed parameter, so only temperature and max
	// tokens are honored from the per-request options.
	if opts := req.Options; opts != nil {
		if opts.Temperature != nil {
			params.Temperature = anthropic.Float(*opts.Temperature)
		}
		if opts.MaxTokens != nil {
			params.MaxTokens = int64(*opts.MaxTokens)
		}
	}

	if systemBlocks := m.extractSystemMessage(req.Messages); len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	if len(req.Tools) > 0 {
		params.Tools = m.buildTools(req.Tools)
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &model.GenerationError{
			Model: string(m.opts.Model),
			Err:   fmt.Errorf("anthropic api error: %w", err),
		}
	}

	var textParts []string
	var toolCalls []core.ToolCall

	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			textBlock := block.AsText()
			if textBlock.Text != "" {
				textParts = append(textParts, textBlock.Text)
			}
		case "tool_use":
			toolBlock := block.AsToolUse()
			args := map[string]interface{}{}
			if len(toolBlock.Input) > 0 {
				var decoded map[string]interface{}
				if err := json.Unmarshal(toolBlock.Input, &decoded); err == nil {
					args = decoded
				}
			}
			toolCalls = append(toolCalls, core.ToolCall{
				ID:        toolBlock.ID,
				Name:      toolBlock.Name,
				Arguments: args,
				Requestor: "assistant",
			})
		}
	}

	finishReason := "stop"
	if resp.StopReason != "" {
		finishReason = string(resp.StopReason)
	}

	usage := &core.TokenUsage{
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
	}

	return &model.Response{
		Content:      strings.Join(textParts, ""),
		ToolCalls:    toolCalls,
		Cost:         model.CostOf(string(m.opts.Model), usage),
		Usage:        usage,
		FinishReason: finishReason,
	}, nil
}

// buildMessages converts the normalized transcript to Anthropic message
// format. Tool results must live in user-role messages, so consecutive tool
// messages are grouped into a single user message of tool_result blocks.
func (m *Model) buildMessages(msgs []core.Message) []anthropic.MessageParam {
	var messages []anthropic.MessageParam
	var pendingResults []anthropic.ContentBlockParamUnion

	flushResults := func() {
		if len(pendingResults) > 0 {
			messages = append(messages, anthropic.NewUserMessage(pendingResults...))
			pendingResults = nil
		}
	}

	for _, msg := range msgs {
		switch msg := msg.(type) {
		case *core.SystemMessage:
			// Handled separately via params.System.
		case *core.UserMessage:
			flushResults()
			if msg.Content != "" {
				messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		case *core.AssistantMessage:
			flushResults()
			if content := m.buildAssistantContent(msg); len(content) > 0 {
				messages = append(messages, anthropic.NewAssistantMessage(content...))
			}
		case *core.ToolMessage:
			pendingResults = append(pendingResults, anthropic.NewToolResultBlock(msg.ID, msg.Content, msg.Error))
		case *core.MultiToolMessage:
			for _, tm := range msg.Messages {
				pendingResults = append(pendingResults, anthropic.NewToolResultBlock(tm.ID, tm.Content, tm.Error))
			}
		}
	}

	flushResults()

	return messages
}

// extractSystemMessage collects system messages into system prompt blocks.
func (m *Model) extractSystemMessage(msgs []core.Message) []anthropic.TextBlockParam {
	var systemBlocks []anthropic.TextBlockParam

	for _, msg := range msgs {
		if sys, ok := msg.(*core.SystemMessage); ok && sys.Content != "" {
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{
				Text: sys.Content,
			})
		}
	}

	return systemBlocks
}

// buildAssistantContent builds content blocks for an assistant message.
func (m *Model) buildAssistantContent(msg *core.AssistantMessage) []anthropic.ContentBlockParamUnion {
	var content []anthropic.ContentBlockParamUnion

	if msg.Content != "" {
		content = append(content, anthropic.NewTextBlock(msg.Content))
	}

	for _, tc := range msg.ToolCalls {
		var input interface{} = map[string]interface{}{}
		if tc.Arguments != nil {
			input = tc.Arguments
		}

		content = append(content, anthropic.NewToolUseBlock(tc.ID, input, tc.Name))
	}

	return content
}

// buildTools converts tool specs to Anthropic tool format
func (m *Model) buildTools(specs []tool.Spec) []anthropic.ToolUnionParam {
	anthropicTools := make([]anthropic.ToolUnionParam, len(specs))

	for i, spec := range specs {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}

		if spec.Parameters != nil {
			if properties, exists := spec.Parameters["properties"]; exists {
				inputSchema.Properties = properties
			}
			if required, exists := spec.Parameters["required"]; exists {
				if reqSlice, ok := required.([]string); ok {
					inputSchema.Required = reqSlice
				} else if reqInterface, ok := required.([]interface{}); ok {
					var reqStrings []string
					for _, r := range reqInterface {
						if s, ok := r.(string); ok {
							reqStrings = append(reqStrings, s)
						}
					}
					inputSchema.Required = reqStrings
				}
			}
		}

		anthropicTools[i] = anthropic.ToolUnionParamOfTool(inputSchema, spec.Name)
	}

	return anthropicTools
}

// Info returns metadata describing this Anthropic model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:          string(m.opts.Model),
		Provider:      "anthropic",
		SupportsTools: true,
	}
}
