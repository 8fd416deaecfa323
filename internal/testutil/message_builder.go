package testutil

import (
	"github.com/hupe1980/telcoagents/core"
)

// MessageBuilder provides a fluent helper for constructing committed message
// histories in tests. Example:
//
//	msgs := testutil.NewMessageBuilder().
//		User("hello").
//		ToolCall("c1", "get_line_status", map[string]any{"line_id": "l1"}).
//		ToolResult("c1", `{"status":"active"}`).
//		Assistant("Your line is active.").
//		Build()
//
// Chain only the parts you need.
type MessageBuilder struct {
	msgs []core.Message
}

// NewMessageBuilder creates an empty builder.
func NewMessageBuilder() *MessageBuilder { return &MessageBuilder{} }

// User appends a customer utterance (chainable).
func (b *MessageBuilder) User(text string) *MessageBuilder {
	b.msgs = append(b.msgs, &core.UserMessage{Content: text})

	return b
}

// Assistant appends a text reply (chainable).
func (b *MessageBuilder) Assistant(text string) *MessageBuilder {
	b.msgs = append(b.msgs, &core.AssistantMessage{Content: text})

	return b
}

// AssistantWithExpense appends a text reply carrying cost and usage
// (chainable).
func (b *MessageBuilder) AssistantWithExpense(text string, cost float64, usage *core.TokenUsage) *MessageBuilder {
	b.msgs = append(b.msgs, &core.AssistantMessage{
		Content: text,
		Cost:    &cost,
		Usage:   usage,
	})

	return b
}

// ToolCall appends an assistant message requesting one tool call (chainable).
func (b *MessageBuilder) ToolCall(id, name string, args map[string]any) *MessageBuilder {
	b.msgs = append(b.msgs, &core.AssistantMessage{
		ToolCalls: []core.ToolCall{{ID: id, Name: name, Arguments: args}},
	})

	return b
}

// ToolResult appends a successful tool result (chainable).
func (b *MessageBuilder) ToolResult(id, content string) *MessageBuilder {
	b.msgs = append(b.msgs, &core.ToolMessage{ID: id, Content: content})

	return b
}

// ToolError appends a failed tool result (chainable).
func (b *MessageBuilder) ToolError(id, content string) *MessageBuilder {
	b.msgs = append(b.msgs, &core.ToolMessage{ID: id, Content: content, Error: true})

	return b
}

// Bundle appends a multi result bundle (chainable).
func (b *MessageBuilder) Bundle(results ...*core.ToolMessage) *MessageBuilder {
	b.msgs = append(b.msgs, &core.MultiToolMessage{Messages: results})

	return b
}

// Build returns the assembled history.
func (b *MessageBuilder) Build() []core.Message {
	out := make([]core.Message, len(b.msgs))
	copy(out, b.msgs)

	return out
}
