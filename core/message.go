package core

import (
	"errors"
	"strings"
)

// Role identifies the producer of a message.
type Role string

const (
	// RoleSystem marks instruction preambles prepended to model calls.
	RoleSystem Role = "system"
	// RoleUser marks customer (or user simulator) utterances.
	RoleUser Role = "user"
	// RoleAssistant marks agent-produced replies.
	RoleAssistant Role = "assistant"
	// RoleTool marks tool execution results.
	RoleTool Role = "tool"
)

// TokenUsage captures prompt and completion token counts for one model call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Add accumulates counts from another usage value. A nil other is a no-op.
func (u *TokenUsage) Add(other *TokenUsage) {
	if other == nil {
		return
	}
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
}

// IsZero reports whether both counters are zero.
func (u *TokenUsage) IsZero() bool {
	return u == nil || (u.PromptTokens == 0 && u.CompletionTokens == 0)
}

// Clone returns a copy of the usage value, or nil for a nil receiver.
func (u *TokenUsage) Clone() *TokenUsage {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// ToolCall describes a single tool invocation requested by an assistant
// message. The ID correlates the call with its eventual ToolMessage result.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Requestor string         `json:"requestor,omitempty"` // "assistant" or "user"
}

// Message is a role tagged entry in a conversation. Concrete message types
// implement the unexported isMessage marker enabling a closed set.
type Message interface {
	Role() Role
	isMessage()
}

// SystemMessage carries an instruction preamble for model invocations.
// System messages never live inside the transcript; the conversation state
// holds them separately and prepends them fresh before every executor call.
type SystemMessage struct {
	Content string
}

// Role implements the Message interface for SystemMessage.
func (*SystemMessage) Role() Role { return RoleSystem }

func (*SystemMessage) isMessage() {}

// UserMessage is an utterance from the customer. Cost and usage are set when
// the utterance was produced by a user simulator model.
type UserMessage struct {
	Content string
	Cost    *float64
	Usage   *TokenUsage
}

// Role implements the Message interface for UserMessage.
func (*UserMessage) Role() Role { return RoleUser }

func (*UserMessage) isMessage() {}

// AssistantMessage is a reply produced by an agent: either text content or
// one or more tool calls, never both and never neither.
type AssistantMessage struct {
	Content   string
	ToolCalls []ToolCall
	Cost      *float64
	Usage     *TokenUsage
	Metadata  map[string]any
}

// Role implements the Message interface for AssistantMessage.
func (*AssistantMessage) Role() Role { return RoleAssistant }

func (*AssistantMessage) isMessage() {}

// IsToolCall reports whether the message requests tool execution.
func (m *AssistantMessage) IsToolCall() bool { return len(m.ToolCalls) > 0 }

// Validate enforces the content/tool-call exclusivity rule.
func (m *AssistantMessage) Validate() error {
	hasContent := strings.TrimSpace(m.Content) != ""
	if hasContent && len(m.ToolCalls) > 0 {
		return errors.New("assistant message carries both content and tool calls")
	}
	if !hasContent && len(m.ToolCalls) == 0 {
		return errors.New("assistant message carries neither content nor tool calls")
	}
	return nil
}

// AddCost merges an auxiliary cost into the message cost, creating it when absent.
func (m *AssistantMessage) AddCost(c float64) {
	if m.Cost != nil {
		*m.Cost += c
		return
	}
	m.Cost = &c
}

// AddUsage merges auxiliary token usage, creating the mapping when absent.
func (m *AssistantMessage) AddUsage(u *TokenUsage) {
	if u.IsZero() {
		return
	}
	if m.Usage == nil {
		m.Usage = &TokenUsage{}
	}
	m.Usage.Add(u)
}

// ToolMessage is the result of executing a single tool call.
type ToolMessage struct {
	ID      string // id of the answered tool call
	Content string // stringified result
	Error   bool   // set when execution failed
}

// Role implements the Message interface for ToolMessage.
func (*ToolMessage) Role() Role { return RoleTool }

func (*ToolMessage) isMessage() {}

// MultiToolMessage bundles several tool results delivered together, e.g.
// the answers to one assistant message with parallel tool calls. Drivers
// unpack it into individual ToolMessages before appending to the transcript.
type MultiToolMessage struct {
	Messages []*ToolMessage
}

// Role implements the Message interface for MultiToolMessage.
func (*MultiToolMessage) Role() Role { return RoleTool }

func (*MultiToolMessage) isMessage() {}

// HasError reports whether any bundled result carries the error flag.
func (m *MultiToolMessage) HasError() bool {
	for _, t := range m.Messages {
		if t.Error {
			return true
		}
	}
	return false
}
