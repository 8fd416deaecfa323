package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/tool"
)

// GenOptions carries the sampling controls shared by every role invocation a
// driver issues. A driver hands the same pointer to all of its controllers,
// so injecting a seed later is visible to planner, verifier and router alike.
type GenOptions struct {
	// Temperature controls sampling randomness; nil applies provider defaults.
	Temperature *float64
	// Seed makes sampling deterministic where the provider supports it.
	Seed *int
	// MaxTokens caps the completion length; nil applies provider defaults.
	MaxTokens *int
}

// Request bundles everything needed for one role invocation.
type Request struct {
	// Messages is the ordered model context, system preamble first.
	Messages []core.Message
	// Tools lists the callable tool schemas; empty for tool-less roles
	// (planner, verifier, router).
	Tools []tool.Spec
	// Options holds sampling controls; nil applies provider defaults.
	Options *GenOptions
}

// Response is the provider-neutral result of one role invocation.
type Response struct {
	// Content is the generated text; empty when the model chose tool calls.
	Content string
	// ToolCalls lists requested tool invocations; empty for text replies.
	ToolCalls []core.ToolCall
	// Cost is the derived dollar cost of the call; nil when unknown.
	Cost *float64
	// Usage reports token consumption; nil when the provider omitted it.
	Usage *core.TokenUsage
	// FinishReason is the provider's stop reason, when reported.
	FinishReason string
}

// AssistantMessage converts the response into a transcript message.
func (r *Response) AssistantMessage() *core.AssistantMessage {
	return &core.AssistantMessage{
		Content:   r.Content,
		ToolCalls: r.ToolCalls,
		Cost:      r.Cost,
		Usage:     r.Usage,
	}
}

// Info describes a model implementation.
type Info struct {
	// Name is the provider-side model identifier.
	Name string
	// Provider identifies the backing service ("openai", "anthropic", "mock").
	Provider string
	// SupportsTools reports whether the model can emit tool calls.
	SupportsTools bool
}

// Model is the interface all language model integrations implement.
//
// Generate blocks until the provider returns a complete response; callers
// cancel via ctx. Implementations never retry internally; retry and
// fallback policy belongs to the calling controller.
type Model interface {
	// Generate performs one role invocation.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Info returns metadata about the model implementation.
	Info() Info
}

// GenerationError wraps provider failures crossing the model boundary.
// Every call site treats it as a degradable condition and applies its own
// fallback (proceed without a plan, approve, default category).
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for model %s: %v", e.Model, e.Err)
}

// Unwrap exposes the underlying provider error.
func (e *GenerationError) Unwrap() error { return e.Err }
