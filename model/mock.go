package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/telcoagents/core"
)

// MockModel is a scripted Model implementation for testing and offline demos.
//
// Responses are served in three tiers:
//  1. a FIFO queue of scripted results (responses or errors), consumed first
//  2. responses keyed by the trailing message's text content
//  3. a generated fallback echoing the trailing message
//
// Every received request is recorded for later inspection. MockModel is safe
// for concurrent use.
type MockModel struct {
	mu        sync.Mutex
	name      string
	queue     []mockResult
	responses map[string]*Response
	requests  []*Request
}

type mockResult struct {
	resp *Response
	err  error
}

// MockModelOptions configures a MockModel instance.
type MockModelOptions struct {
	// Name is the reported model identifier.
	Name string
}

// NewMockModel creates a mock model.
func NewMockModel(optFns ...func(o *MockModelOptions)) *MockModel {
	opts := MockModelOptions{Name: "mock-model"}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &MockModel{
		name:      opts.Name,
		responses: make(map[string]*Response),
	}
}

// EnqueueResponse appends a scripted response served before keyed lookups.
func (m *MockModel) EnqueueResponse(resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockResult{resp: resp})
}

// EnqueueText is a convenience for queueing a plain text reply with cost.
func (m *MockModel) EnqueueText(text string, cost float64) {
	m.EnqueueResponse(&Response{
		Content: text,
		Cost:    &cost,
		Usage:   &core.TokenUsage{PromptTokens: 10, CompletionTokens: 5},
	})
}

// EnqueueToolCall is a convenience for queueing a single tool call reply.
func (m *MockModel) EnqueueToolCall(name string, args map[string]any, cost float64) {
	m.EnqueueResponse(&Response{
		ToolCalls: []core.ToolCall{{ID: core.NewID(), Name: name, Arguments: args, Requestor: "assistant"}},
		Cost:      &cost,
		Usage:     &core.TokenUsage{PromptTokens: 10, CompletionTokens: 5},
	})
}

// EnqueueError appends a scripted failure.
func (m *MockModel) EnqueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockResult{err: err})
}

// AddResponse registers a response served when the trailing message content
// equals input and the queue is empty.
func (m *MockModel) AddResponse(input string, resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[input] = resp
}

// Requests returns a copy of all requests received so far.
func (m *MockModel) Requests() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of Generate invocations received so far.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Generate implements the Model interface with scripted behavior.
func (m *MockModel) Generate(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Model: m.name, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		if next.err != nil {
			return nil, &GenerationError{Model: m.name, Err: next.err}
		}
		return next.resp, nil
	}

	last := lastText(req.Messages)
	if resp, ok := m.responses[last]; ok {
		return resp, nil
	}

	return &Response{Content: fmt.Sprintf("Mock response to: %s", last)}, nil
}

// Info implements the Model interface.
func (m *MockModel) Info() Info {
	return Info{Name: m.name, Provider: "mock", SupportsTools: true}
}

// lastText extracts the trailing message's text content for keyed lookups.
func lastText(msgs []core.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		switch msg := msgs[i].(type) {
		case *core.UserMessage:
			return msg.Content
		case *core.AssistantMessage:
			return msg.Content
		case *core.ToolMessage:
			return msg.Content
		}
	}
	return ""
}
