package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/tool"
)

// Interface conformance for every driver.
var (
	_ Agent = (*LLMAgent)(nil)
	_ Agent = (*StaticPlanAgent)(nil)
	_ Agent = (*AdaptivePlanAgent)(nil)
	_ Agent = (*SoftVerifyAgent)(nil)
	_ Agent = (*HardVerifyAgent)(nil)
	_ Agent = (*TwoTierAgent)(nil)
	_ Agent = (*ThreeTierAgent)(nil)
	_ Agent = (*RouteOnceAgent)(nil)
)

const testPolicy = "Always verify the customer's identity before making changes."

func testTools() []tool.Spec {
	return []tool.Spec{
		{
			Name:        "get_customer_by_phone",
			Description: "Look up a customer record by phone number.",
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"phone_number": map[string]interface{}{"type": "string"}},
				"required":   []string{"phone_number"},
			},
		},
		tool.SpecOf(tool.NewTransferToHumanTool()),
	}
}

func newConversation(t *testing.T) *core.Conversation {
	t.Helper()

	conv, err := core.NewConversation()
	assert.NoError(t, err)

	return conv
}

// -------------------- Baseline Driver Tests --------------------

func TestLLMAgent_Respond(t *testing.T) {
	mock := model.NewMockModel()
	mock.EnqueueText("Let me look up your account.", 0.01)

	a := NewLLMAgent(mock, testPolicy, testTools())
	conv := newConversation(t)

	msg, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "my phone has no signal"})
	assert.NoError(t, err)

	assert.Equal(t, "Let me look up your account.", msg.Content)
	assert.Equal(t, "llm_agent", msg.Metadata["generated_by"])
	assert.Equal(t, 0.01, *msg.Cost)

	// Preamble carries the policy; the transcript carries both turn messages.
	assert.Len(t, conv.SystemMessages, 1)
	assert.Contains(t, conv.SystemMessages[0].Content, testPolicy)
	assert.Equal(t, 2, conv.Transcript.Len())
	assert.Same(t, msg, conv.Transcript.Last())

	// The single executor call sees preamble plus history and the full catalog.
	assert.Equal(t, 1, mock.CallCount())
	req := mock.Requests()[0]
	assert.Len(t, req.Messages, 2)
	assert.Len(t, req.Tools, 2)
}

func TestLLMAgent_ToolCallPassThrough(t *testing.T) {
	mock := model.NewMockModel()
	mock.EnqueueToolCall("get_customer_by_phone", map[string]any{"phone_number": "555-0100"}, 0.01)

	a := NewLLMAgent(mock, testPolicy, testTools())
	conv := newConversation(t)

	msg, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "my data is slow"})
	assert.NoError(t, err)

	assert.True(t, msg.IsToolCall())
	assert.Equal(t, "get_customer_by_phone", msg.ToolCalls[0].Name)
	assert.Empty(t, msg.Content)
}

func TestLLMAgent_PreambleInstalledOnce(t *testing.T) {
	mock := model.NewMockModel()
	mock.EnqueueText("Hello!", 0.0)
	mock.EnqueueText("Goodbye!", 0.0)

	a := NewLLMAgent(mock, testPolicy, testTools())
	conv := newConversation(t)

	_, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "hi"})
	assert.NoError(t, err)

	first := conv.SystemMessages[0]

	_, err = a.Respond(context.Background(), conv, &core.UserMessage{Content: "bye"})
	assert.NoError(t, err)

	assert.Len(t, conv.SystemMessages, 1)
	assert.Same(t, first, conv.SystemMessages[0])
}

func TestLLMAgent_ExecutorErrorPropagates(t *testing.T) {
	mock := model.NewMockModel()
	mock.EnqueueError(errors.New("rate limited"))

	a := NewLLMAgent(mock, testPolicy, testTools())
	conv := newConversation(t)

	_, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "hi"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "llm_agent executor")

	// The failed turn leaves no assistant message behind.
	assert.Equal(t, 1, conv.Transcript.Len())
}

// -------------------- Safety Net Tests --------------------

func TestSafetyNet_EmptyResponseReplaced(t *testing.T) {
	cost := 0.01
	mock := model.NewMockModel()
	mock.EnqueueResponse(&model.Response{
		Content: "",
		Cost:    &cost,
		Usage:   &core.TokenUsage{PromptTokens: 7},
	})

	a := NewLLMAgent(mock, testPolicy, testTools())
	conv := newConversation(t)

	msg, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "hi"})
	assert.NoError(t, err)

	assert.Equal(t, safetyNetText, msg.Content)
	assert.Empty(t, msg.ToolCalls)
	assert.Equal(t, "llm_agent", msg.Metadata["generated_by"])

	// The discarded response still bills its spend.
	assert.Equal(t, 0.01, *msg.Cost)
	assert.Equal(t, 7, msg.Usage.PromptTokens)
}

func TestSafetyNet_WhitespaceOnlyContent(t *testing.T) {
	mock := model.NewMockModel()
	mock.EnqueueResponse(&model.Response{Content: "  \n\t"})

	a := NewLLMAgent(mock, testPolicy, testTools())
	conv := newConversation(t)

	msg, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "hi"})
	assert.NoError(t, err)

	assert.Equal(t, safetyNetText, msg.Content)
}

// -------------------- Seed Tests --------------------

func TestSetSeed(t *testing.T) {
	mock := model.NewMockModel()
	mock.EnqueueText("ok", 0.0)

	a := NewLLMAgent(mock, testPolicy, testTools())
	assert.NoError(t, a.SetSeed(300))

	conv := newConversation(t)
	_, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "hi"})
	assert.NoError(t, err)

	req := mock.Requests()[0]
	assert.NotNil(t, req.Options.Seed)
	assert.Equal(t, 300, *req.Options.Seed)
}

func TestSetSeed_NoModel(t *testing.T) {
	a := NewLLMAgent(nil, testPolicy, testTools())
	assert.ErrorIs(t, a.SetSeed(42), ErrNoModel)
}

func TestSetSeed_Overwrite(t *testing.T) {
	a := NewLLMAgent(model.NewMockModel(), testPolicy, testTools())
	assert.NoError(t, a.SetSeed(1))
	assert.NoError(t, a.SetSeed(2))
	assert.Equal(t, 2, *a.genOpts.Seed)
}

// -------------------- Finalize Tests --------------------

func TestFinalize_MetadataNeverOverwritten(t *testing.T) {
	b := newBase("probe", model.NewMockModel(), nil, Options{Logger: logging.NewNoOpLogger()})
	conv := newConversation(t)

	msg := &core.AssistantMessage{
		Content:  "done",
		Metadata: map[string]any{"generated_by": "upstream", "custom": 1},
	}

	out := b.finalize(conv, msg, nil, map[string]any{"custom": 2, "extra": "x"})

	assert.Equal(t, "upstream", out.Metadata["generated_by"])
	assert.Equal(t, 1, out.Metadata["custom"])
	assert.Equal(t, "x", out.Metadata["extra"])
}

func TestFinalize_ExpenseMerged(t *testing.T) {
	b := newBase("probe", model.NewMockModel(), nil, Options{Logger: logging.NewNoOpLogger()})
	conv := newConversation(t)

	cost := 0.01
	msg := &core.AssistantMessage{
		Content: "done",
		Cost:    &cost,
		Usage:   &core.TokenUsage{PromptTokens: 10, CompletionTokens: 5},
	}

	expense := &core.Expense{Cost: 0.02, Usage: core.TokenUsage{PromptTokens: 20, CompletionTokens: 8}}

	out := b.finalize(conv, msg, expense, nil)

	assert.InDelta(t, 0.03, *out.Cost, 1e-9)
	assert.Equal(t, 30, out.Usage.PromptTokens)
	assert.Equal(t, 13, out.Usage.CompletionTokens)

	// The finalized message is committed to the transcript.
	assert.Equal(t, 1, conv.Transcript.Len())
	assert.Same(t, out, conv.Transcript.Last())
}

// -------------------- Helper Tests --------------------

func TestRoutedAgent(t *testing.T) {
	conv := newConversation(t)
	assert.Equal(t, "unrouted", routedAgent(conv))

	conv.CurrentAgent = "service_issue"
	assert.Equal(t, "service_issue", routedAgent(conv))
}

func TestHasToolError(t *testing.T) {
	assert.False(t, hasToolError(&core.UserMessage{Content: "hi"}))
	assert.False(t, hasToolError(&core.ToolMessage{Content: "ok"}))
	assert.True(t, hasToolError(&core.ToolMessage{Content: "boom", Error: true}))
	assert.True(t, hasToolError(&core.MultiToolMessage{Messages: []*core.ToolMessage{
		{Content: "ok"},
		{Content: "boom", Error: true},
	}}))
}
