package anthropic

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/tool"
)

func TestBuildMessages_RoleMapping(t *testing.T) {
	m := NewModel()

	msgs := m.buildMessages([]core.Message{
		&core.SystemMessage{Content: "You are a telecom support agent."},
		&core.UserMessage{Content: "My phone has no signal."},
		&core.AssistantMessage{Content: "Let me check your line."},
	})

	require.Len(t, msgs, 2)
	assert.Equal(t, anthropic.NewUserMessage(anthropic.NewTextBlock("My phone has no signal.")), msgs[0])
	assert.Equal(t, anthropic.NewAssistantMessage(anthropic.NewTextBlock("Let me check your line.")), msgs[1])
}

func TestBuildMessages_GroupsConsecutiveToolResults(t *testing.T) {
	m := NewModel()

	msgs := m.buildMessages([]core.Message{
		&core.AssistantMessage{ToolCalls: []core.ToolCall{
			{ID: "call-1", Name: "get_line_status", Arguments: map[string]any{"line_id": "L-100"}},
			{ID: "call-2", Name: "reset_network", Arguments: map[string]any{"line_id": "L-100"}},
		}},
		&core.ToolMessage{ID: "call-1", Content: "ok"},
		&core.ToolMessage{ID: "call-2", Content: "Error: backend unavailable", Error: true},
		&core.UserMessage{Content: "Still nothing."},
	})

	require.Len(t, msgs, 3)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[0].Role)
	assert.Equal(t, anthropic.NewUserMessage(
		anthropic.NewToolResultBlock("call-1", "ok", false),
		anthropic.NewToolResultBlock("call-2", "Error: backend unavailable", true),
	), msgs[1])
	assert.Equal(t, anthropic.NewUserMessage(anthropic.NewTextBlock("Still nothing.")), msgs[2])
}

func TestBuildMessages_FlattensBatchedResults(t *testing.T) {
	m := NewModel()

	msgs := m.buildMessages([]core.Message{
		&core.MultiToolMessage{Messages: []*core.ToolMessage{
			{ID: "call-1", Content: "ok"},
			{ID: "call-2", Content: "ok"},
		}},
	})

	require.Len(t, msgs, 1)
	assert.Equal(t, anthropic.NewUserMessage(
		anthropic.NewToolResultBlock("call-1", "ok", false),
		anthropic.NewToolResultBlock("call-2", "ok", false),
	), msgs[0])
}

func TestExtractSystemMessage(t *testing.T) {
	m := NewModel()

	blocks := m.extractSystemMessage([]core.Message{
		&core.SystemMessage{Content: "Base policy."},
		&core.UserMessage{Content: "hello"},
		&core.SystemMessage{Content: "Current plan."},
	})

	assert.Equal(t, []anthropic.TextBlockParam{{Text: "Base policy."}, {Text: "Current plan."}}, blocks)
}

func TestBuildAssistantContent(t *testing.T) {
	m := NewModel()

	content := m.buildAssistantContent(&core.AssistantMessage{
		Content: "Checking now.",
		ToolCalls: []core.ToolCall{
			{ID: "call-1", Name: "get_line_status", Arguments: map[string]any{"line_id": "L-100"}},
			{ID: "call-2", Name: "reset_network"},
		},
	})

	require.Len(t, content, 3)
	assert.Equal(t, anthropic.NewTextBlock("Checking now."), content[0])
	assert.Equal(t, anthropic.NewToolUseBlock("call-1", map[string]any{"line_id": "L-100"}, "get_line_status"), content[1])
	assert.Equal(t, anthropic.NewToolUseBlock("call-2", map[string]any{}, "reset_network"), content[2])
}

func TestBuildTools(t *testing.T) {
	m := NewModel()
	props := map[string]any{"line_id": map[string]any{"type": "string"}}

	tools := m.buildTools([]tool.Spec{
		{
			Name:        "get_line_status",
			Description: "Look up the current status of a subscriber line.",
			Parameters:  map[string]any{"type": "object", "properties": props, "required": []string{"line_id"}},
		},
		{
			Name:       "reset_network",
			Parameters: map[string]any{"type": "object", "properties": props, "required": []any{"line_id", 7}},
		},
	})

	require.Len(t, tools, 2)
	require.NotNil(t, tools[0].OfTool)
	assert.Equal(t, "get_line_status", tools[0].OfTool.Name)
	assert.Equal(t, props, tools[0].OfTool.InputSchema.Properties)
	assert.Equal(t, []string{"line_id"}, tools[0].OfTool.InputSchema.Required)

	require.NotNil(t, tools[1].OfTool)
	assert.Equal(t, []string{"line_id"}, tools[1].OfTool.InputSchema.Required)
}
