package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/tool"
)

var _ Environment = (*ToolEnvironment)(nil)

func lineStatusTool() tool.Tool {
	return tool.NewFunctionTool(
		"get_line_status",
		"Get the status of a customer line",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"line_id": map[string]any{"type": "string"},
			},
			"required": []string{"line_id"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			return map[string]any{"line_id": args["line_id"], "status": "active"}, nil
		},
	)
}

func failingTool(name string) tool.Tool {
	return tool.NewFunctionTool(
		name,
		"Always fails",
		map[string]any{"type": "object"},
		func(ctx context.Context, args map[string]any) (any, error) {
			return nil, errors.New("backend unavailable")
		},
	)
}

func panickingTool(name string) tool.Tool {
	return tool.NewFunctionTool(
		name,
		"Always panics",
		map[string]any{"type": "object"},
		func(ctx context.Context, args map[string]any) (any, error) {
			panic("nil dereference in handler")
		},
	)
}

func TestToolEnvironment_ExecuteSuccess(t *testing.T) {
	env := NewToolEnvironment([]tool.Tool{lineStatusTool()})

	msg := env.Execute(context.Background(), core.ToolCall{
		ID:        "c1",
		Name:      "get_line_status",
		Arguments: map[string]any{"line_id": "l-42"},
	})

	assert.Equal(t, "c1", msg.ID)
	assert.False(t, msg.Error)
	assert.JSONEq(t, `{"line_id":"l-42","status":"active"}`, msg.Content)
}

func TestToolEnvironment_StringResultPassesThrough(t *testing.T) {
	echo := tool.NewFunctionTool(
		"echo",
		"Echo the input",
		map[string]any{"type": "object"},
		func(ctx context.Context, args map[string]any) (any, error) {
			return "plain text result", nil
		},
	)

	env := NewToolEnvironment([]tool.Tool{echo})

	msg := env.Execute(context.Background(), core.ToolCall{ID: "c1", Name: "echo"})
	assert.Equal(t, "plain text result", msg.Content)
}

func TestToolEnvironment_UnknownTool(t *testing.T) {
	env := NewToolEnvironment(nil)

	msg := env.Execute(context.Background(), core.ToolCall{ID: "c1", Name: "ghost"})

	assert.True(t, msg.Error)
	assert.Contains(t, msg.Content, "not found")
}

func TestToolEnvironment_ToolFailure(t *testing.T) {
	env := NewToolEnvironment([]tool.Tool{failingTool("reset_network")})

	msg := env.Execute(context.Background(), core.ToolCall{ID: "c1", Name: "reset_network"})

	assert.True(t, msg.Error)
	assert.Contains(t, msg.Content, "backend unavailable")
}

func TestToolEnvironment_PanicRecovered(t *testing.T) {
	env := NewToolEnvironment([]tool.Tool{panickingTool("reboot_device")})

	msg := env.Execute(context.Background(), core.ToolCall{ID: "c1", Name: "reboot_device"})

	assert.True(t, msg.Error)
	assert.Contains(t, msg.Content, "panicked")
	assert.Contains(t, msg.Content, "nil dereference")
}

func TestToolEnvironment_Specs(t *testing.T) {
	env := NewToolEnvironment([]tool.Tool{lineStatusTool(), tool.NewTransferToHumanTool()})

	specs := env.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, "get_line_status", specs[0].Name)
	assert.Equal(t, tool.TransferToHumanName, specs[1].Name)

	// Mutating the returned slice must not affect the environment.
	specs[0].Name = "mutated"
	assert.Equal(t, "get_line_status", env.Specs()[0].Name)
}

func TestToolEnvironment_LaterToolReplacesEarlier(t *testing.T) {
	env := NewToolEnvironment([]tool.Tool{failingTool("get_line_status"), lineStatusTool()})

	require.Len(t, env.Specs(), 1)

	msg := env.Execute(context.Background(), core.ToolCall{
		ID:        "c1",
		Name:      "get_line_status",
		Arguments: map[string]any{"line_id": "l-1"},
	})
	assert.False(t, msg.Error)
}

func TestExecuteCalls_SingleCall(t *testing.T) {
	env := NewToolEnvironment([]tool.Tool{lineStatusTool()})

	out := ExecuteCalls(context.Background(), env, []core.ToolCall{
		{ID: "c1", Name: "get_line_status", Arguments: map[string]any{"line_id": "l-1"}},
	})

	single, ok := out.(*core.ToolMessage)
	require.True(t, ok)
	assert.Equal(t, "c1", single.ID)
}

func TestExecuteCalls_BatchKeepsOrder(t *testing.T) {
	env := NewToolEnvironment([]tool.Tool{lineStatusTool(), failingTool("reset_network")})

	out := ExecuteCalls(context.Background(), env, []core.ToolCall{
		{ID: "c1", Name: "get_line_status", Arguments: map[string]any{"line_id": "l-1"}},
		{ID: "c2", Name: "reset_network"},
	})

	bundle, ok := out.(*core.MultiToolMessage)
	require.True(t, ok)
	require.Len(t, bundle.Messages, 2)
	assert.Equal(t, "c1", bundle.Messages[0].ID)
	assert.False(t, bundle.Messages[0].Error)
	assert.Equal(t, "c2", bundle.Messages[1].ID)
	assert.True(t, bundle.Messages[1].Error)

	assert.Equal(t, 1, countToolErrors(out))
}

func TestStringifyResult(t *testing.T) {
	assert.Equal(t, "null", stringifyResult(nil))
	assert.Equal(t, "already a string", stringifyResult("already a string"))
	assert.JSONEq(t, `{"ok":true}`, stringifyResult(map[string]any{"ok": true}))
	assert.Equal(t, "42", stringifyResult(42))
}
