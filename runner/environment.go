package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/tool"
)

// Environment executes the tool calls a driver issues during an episode. It
// stands in for the telecom backend the benchmark simulates.
type Environment interface {
	// Specs returns the tool catalog exposed to the driver.
	Specs() []tool.Spec

	// Execute runs a single tool call and renders its result.
	Execute(ctx context.Context, call core.ToolCall) *core.ToolMessage
}

// ToolEnvironmentOptions configures a ToolEnvironment.
type ToolEnvironmentOptions struct {
	// Logger receives execution events. Defaults to a no-op logger.
	Logger logging.Logger
}

// ToolEnvironment is an Environment backed by a registry of Tool
// implementations, keyed by tool name.
type ToolEnvironment struct {
	registry map[string]tool.Tool
	specs    []tool.Spec
	logger   logging.Logger
}

// NewToolEnvironment builds an environment over the given tools. A later
// tool with the same name replaces an earlier one.
func NewToolEnvironment(tools []tool.Tool, optFns ...func(o *ToolEnvironmentOptions)) *ToolEnvironment {
	opts := ToolEnvironmentOptions{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	registry := make(map[string]tool.Tool, len(tools))
	specs := make([]tool.Spec, 0, len(tools))

	for _, t := range tools {
		if _, ok := registry[t.Name()]; !ok {
			specs = append(specs, tool.SpecOf(t))
		}

		registry[t.Name()] = t
	}

	return &ToolEnvironment{
		registry: registry,
		specs:    specs,
		logger:   opts.Logger,
	}
}

// Specs returns the tool catalog exposed to the driver.
func (e *ToolEnvironment) Specs() []tool.Spec {
	out := make([]tool.Spec, len(e.specs))
	copy(out, e.specs)

	return out
}

// Execute runs a single tool call. Failures, unknown tools and panics are
// rendered as error results rather than aborting the episode.
func (e *ToolEnvironment) Execute(ctx context.Context, call core.ToolCall) (msg *core.ToolMessage) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("environment.tool.panicked",
				"tool", call.Name,
				"panic", fmt.Sprintf("%v", r),
			)

			msg = &core.ToolMessage{
				ID:      call.ID,
				Content: fmt.Sprintf("Error: tool %q panicked: %v", call.Name, r),
				Error:   true,
			}
		}
	}()

	impl, ok := e.registry[call.Name]
	if !ok {
		e.logger.Warn("environment.tool.unknown", "tool", call.Name)

		return &core.ToolMessage{
			ID:      call.ID,
			Content: fmt.Sprintf("Error: tool %q not found", call.Name),
			Error:   true,
		}
	}

	result, err := impl.Call(ctx, call.Arguments)
	if err != nil {
		e.logger.Warn("environment.tool.failed",
			"tool", call.Name,
			"error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)

		return &core.ToolMessage{
			ID:      call.ID,
			Content: fmt.Sprintf("Error: %s", err.Error()),
			Error:   true,
		}
	}

	e.logger.Debug("environment.tool.executed",
		"tool", call.Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &core.ToolMessage{
		ID:      call.ID,
		Content: stringifyResult(result),
	}
}

// ExecuteCalls runs a batch of tool calls in request order and bundles the
// results. Sequential execution keeps episode transcripts deterministic.
func ExecuteCalls(ctx context.Context, env Environment, calls []core.ToolCall) core.Message {
	if len(calls) == 1 {
		return env.Execute(ctx, calls[0])
	}

	results := make([]*core.ToolMessage, 0, len(calls))
	for _, call := range calls {
		results = append(results, env.Execute(ctx, call))
	}

	return &core.MultiToolMessage{Messages: results}
}

// stringifyResult renders a tool result for the transcript. Strings pass
// through unchanged; everything else is JSON encoded.
func stringifyResult(result any) string {
	switch v := result.(type) {
	case nil:
		return "null"
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(data)
	}
}
