// Package tool implements the function / tool calling subsystem that lets the
// executor invoke structured capabilities (telecom backend actions) with
// schema validated arguments and consistent error handling. Drivers never
// execute tools themselves; they exchange provider-neutral Specs with the
// model layer and leave execution to the harness.
package tool

import (
	"context"
	"fmt"
)

// Tool defines the interface for capabilities exposed to the executor.
//
// Tools are registered with the benchmark environment to enable function
// calling, allowing the executor to perform actions against the simulated
// telecom backend such as line lookups, plan changes or device actions.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define proper JSON schema for parameters
//   - Handle errors gracefully
//   - Be thread-safe if used concurrently
type Tool interface {
	// Name returns the unique identifier for this tool.
	// Names should be descriptive and follow function naming conventions (snake_case recommended).
	Name() string

	// Description returns a human-readable description of what this tool does.
	// This description is provided to the model to help it understand when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	// This schema is used for parameter validation and model function calling.
	Parameters() map[string]interface{}

	// Call executes the tool with structured arguments.
	// Arguments are parsed from JSON and validated against the tool's schema.
	Call(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Spec is the provider-neutral schema for one callable tool: what drivers
// hand to the model layer and what prompt builders render from.
type Spec struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// SpecOf derives the Spec for a single tool.
func SpecOf(t Tool) Spec {
	return Spec{Name: t.Name(), Description: t.Description(), Parameters: t.Parameters()}
}

// Specs derives provider-neutral schemas for a tool set, preserving order.
func Specs(tools []Tool) []Spec {
	specs := make([]Spec, 0, len(tools))
	for _, t := range tools {
		specs = append(specs, SpecOf(t))
	}
	return specs
}

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string      `json:"tool"`              // Name of the tool that failed
	Message string      `json:"message"`           // Error message
	Code    string      `json:"code"`              // Error code for categorization
	Details interface{} `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
