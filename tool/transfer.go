package tool

import "context"

// TransferToHumanName is the well-known escalation tool name. The hard
// verification driver looks for it in the executor's tool inventory when all
// verification attempts are exhausted.
const TransferToHumanName = "transfer_to_human_agents"

// NewTransferToHumanTool constructs the standard human escalation tool.
// Calling it signals the harness that the conversation should be handed to a
// human agent; the result text is what the model sees as confirmation.
func NewTransferToHumanTool(optFns ...func(o *FunctionToolOptions)) *FunctionTool {
	return NewFunctionTool(
		TransferToHumanName,
		"Transfer the user to a human agent. Use only when the issue cannot be resolved with the available tools.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{
					"type":        "string",
					"description": "A short summary of the user's issue",
				},
			},
			"required": []string{"summary"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			return "Transfer successful", nil
		},
		optFns...,
	)
}

// HasTransfer reports whether the tool set contains the escalation tool.
func HasTransfer(specs []Spec) bool {
	for _, s := range specs {
		if s.Name == TransferToHumanName {
			return true
		}
	}
	return false
}
