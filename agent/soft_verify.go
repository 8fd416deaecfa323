package agent

import (
	"context"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/tool"
	"github.com/hupe1980/telcoagents/verify"
)

// SoftVerifyAgent pairs the Executor with an advisory Verifier. Every
// proposed action is judged once; a non-approving verdict triggers a single
// revision with the verdict's feedback, after which the action proceeds
// unconditionally. The verifier can delay an action by one attempt but never
// block it.
type SoftVerifyAgent struct {
	base
	verifier     *verify.Verifier
	systemPrompt string
}

// NewSoftVerifyAgent creates the advisory executor+verifier driver for the
// given domain policy and tool catalog.
func NewSoftVerifyAgent(m model.Model, policy string, tools []tool.Spec, optFns ...func(o *Options)) *SoftVerifyAgent {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	b := newBase("soft_verify", m, tools, opts)

	v := verify.NewVerifier(m, policy, verify.Soft, func(o *verify.Options) {
		o.Logger = opts.Logger
		o.GenOptions = b.genOpts
	})

	return &SoftVerifyAgent{
		base:         b,
		verifier:     v,
		systemPrompt: v.ExecutorPrompt(policy),
	}
}

// Respond implements the Agent interface.
func (a *SoftVerifyAgent) Respond(ctx context.Context, conv *core.Conversation, incoming core.Message) (*core.AssistantMessage, error) {
	if len(conv.SystemMessages) == 0 {
		conv.SetSystemMessages(&core.SystemMessage{Content: a.systemPrompt})
	}

	conv.Transcript.Append(incoming)

	initial, err := a.execute(ctx, conv)
	if err != nil {
		return nil, err
	}

	outcome, err := a.verifier.RunSoft(ctx, initial, conv.Transcript, func(ctx context.Context, feedback string) (*core.AssistantMessage, error) {
		return a.executeWithFeedback(ctx, conv, feedback)
	})
	if err != nil {
		return nil, err
	}

	return a.finalize(conv, outcome.Message, outcome.Expense, verifierMeta(outcome)), nil
}

// verifierMeta renders a verification outcome into the bookkeeping fields
// both verify drivers attach to their returned message.
func verifierMeta(outcome *verify.Outcome) map[string]any {
	return map[string]any{
		"verifier_verdict":     string(outcome.Result.Verdict),
		"verifier_explanation": outcome.Result.Explanation,
		"verifier_attempts":    outcome.Attempts,
		"verifier_cost":        outcome.Expense.Cost,
		"verifier_usage":       outcome.Expense.Usage.Clone(),
	}
}
