package agent

import (
	"context"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/tool"
	"github.com/hupe1980/telcoagents/verify"
)

// HardVerifyAgent pairs the Executor with a blocking Verifier. No action
// reaches the user or the environment until the verifier approves it; a
// blocked action is revised with the verifier's feedback, up to five
// attempts per turn. Exhausting the attempts substitutes a transfer
// escalation instead of releasing an unapproved action.
type HardVerifyAgent struct {
	base
	verifier     *verify.Verifier
	hasTransfer  bool
	systemPrompt string
}

// NewHardVerifyAgent creates the blocking executor+verifier driver for the
// given domain policy and tool catalog. When the tool catalog lacks the
// transfer tool, exhaustion falls back to an apologetic text message.
func NewHardVerifyAgent(m model.Model, policy string, tools []tool.Spec, optFns ...func(o *Options)) *HardVerifyAgent {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	b := newBase("hard_verify", m, tools, opts)

	v := verify.NewVerifier(m, policy, verify.Hard, func(o *verify.Options) {
		o.Logger = opts.Logger
		o.GenOptions = b.genOpts
	})

	hasTransfer := tool.HasTransfer(tools)
	if !hasTransfer {
		opts.Logger.Warn("verifier.transfer.unavailable",
			"tool", tool.TransferToHumanName,
			"fallback", "text message",
		)
	}

	return &HardVerifyAgent{
		base:         b,
		verifier:     v,
		hasTransfer:  hasTransfer,
		systemPrompt: v.ExecutorPrompt(policy),
	}
}

// Respond implements the Agent interface.
func (a *HardVerifyAgent) Respond(ctx context.Context, conv *core.Conversation, incoming core.Message) (*core.AssistantMessage, error) {
	if len(conv.SystemMessages) == 0 {
		conv.SetSystemMessages(&core.SystemMessage{Content: a.systemPrompt})
	}

	conv.Transcript.Append(incoming)

	initial, err := a.execute(ctx, conv)
	if err != nil {
		return nil, err
	}

	outcome, err := a.verifier.RunHard(ctx, initial, conv.Transcript, a.hasTransfer, func(ctx context.Context, feedback string) (*core.AssistantMessage, error) {
		return a.executeWithFeedback(ctx, conv, feedback)
	})
	if err != nil {
		return nil, err
	}

	return a.finalize(conv, outcome.Message, outcome.Expense, verifierMeta(outcome)), nil
}
