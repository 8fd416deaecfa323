package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/tool"
)

const (
	// maxHardAttempts bounds hard mode at one initial proposal plus four
	// retries; the fifth unapproved proposal escalates.
	maxHardAttempts = 5
	// maxSoftAttempts bounds soft mode at one initial proposal plus one
	// advisory revision.
	maxSoftAttempts = 2

	// summaryWindow is how many trailing messages the verifier sees.
	summaryWindow = 10

	// hardTransferFallbackID marks the synthetic escalation tool call.
	hardTransferFallbackID = "mav_hard_transfer_fallback"
)

// Mode selects how binding verifier feedback is for the executor.
type Mode int

const (
	// Soft treats feedback as advisory: at most one revision, then the
	// action proceeds without a second verdict.
	Soft Mode = iota
	// Hard blocks the action until approved or the attempt cap is reached.
	Hard
)

func (m Mode) String() string {
	if m == Hard {
		return "hard"
	}

	return "soft"
}

// ProposeFunc re-invokes the executor with verifier feedback appended as an
// ephemeral user message. The feedback is never committed to the transcript,
// so each revision sees the original context plus only the latest feedback.
type ProposeFunc func(ctx context.Context, feedback string) (*core.AssistantMessage, error)

// Outcome is the final product of a verification loop.
type Outcome struct {
	// Message is the action to return: the approved proposal, the last
	// advisory revision, or the synthetic escalation.
	Message *core.AssistantMessage
	// Result is the verdict the loop ended on. In soft mode this is the
	// single verdict issued; the revision is never re-judged.
	Result Result
	// Attempts counts executor proposals made during the loop.
	Attempts int
	// Expense totals verifier spend plus the spend of every rejected
	// proposal. The accepted proposal's own cost is NOT included here;
	// it stays on the message.
	Expense *core.Expense
	// Escalated is true when hard mode substituted the transfer action.
	Escalated bool
}

// Options configure a Verifier.
type Options struct {
	// Logger receives verdict and retry events.
	Logger logging.Logger
	// GenOptions are passed through to every verifier invocation. The
	// pointer is shared with the owning driver so later seed changes apply
	// here too.
	GenOptions *model.GenOptions
}

// Verifier evaluates executor proposals against the domain policy. It is
// invoked without tools and can only judge, never act.
type Verifier struct {
	model        model.Model
	mode         Mode
	systemPrompt string
	genOpts      *model.GenOptions
	logger       logging.Logger
}

// NewVerifier creates a Verifier for the given policy and mode.
func NewVerifier(m model.Model, policy string, mode Mode, optFns ...func(o *Options)) *Verifier {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	systemPrompt := verifierSystemPromptSoft
	if mode == Hard {
		systemPrompt = verifierSystemPromptHard
	}

	return &Verifier{
		model:        m,
		mode:         mode,
		systemPrompt: fmt.Sprintf(systemPrompt, policy),
		genOpts:      opts.GenOptions,
		logger:       opts.Logger,
	}
}

// ExecutorPrompt renders the executor system prompt announcing this
// verifier's review mode.
func (v *Verifier) ExecutorPrompt(policy string) string {
	if v.mode == Hard {
		return fmt.Sprintf(executorSystemPromptHard, policy)
	}

	return fmt.Sprintf(executorSystemPromptSoft, policy)
}

// Evaluate asks the verifier to judge one proposed action against the recent
// conversation. An invocation failure yields an automatic approval carrying
// the error as its explanation.
func (v *Verifier) Evaluate(ctx context.Context, proposed *core.AssistantMessage, transcript *core.Transcript) (Result, *core.Expense, error) {
	expense := &core.Expense{}

	summary := transcript.Summary(summaryWindow)

	var userPrompt string
	if proposed.IsToolCall() {
		userPrompt = fmt.Sprintf(verifierToolCallPrompt, formatToolCalls(proposed.ToolCalls), summary)
	} else {
		userPrompt = fmt.Sprintf(verifierTextMessagePrompt, proposed.Content, summary)
	}

	req := &model.Request{
		Messages: []core.Message{
			&core.SystemMessage{Content: v.systemPrompt},
			&core.UserMessage{Content: userPrompt},
		},
		Options: v.genOpts,
	}

	resp, err := v.model.Generate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, expense, err
		}

		v.logger.Error("verifier.call.failed", "error", err)

		return Result{
			Verdict:     VerdictApprove,
			Explanation: fmt.Sprintf("Verifier error: %v", err),
		}, expense, nil
	}

	expense.Record(resp.Cost, resp.Usage)

	result, ok := ParseVerdict(resp.Content)
	if !ok {
		v.logger.Warn("verifier.verdict.unparsed", "response", resp.Content)
	}

	v.logger.Debug("verifier.verdict", "verdict", result.Verdict, "explanation", result.Explanation)

	return result, expense, nil
}

// RunSoft performs one verification pass over the initial proposal. A
// non-approving verdict triggers exactly one revision, which then proceeds
// unconditionally; no second verdict is requested.
func (v *Verifier) RunSoft(ctx context.Context, initial *core.AssistantMessage, transcript *core.Transcript, propose ProposeFunc) (*Outcome, error) {
	expense := &core.Expense{}

	result, evalExpense, err := v.Evaluate(ctx, initial, transcript)
	if err != nil {
		return nil, err
	}

	expense.Add(evalExpense)

	proposed := initial
	attempts := 1

	if !result.Approved() {
		v.logger.Debug("verifier.revision.requested",
			"verdict", result.Verdict,
			"attempt", attempts,
			"max_attempts", maxSoftAttempts,
		)

		expense.RecordMessage(proposed)

		feedback := fmt.Sprintf(softRetryPrompt, attempts, maxSoftAttempts, result.Verdict, result.Explanation)

		proposed, err = propose(ctx, feedback)
		if err != nil {
			return nil, err
		}

		attempts = maxSoftAttempts
	}

	return &Outcome{
		Message:  proposed,
		Result:   result,
		Attempts: attempts,
		Expense:  expense,
	}, nil
}

// RunHard drives the blocking verification loop: propose, verify, retry with
// feedback, up to the attempt cap. If the final attempt is still unapproved,
// the action is replaced by a transfer escalation (the well-known transfer
// tool when present in the executor's inventory, a plain apology otherwise).
func (v *Verifier) RunHard(ctx context.Context, initial *core.AssistantMessage, transcript *core.Transcript, hasTransfer bool, propose ProposeFunc) (*Outcome, error) {
	expense := &core.Expense{}

	proposed := initial
	attempt := 1

	var result Result

	for {
		var (
			evalExpense *core.Expense
			err         error
		)

		result, evalExpense, err = v.Evaluate(ctx, proposed, transcript)
		if err != nil {
			return nil, err
		}

		expense.Add(evalExpense)

		if result.Approved() {
			v.logger.Debug("verifier.approved", "attempt", attempt, "max_attempts", maxHardAttempts)
			break
		}

		v.logger.Debug("verifier.blocked",
			"verdict", result.Verdict,
			"attempt", attempt,
			"max_attempts", maxHardAttempts,
			"explanation", result.Explanation,
		)

		if attempt >= maxHardAttempts {
			v.logger.Warn("verifier.exhausted", "attempts", maxHardAttempts)
			break
		}

		// The rejected proposal's spend is still billed to the turn.
		expense.RecordMessage(proposed)

		feedback := fmt.Sprintf(hardRetryPrompt, attempt, maxHardAttempts, result.Verdict, result.Explanation)

		proposed, err = propose(ctx, feedback)
		if err != nil {
			return nil, err
		}

		attempt++
	}

	escalated := false
	if !result.Approved() {
		expense.RecordMessage(proposed)

		if hasTransfer {
			proposed = transferMessage()
		} else {
			proposed = fallbackTextMessage()
		}

		escalated = true
	}

	return &Outcome{
		Message:   proposed,
		Result:    result,
		Attempts:  attempt,
		Expense:   expense,
		Escalated: escalated,
	}, nil
}

// formatToolCalls renders proposed tool calls for the verifier prompt.
func formatToolCalls(calls []core.ToolCall) string {
	parts := make([]string, 0, len(calls))
	for _, tc := range calls {
		args, err := json.MarshalIndent(tc.Arguments, "", "  ")
		if err != nil {
			args = []byte("{}")
		}

		parts = append(parts, fmt.Sprintf("Tool: %s\nArguments: %s", tc.Name, args))
	}

	return strings.Join(parts, "\n---\n")
}

// transferMessage builds the synthetic escalation tool call used when hard
// verification exhausts its attempts.
func transferMessage() *core.AssistantMessage {
	cost := 0.0

	return &core.AssistantMessage{
		ToolCalls: []core.ToolCall{{
			ID:   hardTransferFallbackID,
			Name: tool.TransferToHumanName,
			Arguments: map[string]interface{}{
				"reason": "Automated verification could not approve the agent's action after multiple attempts.",
			},
			Requestor: "assistant",
		}},
		Cost:  &cost,
		Usage: &core.TokenUsage{},
	}
}

// fallbackTextMessage is the escalation used when the transfer tool is not
// in the executor's inventory.
func fallbackTextMessage() *core.AssistantMessage {
	cost := 0.0

	return &core.AssistantMessage{
		Content: "I apologize for the inconvenience. I'm having difficulty processing " +
			"your request correctly. Let me transfer you to a human agent who can " +
			"assist you further.",
		Cost:  &cost,
		Usage: &core.TokenUsage{},
	}
}
