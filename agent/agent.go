package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/tool"
)

// ErrNoModel is returned by SetSeed when the driver was constructed without
// a model. It signals configuration misuse, not a runtime condition.
var ErrNoModel = errors.New("no model configured")

// safetyNetText replaces an executor response that carried neither content
// nor tool calls. Cost and usage of the discarded response are preserved.
const safetyNetText = "I apologize, could you please repeat your question or provide more details so I can assist you?"

// Agent is the interface all coordination drivers implement. One driver
// instance serves one conversation; Respond is invoked once per incoming
// conversational event and returns the single assistant action for that turn.
type Agent interface {
	// Respond folds the incoming event into the conversation, runs the
	// strategy's coordination protocol and returns the finalized assistant
	// message. The message is already committed to the transcript.
	Respond(ctx context.Context, conv *core.Conversation, incoming core.Message) (*core.AssistantMessage, error)

	// Name returns the strategy identifier, also recorded as the
	// generated_by metadata value on every returned message.
	Name() string

	// SetSeed injects a deterministic sampling seed into every model
	// invocation this driver issues, auxiliary roles included. It fails
	// with ErrNoModel when no model is configured and warns when a
	// previously set seed is overwritten.
	SetSeed(seed int) error
}

// Options configure a coordination driver.
type Options struct {
	// Logger receives driver lifecycle events. Defaults to NoOpLogger.
	Logger logging.Logger
	// Temperature is applied to every model invocation the driver issues.
	Temperature *float64
	// Seed pre-sets the sampling seed; SetSeed can overwrite it later.
	Seed *int
	// MaxTokens caps completion length on every invocation.
	MaxTokens *int
}

// base bundles the turn plumbing every driver shares: the executor
// invocation, the empty-response safety net, metadata bookkeeping, spend
// merging and the transcript commit. Concrete drivers embed it and supply
// Respond.
//
// genOpts is a single shared pointer handed to all of the driver's
// controllers, so a later SetSeed is visible to planner, verifier and
// router invocations alike.
type base struct {
	name    string
	model   model.Model
	tools   []tool.Spec
	genOpts *model.GenOptions
	logger  logging.Logger
}

func newBase(name string, m model.Model, tools []tool.Spec, opts Options) base {
	return base{
		name:  name,
		model: m,
		tools: tools,
		genOpts: &model.GenOptions{
			Temperature: opts.Temperature,
			Seed:        opts.Seed,
			MaxTokens:   opts.MaxTokens,
		},
		logger: opts.Logger,
	}
}

// Name returns the strategy identifier.
func (b *base) Name() string { return b.name }

// SetSeed implements the Agent interface.
func (b *base) SetSeed(seed int) error {
	if b.model == nil {
		return ErrNoModel
	}

	if b.genOpts.Seed != nil {
		b.logger.Warn("seed.overwrite", "previous", *b.genOpts.Seed, "seed", seed)
	}

	b.genOpts.Seed = &seed

	return nil
}

// execute performs one executor invocation over the conversation's effective
// context. Unlike the auxiliary roles, an executor failure is not degradable
// and propagates to the caller.
func (b *base) execute(ctx context.Context, conv *core.Conversation) (*core.AssistantMessage, error) {
	return b.executeWithFeedback(ctx, conv, "")
}

// executeWithFeedback re-invokes the executor with verifier feedback
// appended as an ephemeral user message. The feedback never enters the
// transcript; each retry sees the committed context plus only the latest
// feedback.
func (b *base) executeWithFeedback(ctx context.Context, conv *core.Conversation, feedback string) (*core.AssistantMessage, error) {
	msgs := conv.ContextMessages()
	if feedback != "" {
		msgs = append(msgs, &core.UserMessage{Content: feedback})
	}

	resp, err := b.model.Generate(ctx, &model.Request{
		Messages: msgs,
		Tools:    b.tools,
		Options:  b.genOpts,
	})
	if err != nil {
		return nil, fmt.Errorf("%s executor: %w", b.name, err)
	}

	return resp.AssistantMessage(), nil
}

// finalize applies the shared post-processing every driver runs on its turn
// result: the empty-response safety net, generated_by plus driver metadata
// (existing executor-set keys are never overwritten), auxiliary spend
// merging, and the transcript commit. It returns the message that was
// committed, which may be the safety-net substitute.
func (b *base) finalize(conv *core.Conversation, msg *core.AssistantMessage, expense *core.Expense, meta map[string]any) *core.AssistantMessage {
	if strings.TrimSpace(msg.Content) == "" && len(msg.ToolCalls) == 0 {
		b.logger.Warn("executor.response.empty", "driver", b.name)

		msg = &core.AssistantMessage{
			Content:  safetyNetText,
			Cost:     msg.Cost,
			Usage:    msg.Usage,
			Metadata: map[string]any{},
		}
	}

	if msg.Metadata == nil {
		msg.Metadata = make(map[string]any)
	}

	setIfAbsent(msg.Metadata, "generated_by", b.name)

	for k, v := range meta {
		setIfAbsent(msg.Metadata, k, v)
	}

	if expense != nil {
		expense.ApplyTo(msg)
	}

	conv.Transcript.Append(msg)

	return msg
}

func setIfAbsent(m map[string]any, key string, value any) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

// isUserMessage reports whether the incoming event is a customer utterance.
// Routing and initial planning key off user messages only, never tool
// results.
func isUserMessage(msg core.Message) bool {
	_, ok := msg.(*core.UserMessage)
	return ok
}

// hasToolError reports whether the incoming event carries a failed tool
// result. Checked before the event is folded into the transcript.
func hasToolError(msg core.Message) bool {
	switch m := msg.(type) {
	case *core.ToolMessage:
		return m.Error
	case *core.MultiToolMessage:
		return m.HasError()
	}

	return false
}

// messageContent extracts the text of a user utterance, empty for other
// event shapes.
func messageContent(msg core.Message) string {
	if um, ok := msg.(*core.UserMessage); ok {
		return um.Content
	}

	return ""
}

// routedAgent names the specialist currently serving the conversation,
// "unrouted" when no routing decision has happened yet. Recorded as the
// generated_by_agent metadata value by the routing drivers.
func routedAgent(conv *core.Conversation) string {
	if conv.CurrentAgent == "" {
		return "unrouted"
	}

	return conv.CurrentAgent
}
