package plan

import (
	"context"
	"fmt"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/tool"
)

// ReplanInterval is the number of executor turns after which the adaptive
// strategy revises the plan even without a tool error.
const ReplanInterval = 3

// Mode selects the plan lifecycle: generated once, or revised as execution
// progresses.
type Mode int

const (
	// Static generates the plan once on the first user message and never
	// revises it.
	Static Mode = iota
	// Adaptive additionally revises the plan on tool errors and every
	// ReplanInterval executor turns.
	Adaptive
)

func (m Mode) String() string {
	if m == Adaptive {
		return "adaptive"
	}

	return "static"
}

// Options configure a plan Manager.
type Options struct {
	// Logger receives planner lifecycle events.
	Logger logging.Logger
	// GenOptions are passed through to every planner invocation. The pointer
	// is shared with the owning driver so later seed changes apply here too.
	GenOptions *model.GenOptions
}

// Manager owns plan generation and revision for one conversation at a time.
// The planner model is invoked without tools; the tool catalog only appears
// rendered inside its system prompt.
type Manager struct {
	model        model.Model
	mode         Mode
	policy       string
	systemPrompt string
	genOpts      *model.GenOptions
	logger       logging.Logger
}

// NewManager creates a plan Manager for the given domain policy, lifecycle
// mode and tool catalog. The planner system prompt is built once at
// construction.
func NewManager(m model.Model, policy string, mode Mode, specs []tool.Spec, optFns ...func(o *Options)) *Manager {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Manager{
		model:        m,
		mode:         mode,
		policy:       policy,
		systemPrompt: fmt.Sprintf(plannerSystemPrompt, tool.Describe(specs), policy),
		genOpts:      opts.GenOptions,
		logger:       opts.Logger,
	}
}

// ExecutorPrompt renders the executor system prompt, embedding the plan when
// one exists.
func (m *Manager) ExecutorPrompt(planText string) string {
	if planText == "" {
		return fmt.Sprintf(executorSystemPromptNoPlan, m.policy)
	}

	if m.mode == Adaptive {
		return fmt.Sprintf(executorSystemPromptAdaptive, m.policy, planText)
	}

	return fmt.Sprintf(executorSystemPromptStatic, m.policy, planText)
}

// GenerateInitial runs the planner once on the opening user message and
// installs the result on the conversation. A generation failure installs an
// empty plan and still latches PlanGenerated; the executor proceeds without
// a plan rather than retrying the planner.
func (m *Manager) GenerateInitial(ctx context.Context, conv *core.Conversation, userContent string) (*core.Expense, error) {
	expense := &core.Expense{}

	resp, err := m.invoke(ctx, fmt.Sprintf(plannerInitialPrompt, userContent))
	if err != nil {
		if ctx.Err() != nil {
			return expense, err
		}

		m.logger.Error("planner.initial.failed", "error", err)
		m.install(conv, "")

		return expense, nil
	}

	expense.Record(resp.Cost, resp.Usage)

	m.logger.Debug("planner.initial.generated", "plan", resp.Content)
	m.install(conv, resp.Content)

	return expense, nil
}

// Replan revises the plan against the full execution summary. On success the
// new plan replaces the old one and the staleness counter resets; on
// generation failure the previous plan and counter are kept unchanged.
func (m *Manager) Replan(ctx context.Context, conv *core.Conversation, reason string) (*core.Expense, error) {
	expense := &core.Expense{}

	previousPlan := conv.Plan
	if previousPlan == "" {
		previousPlan = "(no previous plan)"
	}

	userContent := fmt.Sprintf(plannerReplanPrompt, conv.Transcript.Summary(0), previousPlan, reason)

	resp, err := m.invoke(ctx, userContent)
	if err != nil {
		if ctx.Err() != nil {
			return expense, err
		}

		m.logger.Error("planner.replan.failed", "error", err)

		return expense, nil
	}

	expense.Record(resp.Cost, resp.Usage)

	m.logger.Debug("planner.replan.generated", "plan", resp.Content)
	m.install(conv, resp.Content)

	return expense, nil
}

// invoke performs a tool-less planner call.
func (m *Manager) invoke(ctx context.Context, userContent string) (*model.Response, error) {
	req := &model.Request{
		Messages: []core.Message{
			&core.SystemMessage{Content: m.systemPrompt},
			&core.UserMessage{Content: userContent},
		},
		Options: m.genOpts,
	}

	return m.model.Generate(ctx, req)
}

// install replaces the plan, resets the staleness counter and rebuilds the
// executor preamble around the new plan.
func (m *Manager) install(conv *core.Conversation, planText string) {
	conv.Plan = planText
	conv.PlanGenerated = true
	conv.StepsSinceReplan = 0
	conv.SetSystemMessages(&core.SystemMessage{Content: m.ExecutorPrompt(planText)})
}
