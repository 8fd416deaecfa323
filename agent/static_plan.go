package agent

import (
	"context"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/plan"
	"github.com/hupe1980/telcoagents/tool"
)

// StaticPlanAgent coordinates a tool-less Planner with a tool-bearing
// Executor. The plan is generated once, on the first user message, and is
// never revised afterwards; the executor follows it for the rest of the
// conversation.
type StaticPlanAgent struct {
	base
	planner *plan.Manager
}

// NewStaticPlanAgent creates the static planner+executor driver for the
// given domain policy and tool catalog.
func NewStaticPlanAgent(m model.Model, policy string, tools []tool.Spec, optFns ...func(o *Options)) *StaticPlanAgent {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	b := newBase("static_plan", m, tools, opts)

	return &StaticPlanAgent{
		base: b,
		planner: plan.NewManager(m, policy, plan.Static, tools, func(o *plan.Options) {
			o.Logger = opts.Logger
			o.GenOptions = b.genOpts
		}),
	}
}

// Respond implements the Agent interface.
//
// Flow: fold in the incoming event; on the first user message generate the
// plan (planner failure latches an empty plan, the executor proceeds with
// the no-plan preamble); invoke the executor; finalize with planner spend
// merged in.
func (a *StaticPlanAgent) Respond(ctx context.Context, conv *core.Conversation, incoming core.Message) (*core.AssistantMessage, error) {
	if len(conv.SystemMessages) == 0 {
		conv.SetSystemMessages(&core.SystemMessage{Content: a.planner.ExecutorPrompt(conv.Plan)})
	}

	conv.Transcript.Append(incoming)

	expense := &core.Expense{}

	if isUserMessage(incoming) && !conv.PlanGenerated {
		planExpense, err := a.planner.GenerateInitial(ctx, conv, messageContent(incoming))
		if err != nil {
			return nil, err
		}

		expense.Add(planExpense)
	}

	msg, err := a.execute(ctx, conv)
	if err != nil {
		return nil, err
	}

	meta := map[string]any{
		"has_plan": conv.PlanGenerated,
	}

	if !expense.IsZero() {
		meta["planner_cost"] = expense.Cost
		meta["planner_usage"] = expense.Usage.Clone()
	}

	return a.finalize(conv, msg, expense, meta), nil
}
