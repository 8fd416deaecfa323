package agent

import (
	"context"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/plan"
	"github.com/hupe1980/telcoagents/tool"
)

// AdaptivePlanAgent coordinates a tool-less Planner with a tool-bearing
// Executor, revising the plan as execution progresses. A revision is
// triggered by a tool error in the incoming event, or by the executor having
// taken plan.ReplanInterval turns since the last accepted plan.
type AdaptivePlanAgent struct {
	base
	planner *plan.Manager
}

// NewAdaptivePlanAgent creates the adaptive planner+executor driver for the
// given domain policy and tool catalog.
func NewAdaptivePlanAgent(m model.Model, policy string, tools []tool.Spec, optFns ...func(o *Options)) *AdaptivePlanAgent {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	b := newBase("adaptive_plan", m, tools, opts)

	return &AdaptivePlanAgent{
		base: b,
		planner: plan.NewManager(m, policy, plan.Adaptive, tools, func(o *plan.Options) {
			o.Logger = opts.Logger
			o.GenOptions = b.genOpts
		}),
	}
}

// Respond implements the Agent interface.
//
// Flow: detect tool errors before folding the event in; generate the initial
// plan on the first user message, or revise it when a replan trigger fires;
// invoke the executor; bump the staleness counter; finalize with planner
// spend merged in. A failed revision keeps the previous plan and counter, so
// the trigger fires again next turn.
func (a *AdaptivePlanAgent) Respond(ctx context.Context, conv *core.Conversation, incoming core.Message) (*core.AssistantMessage, error) {
	if len(conv.SystemMessages) == 0 {
		conv.SetSystemMessages(&core.SystemMessage{Content: a.planner.ExecutorPrompt(conv.Plan)})
	}

	incomingError := hasToolError(incoming)

	conv.Transcript.Append(incoming)

	expense := &core.Expense{}
	replanned := false

	var replanReason string

	switch {
	case isUserMessage(incoming) && !conv.PlanGenerated:
		planExpense, err := a.planner.GenerateInitial(ctx, conv, messageContent(incoming))
		if err != nil {
			return nil, err
		}

		expense.Add(planExpense)
	case conv.PlanGenerated:
		switch {
		case incomingError:
			replanned = true
			replanReason = plan.ReplanReasonToolError
		case conv.StepsSinceReplan >= plan.ReplanInterval:
			replanned = true
			replanReason = plan.ReplanReasonInterval(conv.StepsSinceReplan)
		}

		if replanned {
			planExpense, err := a.planner.Replan(ctx, conv, replanReason)
			if err != nil {
				return nil, err
			}

			expense.Add(planExpense)
		}
	}

	msg, err := a.execute(ctx, conv)
	if err != nil {
		return nil, err
	}

	conv.StepsSinceReplan++

	meta := map[string]any{
		"has_plan":           conv.PlanGenerated,
		"steps_since_replan": conv.StepsSinceReplan,
	}

	if replanned {
		meta["replanned"] = true
		meta["replan_reason"] = replanReason
	}

	if !expense.IsZero() {
		meta["planner_cost"] = expense.Cost
		meta["planner_usage"] = expense.Usage.Clone()
	}

	return a.finalize(conv, msg, expense, meta), nil
}
