package agent

import (
	"context"

	"github.com/hupe1980/telcoagents/agent/instructions"
	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/route"
	"github.com/hupe1980/telcoagents/tool"
)

// RouteOnceAgent classifies the first user message and hands the whole
// conversation to the selected specialist. The decision latches: later
// messages never change the specialist, even when the topic drifts.
//
// Each specialist is a full technical-support agent scoped to one policy
// slice, so unlike the re-routing drivers the route here decides which
// policy the customer talks to for the rest of the session.
type RouteOnceAgent struct {
	base
	router  *route.Router
	prompts map[route.Category]string
}

// NewRouteOnceAgent creates the route-once driver for the given tool
// catalog.
func NewRouteOnceAgent(m model.Model, tools []tool.Spec, optFns ...func(o *Options)) *RouteOnceAgent {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	b := newBase("route_once", m, tools, opts)

	return &RouteOnceAgent{
		base: b,
		router: route.NewRouter(m, route.SchemeFirstMessage, func(o *route.Options) {
			o.Logger = opts.Logger
			o.GenOptions = b.genOpts
		}),
		prompts: map[route.Category]string{
			route.CategoryService: instructions.TechnicalSupportSystemPrompt(
				instructions.ServiceIssuePolicy,
			),
			route.CategoryMobileData: instructions.TechnicalSupportSystemPrompt(
				instructions.MobileDataIssuePolicy,
			),
			route.CategoryMMS: instructions.TechnicalSupportSystemPrompt(
				instructions.MMSIssuePolicy,
			),
		},
	}
}

// Respond implements the Agent interface. The first user message selects
// the specialist; every turn after that reuses it.
func (a *RouteOnceAgent) Respond(ctx context.Context, conv *core.Conversation, incoming core.Message) (*core.AssistantMessage, error) {
	conv.Transcript.Append(incoming)

	expense := &core.Expense{}

	if !conv.Routed && isUserMessage(incoming) {
		category, routeExpense, err := a.router.ClassifyFirst(ctx, messageContent(incoming))
		if err != nil {
			return nil, err
		}

		expense.Add(routeExpense)

		a.logger.Info("router.routed", "to", string(category))

		prompt, ok := a.prompts[category]
		if !ok {
			prompt = a.prompts[route.CategoryService]
		}

		conv.CurrentAgent = string(category)
		conv.Routed = true
		conv.SetSystemMessages(&core.SystemMessage{Content: prompt})
	}

	msg, err := a.execute(ctx, conv)
	if err != nil {
		return nil, err
	}

	meta := map[string]any{
		"generated_by_agent": routedAgent(conv),
	}

	if !expense.IsZero() {
		meta["router_cost"] = expense.Cost
		meta["router_usage"] = expense.Usage.Clone()
	}

	return a.finalize(conv, msg, expense, meta), nil
}
