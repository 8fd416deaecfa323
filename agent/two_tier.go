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

// TwoTierAgent routes every user message between two specialists: an
// infrastructure agent for cellular service problems and an application
// agent for mobile data and MMS problems. Re-routing on every user message
// lets the specialist change when the conversation drifts to a different
// problem.
//
// The specialists carry their own embedded policy texts; no external domain
// policy is taken.
type TwoTierAgent struct {
	base
	router  *route.Router
	prompts map[route.Category]string
}

// NewTwoTierAgent creates the two-specialist routing driver for the given
// tool catalog.
func NewTwoTierAgent(m model.Model, tools []tool.Spec, optFns ...func(o *Options)) *TwoTierAgent {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	b := newBase("two_tier", m, tools, opts)

	return &TwoTierAgent{
		base: b,
		router: route.NewRouter(m, route.SchemeTwoCategory, func(o *route.Options) {
			o.Logger = opts.Logger
			o.GenOptions = b.genOpts
		}),
		prompts: map[route.Category]string{
			route.CategoryInfrastructure: instructions.SpecialistSystemPrompt(
				instructions.InfrastructureAgentIdentity,
				instructions.ServiceTroubleshootingGuide,
			),
			// The application specialist covers both data and MMS, so it
			// carries both troubleshooting guides.
			route.CategoryApplication: instructions.SpecialistSystemPrompt(
				instructions.ApplicationAgentIdentity,
				instructions.MobileDataTroubleshootingGuide+"\n\n"+instructions.MMSTroubleshootingGuide,
			),
		},
	}
}

// Respond implements the Agent interface: classify on every user message,
// swap in the selected specialist's preamble, invoke the executor, finalize.
func (a *TwoTierAgent) Respond(ctx context.Context, conv *core.Conversation, incoming core.Message) (*core.AssistantMessage, error) {
	conv.Transcript.Append(incoming)

	expense := &core.Expense{}

	if isUserMessage(incoming) {
		category, routeExpense, err := a.router.Classify(ctx, conv.Transcript)
		if err != nil {
			return nil, err
		}

		expense.Add(routeExpense)
		a.applyRoute(conv, category)
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

// applyRoute installs the selected specialist and records the routing
// decision on the conversation.
func (a *TwoTierAgent) applyRoute(conv *core.Conversation, category route.Category) {
	if conv.CurrentAgent != "" && conv.CurrentAgent != string(category) {
		a.logger.Debug("router.rerouted", "from", conv.CurrentAgent, "to", string(category))
	} else {
		a.logger.Debug("router.routed", "to", string(category))
	}

	prompt, ok := a.prompts[category]
	if !ok {
		prompt = a.prompts[route.CategoryInfrastructure]
	}

	conv.CurrentAgent = string(category)
	conv.Routed = true
	conv.SetSystemMessages(&core.SystemMessage{Content: prompt})
}
