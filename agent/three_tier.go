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

// ThreeTierAgent routes every user message between three specialists, one
// per problem area: cellular service, mobile data, and MMS. Compared to the
// two-tier driver the application side is split, so each specialist carries
// exactly one troubleshooting guide.
type ThreeTierAgent struct {
	base
	router  *route.Router
	prompts map[route.Category]string
}

// NewThreeTierAgent creates the three-specialist routing driver for the
// given tool catalog.
func NewThreeTierAgent(m model.Model, tools []tool.Spec, optFns ...func(o *Options)) *ThreeTierAgent {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	b := newBase("three_tier", m, tools, opts)

	return &ThreeTierAgent{
		base: b,
		router: route.NewRouter(m, route.SchemeThreeCategory, func(o *route.Options) {
			o.Logger = opts.Logger
			o.GenOptions = b.genOpts
		}),
		prompts: map[route.Category]string{
			route.CategoryService: instructions.SpecialistSystemPrompt(
				instructions.ServiceAgentIdentity,
				instructions.ServiceTroubleshootingGuide,
			),
			route.CategoryMobileData: instructions.SpecialistSystemPrompt(
				instructions.MobileDataAgentIdentity,
				instructions.MobileDataTroubleshootingGuide,
			),
			route.CategoryMMS: instructions.SpecialistSystemPrompt(
				instructions.MMSAgentIdentity,
				instructions.MMSTroubleshootingGuide,
			),
		},
	}
}

// Respond implements the Agent interface: classify on every user message,
// swap in the selected specialist's preamble, invoke the executor, finalize.
func (a *ThreeTierAgent) Respond(ctx context.Context, conv *core.Conversation, incoming core.Message) (*core.AssistantMessage, error) {
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

func (a *ThreeTierAgent) applyRoute(conv *core.Conversation, category route.Category) {
	if conv.CurrentAgent != "" && conv.CurrentAgent != string(category) {
		a.logger.Debug("router.rerouted", "from", conv.CurrentAgent, "to", string(category))
	} else {
		a.logger.Debug("router.routed", "to", string(category))
	}

	prompt, ok := a.prompts[category]
	if !ok {
		prompt = a.prompts[route.CategoryService]
	}

	conv.CurrentAgent = string(category)
	conv.Routed = true
	conv.SetSystemMessages(&core.SystemMessage{Content: prompt})
}
