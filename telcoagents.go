// Package telcoagents provides a high-level façade over the coordination
// drivers and the benchmark runner, enabling rapid construction of telecom
// troubleshooting agents. Most applications interact with this package by:
//  1. Building a model client (model.NewAnthropicModel, model.NewOpenAIModel,
//     or model.NewMockModel for tests)
//  2. Constructing a driver via NewAgent() with a strategy name, the domain
//     policy and the tool schemas the harness executes
//  3. Driving conversations directly through agent.Agent, or batching them
//     through runner.New
//
// All defaults are safe for local development and testing; benchmark runs
// typically supply a filesystem artifact store and a structured logger.
package telcoagents

import (
	"fmt"
	"strings"

	"github.com/hupe1980/telcoagents/agent"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/tool"
)

// Strategy names accepted by NewAgent. Each builds the coordination driver
// that stamps the same value into its replies' generated_by metadata.
const (
	// StrategyLLMAgent is the single agent baseline without coordination.
	StrategyLLMAgent = "llm_agent"

	// StrategyStaticPlan plans once on the first customer message.
	StrategyStaticPlan = "static_plan"

	// StrategyAdaptivePlan replans on tool errors and on a step interval.
	StrategyAdaptivePlan = "adaptive_plan"

	// StrategySoftVerify reviews replies and allows one advisory revision.
	StrategySoftVerify = "soft_verify"

	// StrategyHardVerify blocks unapproved replies and escalates when
	// attempts run out.
	StrategyHardVerify = "hard_verify"

	// StrategyTwoTier routes every customer message across two specialist
	// lanes.
	StrategyTwoTier = "two_tier"

	// StrategyThreeTier routes every customer message across three
	// specialist lanes.
	StrategyThreeTier = "three_tier"

	// StrategyRouteOnce routes on the first customer message and keeps the
	// chosen lane for the rest of the conversation.
	StrategyRouteOnce = "route_once"
)

// Strategies returns all registered strategy names in presentation order.
func Strategies() []string {
	return []string{
		StrategyLLMAgent,
		StrategyStaticPlan,
		StrategyAdaptivePlan,
		StrategySoftVerify,
		StrategyHardVerify,
		StrategyTwoTier,
		StrategyThreeTier,
		StrategyRouteOnce,
	}
}

// ConfigurationError reports an invalid driver construction request.
type ConfigurationError struct {
	// Field names the argument at fault.
	Field string
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Message)
}

// NewAgent builds the coordination driver registered under the given
// strategy name. The policy is the domain policy single lane drivers embed
// into their system preamble; the routing strategies assemble lane specific
// preambles internally and ignore it. Tools are schemas only, execution
// stays with the caller's harness.
func NewAgent(strategy string, m model.Model, policy string, tools []tool.Spec, optFns ...func(o *agent.Options)) (agent.Agent, error) {
	if m == nil {
		return nil, &ConfigurationError{Field: "model", Message: "a model is required"}
	}

	switch strategy {
	case StrategyLLMAgent:
		return agent.NewLLMAgent(m, policy, tools, optFns...), nil
	case StrategyStaticPlan:
		return agent.NewStaticPlanAgent(m, policy, tools, optFns...), nil
	case StrategyAdaptivePlan:
		return agent.NewAdaptivePlanAgent(m, policy, tools, optFns...), nil
	case StrategySoftVerify:
		return agent.NewSoftVerifyAgent(m, policy, tools, optFns...), nil
	case StrategyHardVerify:
		return agent.NewHardVerifyAgent(m, policy, tools, optFns...), nil
	case StrategyTwoTier:
		return agent.NewTwoTierAgent(m, tools, optFns...), nil
	case StrategyThreeTier:
		return agent.NewThreeTierAgent(m, tools, optFns...), nil
	case StrategyRouteOnce:
		return agent.NewRouteOnceAgent(m, tools, optFns...), nil
	default:
		return nil, &ConfigurationError{
			Field:   "strategy",
			Message: fmt.Sprintf("unknown strategy %q, expected one of: %s", strategy, strings.Join(Strategies(), ", ")),
		}
	}
}
