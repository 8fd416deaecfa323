package agent

import (
	"context"
	"fmt"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/tool"
)

// llmSystemPrompt is the baseline executor preamble: instructions plus the
// raw domain policy, no auxiliary roles.
const llmSystemPrompt = `<instructions>
You are a customer service agent that helps the user according to the <policy> provided below.
In each turn you can either:
- Send a message to the user.
- Make a tool call.
You cannot do both at the same time.

Try to be helpful and always follow the policy. Always make sure you generate valid JSON only.
</instructions>
<policy>
%s
</policy>`

// LLMAgent is the single-role baseline strategy: one policy-bearing executor
// with full tool access and no planner, verifier or router. Every other
// strategy is measured against it.
type LLMAgent struct {
	base
	systemPrompt string
}

// NewLLMAgent creates the baseline driver for the given domain policy and
// tool catalog.
func NewLLMAgent(m model.Model, policy string, tools []tool.Spec, optFns ...func(o *Options)) *LLMAgent {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &LLMAgent{
		base:         newBase("llm_agent", m, tools, opts),
		systemPrompt: fmt.Sprintf(llmSystemPrompt, policy),
	}
}

// Respond implements the Agent interface: append the incoming event, invoke
// the executor once, finalize.
func (a *LLMAgent) Respond(ctx context.Context, conv *core.Conversation, incoming core.Message) (*core.AssistantMessage, error) {
	if len(conv.SystemMessages) == 0 {
		conv.SetSystemMessages(&core.SystemMessage{Content: a.systemPrompt})
	}

	conv.Transcript.Append(incoming)

	msg, err := a.execute(ctx, conv)
	if err != nil {
		return nil, err
	}

	return a.finalize(conv, msg, nil, nil), nil
}
