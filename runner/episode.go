package runner

import (
	"context"
	"time"

	"github.com/hupe1980/telcoagents/agent"
	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/session"
	"github.com/hupe1980/telcoagents/tool"
)

// Termination labels why an episode ended.
type Termination string

const (
	// TerminationCompleted means the user had nothing further to say.
	TerminationCompleted Termination = "completed"

	// TerminationTransferred means the agent escalated to a human.
	TerminationTransferred Termination = "transferred"

	// TerminationMaxTurns means the agent turn bound was reached.
	TerminationMaxTurns Termination = "max_turns"

	// TerminationMaxToolErrors means too many tool calls failed.
	TerminationMaxToolErrors Termination = "max_tool_errors"

	// TerminationError means a driver error aborted the episode.
	TerminationError Termination = "error"
)

// Result captures one finished episode.
type Result struct {
	Strategy    string          `json:"strategy"`
	Episode     int             `json:"episode"`
	SessionID   string          `json:"session_id"`
	Termination Termination     `json:"termination"`
	Turns       int             `json:"turns"`
	ToolErrors  int             `json:"tool_errors"`
	AgentCost   float64         `json:"agent_cost"`
	Usage       core.TokenUsage `json:"usage"`
	DurationMS  int64           `json:"duration_ms"`
	Err         string          `json:"error,omitempty"`
}

// episode drives one conversation between a driver, its tool environment and
// a user until a termination condition fires.
type episode struct {
	strategy      string
	index         int
	sessionID     string
	agent         agent.Agent
	env           Environment
	user          User
	maxTurns      int
	maxToolErrors int
	sessions      session.Store
	logger        logging.Logger
}

func (e *episode) run(ctx context.Context) *Result {
	start := time.Now()

	res := &Result{
		Strategy:  e.strategy,
		Episode:   e.index,
		SessionID: e.sessionID,
	}

	defer func() {
		res.DurationMS = time.Since(start).Milliseconds()

		e.logger.Info("episode.finished",
			"strategy", e.strategy,
			"episode", e.index,
			"termination", string(res.Termination),
			"turns", res.Turns,
			"cost", res.AgentCost,
		)
	}()

	conv, err := core.NewConversation()
	if err != nil {
		res.Termination = TerminationError
		res.Err = err.Error()

		return res
	}

	opening, ok, err := e.user.Next(ctx, nil)
	if err != nil {
		res.Termination = TerminationError
		res.Err = err.Error()

		return res
	}

	if !ok {
		res.Termination = TerminationCompleted

		return res
	}

	var incoming core.Message = opening

	for {
		if err := e.sessions.Append(e.sessionID, incoming); err != nil {
			res.Termination = TerminationError
			res.Err = err.Error()

			return res
		}

		reply, err := e.agent.Respond(ctx, conv, incoming)
		if err != nil {
			res.Termination = TerminationError
			res.Err = err.Error()

			return res
		}

		res.Turns++
		res.AgentCost += derefCost(reply.Cost)
		res.Usage.Add(reply.Usage)

		if err := e.sessions.Append(e.sessionID, reply); err != nil {
			res.Termination = TerminationError
			res.Err = err.Error()

			return res
		}

		if reply.IsToolCall() && hasTransferCall(reply.ToolCalls) {
			res.Termination = TerminationTransferred

			return res
		}

		if res.Turns >= e.maxTurns {
			res.Termination = TerminationMaxTurns

			return res
		}

		if reply.IsToolCall() {
			outcome := ExecuteCalls(ctx, e.env, reply.ToolCalls)
			res.ToolErrors += countToolErrors(outcome)

			if res.ToolErrors >= e.maxToolErrors {
				res.Termination = TerminationMaxToolErrors

				return res
			}

			incoming = outcome

			continue
		}

		next, ok, err := e.user.Next(ctx, reply)
		if err != nil {
			res.Termination = TerminationError
			res.Err = err.Error()

			return res
		}

		if !ok {
			res.Termination = TerminationCompleted

			return res
		}

		incoming = next
	}
}

// hasTransferCall reports whether any call in the batch is the escalation
// tool. Transfers end the episode before the call reaches the environment.
func hasTransferCall(calls []core.ToolCall) bool {
	for _, c := range calls {
		if c.Name == tool.TransferToHumanName {
			return true
		}
	}

	return false
}

// countToolErrors counts failed results in an execution outcome.
func countToolErrors(outcome core.Message) int {
	switch m := outcome.(type) {
	case *core.ToolMessage:
		if m.Error {
			return 1
		}

		return 0
	case *core.MultiToolMessage:
		n := 0

		for _, r := range m.Messages {
			if r.Error {
				n++
			}
		}

		return n
	default:
		return 0
	}
}

func derefCost(c *float64) float64 {
	if c == nil {
		return 0
	}

	return *c
}
