package runner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/telcoagents/agent"
	"github.com/hupe1980/telcoagents/artifact"
	"github.com/hupe1980/telcoagents/model"
	"github.com/hupe1980/telcoagents/session"
	"github.com/hupe1980/telcoagents/tool"
)

const testPolicy = "Always verify the customer's identity before making changes."

// scriptedSetup wires one mock-backed baseline driver per episode. The
// prepare hook scripts the episode's model before it starts.
func scriptedSetup(prepare func(strategy string, episode int, m *model.MockModel) User) Setup {
	return func(strategy string, episode int) (agent.Agent, Environment, User, error) {
		m := model.NewMockModel()
		user := prepare(strategy, episode, m)

		env := NewToolEnvironment([]tool.Tool{
			lineStatusTool(),
			failingTool("reset_network"),
			tool.NewTransferToHumanTool(),
		})

		return agent.NewLLMAgent(m, testPolicy, env.Specs()), env, user, nil
	}
}

func testConfig(strategies ...string) *Config {
	cfg := DefaultConfig()
	cfg.Domain = "telecom"
	cfg.Strategies = strategies
	cfg.MaxTurns = 10
	cfg.MaxConcurrency = 1
	cfg.SaveTo = "run-test"

	return cfg
}

// -------------------- Episode Loop Tests --------------------

func TestRunner_CompletedEpisode(t *testing.T) {
	setup := scriptedSetup(func(_ string, _ int, m *model.MockModel) User {
		m.EnqueueText("Hello! How can I help you today?", 0.01)
		m.EnqueueText("Glad I could help. Goodbye!", 0.01)

		return NewScriptedUser("hi there", "thanks, bye")
	})

	sessions := session.NewInMemoryStore()
	artifacts := artifact.NewInMemoryStore()

	r, err := New(testConfig("llm_agent"), setup, func(o *Options) {
		o.Sessions = sessions
		o.Artifacts = artifacts
	})
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, TerminationCompleted, res.Termination)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, 0, res.ToolErrors)
	assert.InDelta(t, 0.02, res.AgentCost, 1e-9)
	assert.Equal(t, 20, res.Usage.PromptTokens)
	assert.Equal(t, "run-test-llm_agent-0", res.SessionID)
	assert.Empty(t, res.Err)

	rec, err := sessions.Get("run-test-llm_agent-0")
	require.NoError(t, err)
	assert.Len(t, rec.Messages, 4)
}

func TestRunner_TransferEndsEpisode(t *testing.T) {
	setup := scriptedSetup(func(_ string, _ int, m *model.MockModel) User {
		m.EnqueueToolCall("get_line_status", map[string]any{"line_id": "l-1"}, 0.01)
		m.EnqueueToolCall(tool.TransferToHumanName, map[string]any{
			"reason": "hardware fault on the line",
		}, 0.01)

		return NewScriptedUser("my line is dead")
	})

	sessions := session.NewInMemoryStore()

	r, err := New(testConfig("llm_agent"), setup, func(o *Options) {
		o.Sessions = sessions
	})
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	res := report.Results[0]
	assert.Equal(t, TerminationTransferred, res.Termination)
	assert.Equal(t, 2, res.Turns)

	// user, tool call, tool result, transfer call
	rec, err := sessions.Get(res.SessionID)
	require.NoError(t, err)
	assert.Len(t, rec.Messages, 4)
}

func TestRunner_MaxToolErrors(t *testing.T) {
	setup := scriptedSetup(func(_ string, _ int, m *model.MockModel) User {
		m.EnqueueToolCall("reset_network", nil, 0.01)
		m.EnqueueToolCall("reset_network", nil, 0.01)

		return NewScriptedUser("nothing works")
	})

	cfg := testConfig("llm_agent")
	cfg.MaxToolErrors = 2

	r, err := New(cfg, setup)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	res := report.Results[0]
	assert.Equal(t, TerminationMaxToolErrors, res.Termination)
	assert.Equal(t, 2, res.ToolErrors)
	assert.Equal(t, 2, res.Turns)
}

func TestRunner_MaxTurns(t *testing.T) {
	setup := scriptedSetup(func(_ string, _ int, m *model.MockModel) User {
		m.EnqueueText("Could you reboot the device?", 0.01)
		m.EnqueueText("Is it back online now?", 0.01)
		m.EnqueueText("Let us try the next step.", 0.01)

		return NewScriptedUser("help", "done", "still broken", "what now")
	})

	cfg := testConfig("llm_agent")
	cfg.MaxTurns = 3

	r, err := New(cfg, setup)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	res := report.Results[0]
	assert.Equal(t, TerminationMaxTurns, res.Termination)
	assert.Equal(t, 3, res.Turns)
}

func TestRunner_DriverErrorRecorded(t *testing.T) {
	setup := scriptedSetup(func(_ string, _ int, m *model.MockModel) User {
		m.EnqueueError(errors.New("model exploded"))

		return NewScriptedUser("hi")
	})

	r, err := New(testConfig("llm_agent"), setup)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	res := report.Results[0]
	assert.Equal(t, TerminationError, res.Termination)
	assert.Contains(t, res.Err, "model exploded")
	assert.Zero(t, res.Turns)

	require.Len(t, report.Summaries, 1)
	assert.Equal(t, 1, report.Summaries[0].Errors)
}

func TestRunner_SeedAppliedToDrivers(t *testing.T) {
	var captured *model.MockModel

	setup := scriptedSetup(func(_ string, _ int, m *model.MockModel) User {
		captured = m
		m.EnqueueText("Hello!", 0.01)

		return NewScriptedUser("hi")
	})

	cfg := testConfig("llm_agent")
	seed := 300
	cfg.Seed = &seed

	r, err := New(cfg, setup)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	reqs := captured.Requests()
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].Options)
	require.NotNil(t, reqs[0].Options.Seed)
	assert.Equal(t, 300, *reqs[0].Options.Seed)
}

// -------------------- Run Aggregation Tests --------------------

func TestRunner_MultipleStrategiesAndEpisodes(t *testing.T) {
	setup := scriptedSetup(func(_ string, _ int, m *model.MockModel) User {
		m.EnqueueText("Resolved.", 0.01)

		return NewScriptedUser("hi")
	})

	cfg := testConfig("static_plan", "llm_agent")
	cfg.Episodes = 2
	cfg.MaxConcurrency = 2

	r, err := New(cfg, setup)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	assert.Equal(t, "telecom", report.Domain)
	assert.Equal(t, "run-test", report.RunID)

	// Results are ordered by strategy, then episode.
	assert.Equal(t, "llm_agent", report.Results[0].Strategy)
	assert.Equal(t, 0, report.Results[0].Episode)
	assert.Equal(t, "llm_agent", report.Results[1].Strategy)
	assert.Equal(t, 1, report.Results[1].Episode)
	assert.Equal(t, "static_plan", report.Results[2].Strategy)

	require.Len(t, report.Summaries, 2)
	llm := report.Summaries[0]
	assert.Equal(t, "llm_agent", llm.Strategy)
	assert.Equal(t, 2, llm.Episodes)
	assert.Equal(t, 2, llm.Completed)
	assert.InDelta(t, 1.0, llm.AvgTurns, 1e-9)
	assert.InDelta(t, 0.02, llm.TotalCost, 1e-9)
}

func TestRunner_ArchivesTranscriptsAndReport(t *testing.T) {
	setup := scriptedSetup(func(_ string, _ int, m *model.MockModel) User {
		m.EnqueueToolCall("get_line_status", map[string]any{"line_id": "l-1"}, 0.01)
		m.EnqueueText("Your line is active.", 0.01)

		return NewScriptedUser("check my line")
	})

	artifacts := artifact.NewInMemoryStore()

	r, err := New(testConfig("llm_agent"), setup, func(o *Options) {
		o.Artifacts = artifacts
	})
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	names, err := artifacts.List("run-test")
	require.NoError(t, err)
	assert.Equal(t, []string{"report.json", "run-test-llm_agent-0.json"}, names)

	data, err := artifacts.Get("run-test", "run-test-llm_agent-0.json")
	require.NoError(t, err)

	var doc episodeDocument
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, TerminationCompleted, doc.Result.Termination)
	require.Len(t, doc.Messages, 4)
	assert.Equal(t, "user", doc.Messages[0].Role)
	assert.Equal(t, "assistant", doc.Messages[1].Role)
	require.Len(t, doc.Messages[1].ToolCalls, 1)
	assert.Equal(t, "get_line_status", doc.Messages[1].ToolCalls[0].Name)
	assert.Equal(t, "tool", doc.Messages[2].Role)
	assert.Equal(t, "Your line is active.", doc.Messages[3].Content)

	reportData, err := artifacts.Get("run-test", "report.json")
	require.NoError(t, err)

	var stored Report
	require.NoError(t, json.Unmarshal(reportData, &stored))
	assert.Equal(t, "run-test", stored.RunID)
	require.Len(t, stored.Results, 1)
}

func TestRunner_SetupErrorAbortsRun(t *testing.T) {
	setup := func(strategy string, episode int) (agent.Agent, Environment, User, error) {
		return nil, nil, nil, errors.New("unknown strategy")
	}

	r, err := New(testConfig("bogus"), setup)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup")
}

func TestNew_Validation(t *testing.T) {
	setup := func(strategy string, episode int) (agent.Agent, Environment, User, error) {
		return nil, nil, nil, nil
	}

	_, err := New(nil, setup)
	assert.Error(t, err)

	_, err = New(testConfig("llm_agent"), nil)
	assert.Error(t, err)

	_, err = New(&Config{}, setup)
	assert.Error(t, err)
}

func TestReport_Summary(t *testing.T) {
	report := buildReport("run-1", "telecom", []*Result{
		{Strategy: "llm_agent", Episode: 0, Termination: TerminationCompleted, Turns: 4, AgentCost: 0.04},
		{Strategy: "llm_agent", Episode: 1, Termination: TerminationTransferred, Turns: 6, AgentCost: 0.06},
		{Strategy: "two_tier", Episode: 0, Termination: TerminationError, Turns: 1, AgentCost: 0.01},
	})

	out := report.Summary()
	assert.Contains(t, out, "STRATEGY")
	assert.Contains(t, out, "llm_agent")
	assert.Contains(t, out, "two_tier")

	require.Len(t, report.Summaries, 2)
	assert.Equal(t, 1, report.Summaries[0].Completed)
	assert.Equal(t, 1, report.Summaries[0].Transferred)
	assert.InDelta(t, 5.0, report.Summaries[0].AvgTurns, 1e-9)
	assert.Equal(t, 1, report.Summaries[1].Errors)
}
