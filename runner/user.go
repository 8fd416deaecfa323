package runner

import (
	"context"
	"strings"

	"github.com/hupe1980/telcoagents/core"
)

// User supplies the customer side of an episode. The first call receives a
// nil reply; returning ok=false ends the episode.
type User interface {
	Next(ctx context.Context, lastReply *core.AssistantMessage) (*core.UserMessage, bool, error)
}

// ScriptedUser replays a fixed list of utterances in order, ignoring what
// the agent says in between. Useful for regression suites and smoke runs
// where the customer side is known in advance.
type ScriptedUser struct {
	utterances []string
	next       int
}

// NewScriptedUser builds a user that will say each non-blank utterance once.
func NewScriptedUser(utterances ...string) *ScriptedUser {
	kept := make([]string, 0, len(utterances))

	for _, u := range utterances {
		if strings.TrimSpace(u) != "" {
			kept = append(kept, u)
		}
	}

	return &ScriptedUser{utterances: kept}
}

// Next returns the next scripted utterance, or ok=false once the script is
// exhausted.
func (u *ScriptedUser) Next(_ context.Context, _ *core.AssistantMessage) (*core.UserMessage, bool, error) {
	if u.next >= len(u.utterances) {
		return nil, false, nil
	}

	msg := &core.UserMessage{Content: u.utterances[u.next]}
	u.next++

	return msg, true, nil
}

// Remaining reports how many scripted utterances have not been said yet.
func (u *ScriptedUser) Remaining() int {
	return len(u.utterances) - u.next
}
