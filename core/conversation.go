package core

import (
	"errors"
	"fmt"
)

// ErrInvalidHistory reports seed history containing roles the transcript
// cannot hold.
var ErrInvalidHistory = errors.New("invalid seed history")

// Conversation owns the transcript plus the per-strategy bookkeeping one
// driver instance mutates turn by turn. Each conversation is exclusively
// owned by the caller driving it; instances are never shared across
// conversations and require no locking.
type Conversation struct {
	// Transcript is the shared append-only message history.
	Transcript *Transcript

	// SystemMessages is the active instruction preamble. It is kept outside
	// the transcript so drivers can swap system content (new plan, new
	// specialist) without mutating history.
	SystemMessages []*SystemMessage

	// Plan holds the current step-by-step plan text for plan-bearing drivers.
	Plan string
	// PlanGenerated is latched true after the first planner invocation,
	// successful or not.
	PlanGenerated bool
	// StepsSinceReplan counts executor turns since the last accepted plan.
	StepsSinceReplan int

	// CurrentAgent holds the routed specialist category for router-bearing
	// drivers; empty means not yet routed.
	CurrentAgent string
	// Routed is latched true once a route-once driver has classified the
	// conversation.
	Routed bool
}

// NewConversation creates conversation state, optionally seeded with prior
// history. Seed history may contain only user, assistant and single tool
// messages; system preambles and batched tool results are rejected.
func NewConversation(history ...Message) (*Conversation, error) {
	for _, m := range history {
		switch m.(type) {
		case *UserMessage, *AssistantMessage, *ToolMessage:
		default:
			return nil, fmt.Errorf("%w: seed may only contain user, assistant or tool messages, got role %q", ErrInvalidHistory, m.Role())
		}
	}
	return &Conversation{Transcript: NewTranscript(history...)}, nil
}

// SetSystemMessages replaces the active instruction preamble.
func (c *Conversation) SetSystemMessages(msgs ...*SystemMessage) {
	c.SystemMessages = msgs
}

// ContextMessages returns the effective model context: the active system
// preamble followed by the full transcript. The combination is computed on
// every call and never stored pre-concatenated.
func (c *Conversation) ContextMessages() []Message {
	out := make([]Message, 0, len(c.SystemMessages)+c.Transcript.Len())
	for _, sm := range c.SystemMessages {
		out = append(out, sm)
	}
	out = append(out, c.Transcript.Messages()...)
	return out
}
