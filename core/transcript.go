package core

import (
	"fmt"
	"strings"
)

// Transcript is the append-only conversational history every role reads and
// extends. The only mutation is appending; no component may reorder or
// delete messages once recorded.
type Transcript struct {
	messages []Message
}

// NewTranscript constructs a transcript seeded with the given messages.
// MultiToolMessages are expanded into their individual tool results.
func NewTranscript(msgs ...Message) *Transcript {
	t := &Transcript{}
	t.Append(msgs...)
	return t
}

// Append records one or more messages at the end of the history. A
// MultiToolMessage is unpacked into its constituent ToolMessages so the
// stored history only ever contains single-result tool entries.
func (t *Transcript) Append(msgs ...Message) {
	for _, m := range msgs {
		if multi, ok := m.(*MultiToolMessage); ok {
			for _, tm := range multi.Messages {
				t.messages = append(t.messages, tm)
			}
			continue
		}
		t.messages = append(t.messages, m)
	}
}

// Messages returns a copy of the recorded history for safe iteration.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of recorded messages.
func (t *Transcript) Len() int { return len(t.messages) }

// Last returns the most recent message, or nil when the transcript is empty.
func (t *Transcript) Last() Message {
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

const (
	summaryTextLimit = 300
	summaryToolLimit = 200
)

// Summary renders the last n messages as a compact textual projection used
// for replan context and verification prompts. n <= 0 renders the full
// history. Text content is truncated to 300 characters, tool results to 200;
// tool results additionally carry an [ERROR] marker when the error flag is
// set. An empty projection renders as "(no execution history)".
func (t *Transcript) Summary(n int) string {
	msgs := t.messages
	if n > 0 && len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}

	var lines []string
	for _, m := range msgs {
		switch msg := m.(type) {
		case *UserMessage:
			if msg.Content != "" {
				lines = append(lines, fmt.Sprintf("User: %s", truncateRunes(msg.Content, summaryTextLimit)))
			}
		case *AssistantMessage:
			if msg.IsToolCall() {
				names := make([]string, len(msg.ToolCalls))
				for i, tc := range msg.ToolCalls {
					names[i] = tc.Name
				}
				lines = append(lines, fmt.Sprintf("Agent action: [tool calls: %s]", strings.Join(names, ", ")))
			} else if msg.Content != "" {
				lines = append(lines, fmt.Sprintf("Agent message to user: %s", truncateRunes(msg.Content, summaryTextLimit)))
			}
		case *ToolMessage:
			marker := ""
			if msg.Error {
				marker = " [ERROR]"
			}
			lines = append(lines, fmt.Sprintf("Tool result%s: %s", marker, truncateRunes(msg.Content, summaryToolLimit)))
		}
	}

	if len(lines) == 0 {
		return "(no execution history)"
	}
	return strings.Join(lines, "\n")
}

// truncateRunes shortens s to at most n runes. Truncation is rune based so
// multi-byte content never splits mid-character.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
