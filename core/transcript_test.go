package core

import (
	"strings"
	"testing"
)

func TestTranscript_AppendFlattensMultiTool(t *testing.T) {
	tr := NewTranscript()
	tr.Append(&UserMessage{Content: "my phone has no signal"})
	tr.Append(&MultiToolMessage{Messages: []*ToolMessage{
		{ID: "1", Content: "status: down"},
		{ID: "2", Content: "signal: none", Error: true},
	}})

	msgs := tr.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages after flattening, got %d", len(msgs))
	}
	if _, ok := msgs[1].(*ToolMessage); !ok {
		t.Errorf("expected flattened ToolMessage, got %T", msgs[1])
	}
	if _, ok := msgs[2].(*ToolMessage); !ok {
		t.Errorf("expected flattened ToolMessage, got %T", msgs[2])
	}
}

func TestTranscript_MessagesIsCopy(t *testing.T) {
	tr := NewTranscript(&UserMessage{Content: "hi"})
	msgs := tr.Messages()
	msgs[0] = &UserMessage{Content: "tampered"}
	if tr.Messages()[0].(*UserMessage).Content != "hi" {
		t.Error("messages slice should be copied on read")
	}
}

func TestTranscript_Summary(t *testing.T) {
	tr := NewTranscript(
		&UserMessage{Content: "my phone has no signal"},
		&AssistantMessage{ToolCalls: []ToolCall{{ID: "1", Name: "check_network_status"}, {ID: "2", Name: "get_line_status"}}},
		&ToolMessage{ID: "1", Content: "network ok"},
		&ToolMessage{ID: "2", Content: "line suspended", Error: true},
		&AssistantMessage{Content: "Your line is suspended due to an overdue bill."},
	)

	s := tr.Summary(0)
	lines := strings.Split(s, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 summary lines, got %d:\n%s", len(lines), s)
	}
	if lines[0] != "User: my phone has no signal" {
		t.Errorf("unexpected user line: %q", lines[0])
	}
	if lines[1] != "Agent action: [tool calls: check_network_status, get_line_status]" {
		t.Errorf("unexpected action line: %q", lines[1])
	}
	if lines[2] != "Tool result: network ok" {
		t.Errorf("unexpected tool line: %q", lines[2])
	}
	if lines[3] != "Tool result [ERROR]: line suspended" {
		t.Errorf("error marker missing: %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "Agent message to user: ") {
		t.Errorf("unexpected reply line: %q", lines[4])
	}
}

func TestTranscript_SummaryWindow(t *testing.T) {
	tr := NewTranscript()
	for i := 0; i < 12; i++ {
		tr.Append(&UserMessage{Content: "turn"})
	}
	s := tr.Summary(10)
	if got := strings.Count(s, "\n") + 1; got != 10 {
		t.Errorf("expected 10 lines, got %d", got)
	}
}

func TestTranscript_SummaryTruncation(t *testing.T) {
	long := strings.Repeat("ü", 400)
	tr := NewTranscript(&UserMessage{Content: long})

	s := tr.Summary(0)
	body := strings.TrimPrefix(s, "User: ")
	if got := len([]rune(body)); got != 300 {
		t.Errorf("expected 300 runes, got %d", got)
	}
	if strings.ContainsRune(s, '\uFFFD') {
		t.Error("truncation split a multi-byte character")
	}
}

func TestTranscript_SummaryEmpty(t *testing.T) {
	tr := NewTranscript()
	if got := tr.Summary(0); got != "(no execution history)" {
		t.Errorf("unexpected empty projection: %q", got)
	}

	// Messages with no renderable content also produce the empty projection.
	tr.Append(&UserMessage{})
	if got := tr.Summary(0); got != "(no execution history)" {
		t.Errorf("unexpected projection for blank content: %q", got)
	}
}
