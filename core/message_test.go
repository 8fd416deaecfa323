package core

import (
	"strings"
	"testing"
)

func TestAssistantMessage_Validate(t *testing.T) {
	text := &AssistantMessage{Content: "hello"}
	if err := text.Validate(); err != nil {
		t.Fatalf("text message should be valid: %v", err)
	}

	call := &AssistantMessage{ToolCalls: []ToolCall{{ID: "1", Name: "get_line_status"}}}
	if err := call.Validate(); err != nil {
		t.Fatalf("tool call message should be valid: %v", err)
	}

	both := &AssistantMessage{Content: "hi", ToolCalls: []ToolCall{{ID: "1", Name: "x"}}}
	if err := both.Validate(); err == nil {
		t.Error("message with content and tool calls should be invalid")
	}

	neither := &AssistantMessage{Content: "   "}
	if err := neither.Validate(); err == nil {
		t.Error("message with neither content nor tool calls should be invalid")
	}
}

func TestAssistantMessage_AddCostAndUsage(t *testing.T) {
	m := &AssistantMessage{}

	m.AddCost(0.25)
	if m.Cost == nil || *m.Cost != 0.25 {
		t.Fatalf("cost not created: %+v", m.Cost)
	}
	m.AddCost(0.75)
	if *m.Cost != 1.0 {
		t.Errorf("cost not summed, got %v", *m.Cost)
	}

	m.AddUsage(&TokenUsage{PromptTokens: 10, CompletionTokens: 5})
	if m.Usage == nil || m.Usage.PromptTokens != 10 || m.Usage.CompletionTokens != 5 {
		t.Fatalf("usage not created: %+v", m.Usage)
	}
	m.AddUsage(&TokenUsage{PromptTokens: 1, CompletionTokens: 2})
	if m.Usage.PromptTokens != 11 || m.Usage.CompletionTokens != 7 {
		t.Errorf("usage not summed: %+v", m.Usage)
	}

	// Zero usage must not allocate a mapping on a fresh message.
	fresh := &AssistantMessage{}
	fresh.AddUsage(&TokenUsage{})
	if fresh.Usage != nil {
		t.Error("zero usage should not create the usage mapping")
	}
	fresh.AddUsage(nil)
	if fresh.Usage != nil {
		t.Error("nil usage should not create the usage mapping")
	}
}

func TestMultiToolMessage_HasError(t *testing.T) {
	ok := &MultiToolMessage{Messages: []*ToolMessage{
		{ID: "1", Content: "done"},
		{ID: "2", Content: "done"},
	}}
	if ok.HasError() {
		t.Error("no error flag set, HasError should be false")
	}

	bad := &MultiToolMessage{Messages: []*ToolMessage{
		{ID: "1", Content: "done"},
		{ID: "2", Content: "timeout", Error: true},
	}}
	if !bad.HasError() {
		t.Error("error flag set, HasError should be true")
	}
}

func TestExpense_RecordAndApply(t *testing.T) {
	var e Expense
	if !e.IsZero() {
		t.Fatal("fresh expense should be zero")
	}

	cost := 0.5
	e.Record(&cost, &TokenUsage{PromptTokens: 100, CompletionTokens: 20})
	e.Record(nil, nil)
	e.RecordMessage(&AssistantMessage{Cost: &cost, Usage: &TokenUsage{PromptTokens: 30}})

	if e.Cost != 1.0 {
		t.Errorf("expected cost 1.0, got %v", e.Cost)
	}
	if e.Usage.PromptTokens != 130 || e.Usage.CompletionTokens != 20 {
		t.Errorf("unexpected usage: %+v", e.Usage)
	}

	m := &AssistantMessage{Content: "done"}
	e.ApplyTo(m)
	if m.Cost == nil || *m.Cost != 1.0 {
		t.Errorf("expense cost not applied: %+v", m.Cost)
	}
	if m.Usage == nil || m.Usage.PromptTokens != 130 {
		t.Errorf("expense usage not applied: %+v", m.Usage)
	}

	// Applying a zero expense must leave the message untouched.
	var zero Expense
	plain := &AssistantMessage{Content: "done"}
	zero.ApplyTo(plain)
	if plain.Cost != nil || plain.Usage != nil {
		t.Error("zero expense should not touch the message")
	}
}

func TestNewID_Unique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Error("ids should differ")
	}
	if strings.TrimSpace(a) == "" {
		t.Error("id should be non-empty")
	}
}
