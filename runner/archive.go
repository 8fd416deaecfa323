package runner

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/telcoagents/core"
)

// episodeDocument is the archived JSON rendition of one finished episode.
type episodeDocument struct {
	Result   *Result         `json:"result"`
	Messages []messageRecord `json:"messages"`
}

// messageRecord is the flat JSON projection of one committed message.
type messageRecord struct {
	Role       string           `json:"role"`
	Content    string           `json:"content,omitempty"`
	ToolCalls  []core.ToolCall  `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
	Error      bool             `json:"error,omitempty"`
	Cost       *float64         `json:"cost,omitempty"`
	Usage      *core.TokenUsage `json:"usage,omitempty"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
}

// archiveEpisode renders the episode's record and result into a transcript
// document and stores it under the run.
func (r *Runner) archiveEpisode(runID, sessionID string, res *Result) error {
	rec, err := r.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("runner: load record %s: %w", sessionID, err)
	}

	doc := episodeDocument{
		Result:   res,
		Messages: renderMessages(rec.Messages),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("runner: encode episode %s: %w", sessionID, err)
	}

	if err := r.artifacts.Save(runID, sessionID+".json", data); err != nil {
		return fmt.Errorf("runner: archive episode %s: %w", sessionID, err)
	}

	return nil
}

// renderMessages projects committed messages onto the archive schema. Tool
// result bundles are flattened, one record per result.
func renderMessages(msgs []core.Message) []messageRecord {
	out := make([]messageRecord, 0, len(msgs))

	for _, m := range msgs {
		switch v := m.(type) {
		case *core.UserMessage:
			out = append(out, messageRecord{
				Role:    string(core.RoleUser),
				Content: v.Content,
				Cost:    v.Cost,
				Usage:   v.Usage,
			})
		case *core.AssistantMessage:
			out = append(out, messageRecord{
				Role:      string(core.RoleAssistant),
				Content:   v.Content,
				ToolCalls: v.ToolCalls,
				Cost:      v.Cost,
				Usage:     v.Usage,
				Metadata:  v.Metadata,
			})
		case *core.ToolMessage:
			out = append(out, messageRecord{
				Role:       string(core.RoleTool),
				Content:    v.Content,
				ToolCallID: v.ID,
				Error:      v.Error,
			})
		case *core.MultiToolMessage:
			for _, tm := range v.Messages {
				out = append(out, messageRecord{
					Role:       string(core.RoleTool),
					Content:    tm.Content,
					ToolCallID: tm.ID,
					Error:      tm.Error,
				})
			}
		}
	}

	return out
}
