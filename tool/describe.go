package tool

import (
	"fmt"
	"sort"
	"strings"
)

const describeDescLimit = 150

// Describe renders a compact tool inventory for planner prompts: one line
// per tool with its parameter names and JSON types, followed by a truncated
// description. Parameters are listed alphabetically for stable output.
//
//	- get_line_status(line_id: string): Get the status of a customer line
func Describe(specs []Spec) string {
	lines := make([]string, 0, len(specs))
	for _, s := range specs {
		props, _ := s.Parameters["properties"].(map[string]any)

		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)

		params := make([]string, 0, len(names))
		for _, name := range names {
			typ := "?"
			if prop, ok := props[name].(map[string]any); ok {
				if ts, ok := prop["type"].(string); ok {
					typ = ts
				}
			}
			params = append(params, fmt.Sprintf("%s: %s", name, typ))
		}

		desc := s.Description
		if len([]rune(desc)) > describeDescLimit {
			desc = string([]rune(desc)[:describeDescLimit])
		}

		lines = append(lines, fmt.Sprintf("- %s(%s): %s", s.Name, strings.Join(params, ", "), desc))
	}
	return strings.Join(lines, "\n")
}
