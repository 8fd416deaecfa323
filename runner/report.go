package runner

import (
	"fmt"
	"sort"
	"strings"
)

// StrategySummary aggregates the finished episodes of one strategy.
type StrategySummary struct {
	Strategy    string  `json:"strategy"`
	Episodes    int     `json:"episodes"`
	Completed   int     `json:"completed"`
	Transferred int     `json:"transferred"`
	Errors      int     `json:"errors"`
	AvgTurns    float64 `json:"avg_turns"`
	TotalCost   float64 `json:"total_cost"`
}

// Report is the aggregated outcome of one benchmark run.
type Report struct {
	RunID     string            `json:"run_id"`
	Domain    string            `json:"domain,omitempty"`
	Results   []*Result         `json:"results"`
	Summaries []StrategySummary `json:"summaries"`
}

// buildReport orders the results by strategy and episode and computes the
// per-strategy aggregates, preserving first-seen strategy order.
func buildReport(runID, domain string, results []*Result) *Report {
	sorted := make([]*Result, len(results))
	copy(sorted, results)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Strategy != sorted[j].Strategy {
			return sorted[i].Strategy < sorted[j].Strategy
		}

		return sorted[i].Episode < sorted[j].Episode
	})

	byStrategy := make(map[string]*StrategySummary)
	order := make([]string, 0)

	for _, res := range sorted {
		sum, ok := byStrategy[res.Strategy]
		if !ok {
			sum = &StrategySummary{Strategy: res.Strategy}
			byStrategy[res.Strategy] = sum
			order = append(order, res.Strategy)
		}

		sum.Episodes++
		sum.AvgTurns += float64(res.Turns)
		sum.TotalCost += res.AgentCost

		switch res.Termination {
		case TerminationCompleted:
			sum.Completed++
		case TerminationTransferred:
			sum.Transferred++
		case TerminationError:
			sum.Errors++
		}
	}

	summaries := make([]StrategySummary, 0, len(order))

	for _, name := range order {
		sum := byStrategy[name]
		if sum.Episodes > 0 {
			sum.AvgTurns /= float64(sum.Episodes)
		}

		summaries = append(summaries, *sum)
	}

	return &Report{
		RunID:     runID,
		Domain:    domain,
		Results:   sorted,
		Summaries: summaries,
	}
}

// Summary renders a fixed width table of the per-strategy aggregates,
// suitable for printing at the end of a run.
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-16s %9s %10s %12s %7s %10s %10s\n",
		"STRATEGY", "EPISODES", "COMPLETED", "TRANSFERRED", "ERRORS", "AVG TURNS", "COST")

	for _, s := range r.Summaries {
		fmt.Fprintf(&b, "%-16s %9d %10d %12d %7d %10.1f %10.4f\n",
			s.Strategy, s.Episodes, s.Completed, s.Transferred, s.Errors, s.AvgTurns, s.TotalCost)
	}

	return b.String()
}
