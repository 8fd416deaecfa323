// Package runner executes benchmark runs: batches of scripted conversations
// between a coordination driver, a simulated telecom backend and a customer.
//
// A run is declared by a Config (strategies, episodes per strategy, execution
// bounds) and a Setup function that builds fresh participants for every
// episode. The Runner fans episodes out under a concurrency limit, records
// each conversation through a session.Store, archives transcripts and the
// aggregated report through an artifact.Store, and returns the Report.
//
// # Responsibilities (abridged)
//   - Episode lifecycle: user turn, driver turn, tool execution, termination
//   - Tool call execution against an Environment registry
//   - Conversation record persistence and artifact archival
//   - Per-strategy result aggregation
//
// See episode.go for the turn loop and runner.go for the fan-out.
package runner
