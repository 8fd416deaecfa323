// Package core provides the foundational domain types shared by every
// coordination driver. It defines the core abstractions for:
//
//   - Messages (role tagged union: system, user, assistant, tool)
//   - Transcript (append-only conversational history with summary projection)
//   - Conversation (per-conversation state: plan, routing, system preamble)
//   - Expense (auxiliary cost/usage accounting across role invocations)
//
// The package intentionally keeps implementation concerns (model adapters,
// concrete drivers, the benchmark harness) out of scope, exposing small types
// so the control-flow layer stays decoupled from any model provider.
package core
