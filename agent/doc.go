// Package agent contains the coordination drivers: one driver per
// orchestration strategy, each turning an incoming conversational event into
// exactly one assistant action. The package focuses on three concerns:
//
//  1. Shared turn plumbing (executor invocation, safety net, metadata,
//     cost/usage merging, transcript commit)
//  2. Concrete coordination strategies (plain executor, planner+executor,
//     executor+verifier, router+specialists)
//  3. Seed propagation into every model invocation a driver issues
//
// Design principles:
//   - One Conversation per driver instance per conversation; drivers never
//     share state across conversations
//   - Auxiliary roles (planner, verifier, router) fail open; only the
//     executor's own failure surfaces to the caller
//   - Every auxiliary invocation's cost and usage is merged into the turn's
//     returned message, so caller-visible spend covers the whole turn
//
// Execution Model:
//   - A driver's Respond receives the incoming event (user utterance, tool
//     result, or batch of tool results), consults its controllers, issues
//     one or more executor invocations and commits the final message
//   - Control flow within a turn is strictly sequential; concurrency across
//     conversations belongs to the runner
//
// The package intentionally keeps plan, verification and routing state
// machines in their respective packages to avoid cyclic deps.
package agent
