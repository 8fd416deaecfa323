// Package model defines the provider-agnostic abstractions and concrete
// helpers for the role invocations every coordination driver issues.
//
// Core goals:
//   - One blocking Generate call per role invocation, cancellable via context
//   - Normalize tool call representation between providers and the transcript
//   - Derive dollar cost from token usage via a published rate card
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so drivers and controllers remain decoupled from vendor SDKs.
package model
