// Package logging provides a minimal logging interface and adapters for the
// coordination drivers and the benchmark runner.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that drivers and controllers use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - AgentLogger with conversation / strategy context helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	driver := agent.NewHardVerifyAgent(m, policy, tools, func(o *agent.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
