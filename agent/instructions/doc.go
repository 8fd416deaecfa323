// Package instructions holds the prompt and policy texts the coordination
// drivers assemble their system preambles from: the telecom business policy,
// the device actions reference, per-lane specialist identities and
// troubleshooting guides, and the prompt templates that combine them. The
// texts live as embedded markdown files so the markup inside them stays
// untouched by Go tooling.
package instructions
