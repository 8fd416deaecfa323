// Package plan owns the plan lifecycle for the planner plus executor
// coordination strategies: initial plan generation on the first user message,
// interval and error-triggered revision, and the executor system prompts that
// embed the current plan.
package plan
