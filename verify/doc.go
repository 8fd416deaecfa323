// Package verify owns the propose, verify, retry loop for the executor plus
// verifier coordination strategies. The verifier judges each proposed action
// against the domain policy; soft mode treats its feedback as advisory while
// hard mode blocks the action until approval or escalation to a human agent.
package verify
