package verify

import "strings"

// Verdict is the verifier's judgment label.
type Verdict string

const (
	VerdictApprove Verdict = "APPROVE"
	VerdictReject  Verdict = "REJECT"
	VerdictSuggest Verdict = "SUGGEST"
)

// Result is a parsed verifier response.
type Result struct {
	Verdict     Verdict
	Explanation string
}

// Approved reports whether the action may proceed as proposed.
func (r Result) Approved() bool {
	return r.Verdict == VerdictApprove
}

// ParseVerdict parses a raw verifier response into a Result. The verdict is
// expected on the first line; the remainder is the explanation. Parsing is
// lenient: a verdict prefix match is tried first, then a substring search in
// the first line (REJECT before SUGGEST before APPROVE, so the blocking
// labels win ties). An empty or unrecognizable response approves, keeping
// the whole response as the explanation. The second return value is false
// when a fallback default was used.
func ParseVerdict(text string) (Result, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{Verdict: VerdictApprove, Explanation: "No feedback provided."}, false
	}

	first, rest, _ := strings.Cut(trimmed, "\n")
	firstLine := strings.ToUpper(strings.TrimSpace(first))
	explanation := strings.TrimSpace(rest)

	for _, v := range []Verdict{VerdictApprove, VerdictReject, VerdictSuggest} {
		if strings.HasPrefix(firstLine, string(v)) {
			return Result{Verdict: v, Explanation: explanation}, true
		}
	}

	for _, v := range []Verdict{VerdictReject, VerdictSuggest, VerdictApprove} {
		if strings.Contains(firstLine, string(v)) {
			return Result{Verdict: v, Explanation: explanation}, true
		}
	}

	return Result{Verdict: VerdictApprove, Explanation: trimmed}, false
}
