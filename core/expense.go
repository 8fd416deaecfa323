package core

// Expense accumulates auxiliary model spend (planner, verifier and router
// invocations, rejected executor proposals) incurred while producing one
// assistant turn. Drivers merge the accumulated total into the returned
// message so the caller-visible cost reflects the entire turn.
type Expense struct {
	Cost  float64
	Usage TokenUsage
}

// Record adds a single invocation's cost and usage. Nil values are skipped.
func (e *Expense) Record(cost *float64, usage *TokenUsage) {
	if cost != nil {
		e.Cost += *cost
	}
	e.Usage.Add(usage)
}

// RecordMessage adds the spend attached to a message, e.g. when a rejected
// proposal's cost must still be billed to the final returned message.
func (e *Expense) RecordMessage(m *AssistantMessage) {
	if m == nil {
		return
	}
	e.Record(m.Cost, m.Usage)
}

// Add merges another accumulator into this one. Nil is a no-op.
func (e *Expense) Add(other *Expense) {
	if other == nil {
		return
	}
	e.Cost += other.Cost
	e.Usage.Add(&other.Usage)
}

// IsZero reports whether nothing has been recorded.
func (e *Expense) IsZero() bool {
	return e.Cost == 0 && e.Usage.IsZero()
}

// ApplyTo merges the accumulated spend into the message cost and usage.
func (e *Expense) ApplyTo(m *AssistantMessage) {
	if m == nil || e.IsZero() {
		return
	}
	if e.Cost > 0 {
		m.AddCost(e.Cost)
	}
	if !e.Usage.IsZero() {
		m.AddUsage(&e.Usage)
	}
}
