package activity

// counters accumulates lifetime totals so summary queries stay O(1)
// regardless of store size. Eviction from the recent-records window never
// touches these values. Not safe for concurrent use on its own; the
// Tracker serializes access.
type counters struct {
	total      int
	byKind     map[Kind]int
	bySource   map[string]int
	agentCalls map[string]int
}

func newCounters() *counters {
	return &counters{
		byKind:     map[Kind]int{},
		bySource:   map[string]int{},
		agentCalls: map[string]int{},
	}
}

func (c *counters) apply(record Record) {
	c.total++
	c.byKind[record.Kind]++
	if record.Source != "" {
		c.bySource[record.Source]++
	}
	if record.Kind == KindAgentStart && record.Source != "" {
		c.agentCalls[record.Source]++
	}
}

func (c *counters) snapshot() Summary {
	return Summary{
		TotalRecords:        c.total,
		KindTotals:          copyCounts(c.byKind),
		SourceTotals:        copyCounts(c.bySource),
		AgentCalls:          copyCounts(c.agentCalls),
		AgentCallsTotal:     c.byKind[KindAgentStart],
		AgentCallsCompleted: c.byKind[KindAgentEnd],
		ExecutionsTotal:     c.byKind[KindExecStart],
		ExecutionsSucceeded: c.byKind[KindExecSuccess],
		ExecutionsFailed:    c.byKind[KindExecFailure],
		Errors:              c.byKind[KindError],
	}
}

func (c *counters) reset() {
	c.total = 0
	c.byKind = map[Kind]int{}
	c.bySource = map[string]int{}
	c.agentCalls = map[string]int{}
}

func copyCounts[K comparable](m map[K]int) map[K]int {
	out := make(map[K]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
