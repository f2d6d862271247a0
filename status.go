package activity

import "time"

// DefaultIterationNodes are the graph node names whose STATE_ENTER marks a
// new pass of the outer refinement loop.
var DefaultIterationNodes = []string{"router"}

// Status is a point-in-time view of pipeline progress, derived from the
// record stream.
type Status struct {
	CurrentAgent string    `json:"current_agent,omitempty"`
	CurrentNode  string    `json:"current_node,omitempty"`
	Iteration    int       `json:"iteration"`
	LastUpdated  time.Time `json:"last_updated,omitzero"`
}

// projection folds records into a Status. It is not safe for concurrent
// use on its own; the Tracker serializes access.
type projection struct {
	status         Status
	iterationNodes map[string]bool
}

func newProjection(iterationNodes []string) *projection {
	nodes := make(map[string]bool, len(iterationNodes))
	for _, node := range iterationNodes {
		nodes[node] = true
	}
	return &projection{iterationNodes: nodes}
}

// apply folds one record into the status. AGENT_START sets the current
// agent, AGENT_END clears it, and STATE_ENTER sets the current node,
// incrementing the iteration count when the node begins a new loop pass.
func (p *projection) apply(record Record) {
	switch record.Kind {
	case KindAgentStart:
		p.status.CurrentAgent = record.Source
	case KindAgentEnd:
		p.status.CurrentAgent = ""
	case KindStateEnter:
		p.status.CurrentNode = record.Source
		if p.iterationNodes[record.Source] {
			p.status.Iteration++
		}
	}
	p.status.LastUpdated = record.Timestamp
}

func (p *projection) snapshot() Status {
	return p.status
}

func (p *projection) reset() {
	p.status = Status{}
}

// ReplayStatus folds an ordered record sequence into a Status from an empty
// initial state. Replaying every record a tracker has stored reproduces its
// current status exactly.
func ReplayStatus(records []Record, iterationNodes []string) Status {
	if iterationNodes == nil {
		iterationNodes = DefaultIterationNodes
	}
	p := newProjection(iterationNodes)
	for _, record := range records {
		p.apply(record)
	}
	return p.snapshot()
}
