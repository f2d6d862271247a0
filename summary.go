package activity

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Summary is a snapshot of the lifetime aggregate counters. Totals are
// unaffected by eviction from the recent-records window, so they describe
// the whole run even when the buffer has wrapped.
type Summary struct {
	TotalRecords        int            `json:"total_records"`
	KindTotals          map[Kind]int   `json:"kind_totals"`
	SourceTotals        map[string]int `json:"source_totals"`
	AgentCalls          map[string]int `json:"agent_calls"`
	AgentCallsTotal     int            `json:"agent_calls_total"`
	AgentCallsCompleted int            `json:"agent_calls_completed"`
	ExecutionsTotal     int            `json:"executions_total"`
	ExecutionsSucceeded int            `json:"executions_succeeded"`
	ExecutionsFailed    int            `json:"executions_failed"`
	Errors              int            `json:"errors"`
	Iterations          int            `json:"iterations"`
}

// Report renders the end-of-run summary as a fixed-width text block.
func (s Summary) Report(width int) string {
	if width <= 0 {
		width = DefaultConsoleWidth
	}
	rule := strings.Repeat("=", width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(rule + "\n")
	b.WriteString(center("EXECUTION SUMMARY", width) + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("Agent Activity:\n")
	fmt.Fprintf(&b, "  Total agent calls: %d\n", s.AgentCallsTotal)
	fmt.Fprintf(&b, "  Completed calls: %d\n", s.AgentCallsCompleted)
	fmt.Fprintf(&b, "  Errors: %d\n", s.Errors)

	if len(s.AgentCalls) > 0 {
		b.WriteString("\n  Agent usage:\n")
		agents := make([]string, 0, len(s.AgentCalls))
		for agent := range s.AgentCalls {
			agents = append(agents, agent)
		}
		sort.Strings(agents)
		for _, agent := range agents {
			fmt.Fprintf(&b, "    %s: %d\n", agent, s.AgentCalls[agent])
		}
	}

	b.WriteString("\nCode Execution:\n")
	fmt.Fprintf(&b, "  Total executions: %d\n", s.ExecutionsTotal)
	fmt.Fprintf(&b, "  Successful: %d\n", s.ExecutionsSucceeded)
	fmt.Fprintf(&b, "  Failed: %d\n", s.ExecutionsFailed)

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total iterations: %d\n", s.Iterations)
	fmt.Fprintf(&b, "Total activities logged: %d\n", s.TotalRecords)
	return b.String()
}

// FprintSummary writes the tracker's end-of-run summary block to w.
func FprintSummary(w io.Writer, tracker *Tracker, width int) {
	fmt.Fprint(w, tracker.Summary().Report(width))
}

// FprintRecent writes the last n records to w, one per line.
func FprintRecent(w io.Writer, tracker *Tracker, n int) {
	records := tracker.Recent(n)
	if len(records) == 0 {
		fmt.Fprintln(w, "No activities logged yet.")
		return
	}
	fmt.Fprintf(w, "\nRecent Activities (last %d):\n", len(records))
	fmt.Fprintln(w, strings.Repeat("-", DefaultConsoleWidth))
	for _, record := range records {
		fmt.Fprintln(w, record.String())
	}
	fmt.Fprintln(w)
}

// StatusLine renders a compact one-line view of the current status, for
// example "Node: verify | Agent: Verifier | Iteration: 3". An idle pipeline
// renders as "Idle".
func StatusLine(status Status) string {
	var parts []string
	if status.CurrentNode != "" {
		parts = append(parts, "Node: "+status.CurrentNode)
	}
	if status.CurrentAgent != "" {
		parts = append(parts, "Agent: "+status.CurrentAgent)
	}
	if status.Iteration > 0 {
		parts = append(parts, fmt.Sprintf("Iteration: %d", status.Iteration))
	}
	if len(parts) == 0 {
		return "Idle"
	}
	return strings.Join(parts, " | ")
}

// FprintStatus writes a boxed status line to w.
func FprintStatus(w io.Writer, status Status, width int) {
	if width <= 0 {
		width = DefaultConsoleWidth
	}
	rule := strings.Repeat("=", width)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, center(StatusLine(status), width))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
