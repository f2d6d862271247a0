package activity

import (
	"fmt"
	"time"

	"go.jetify.com/typeid"
)

// NewRecordID returns a new prefixed unique ID for a record.
func NewRecordID() string {
	id, err := typeid.WithPrefix("act")
	if err != nil {
		panic(err)
	}
	return id.String()
}

// Kind classifies a tracked pipeline event.
type Kind string

const (
	KindAgentStart   Kind = "agent_start"
	KindAgentEnd     Kind = "agent_end"
	KindStateEnter   Kind = "state_enter"
	KindExecStart    Kind = "exec_start"
	KindExecSuccess  Kind = "exec_success"
	KindExecFailure  Kind = "exec_failure"
	KindLLMCall      Kind = "llm_call"
	KindDebugAttempt Kind = "debug_attempt"
	KindError        Kind = "error"
	KindInfo         Kind = "info"
)

// Kinds lists every recognized kind.
var Kinds = []Kind{
	KindAgentStart,
	KindAgentEnd,
	KindStateEnter,
	KindExecStart,
	KindExecSuccess,
	KindExecFailure,
	KindLLMCall,
	KindDebugAttempt,
	KindError,
	KindInfo,
}

// Valid reports whether k is a recognized kind.
func (k Kind) Valid() bool {
	switch k {
	case KindAgentStart, KindAgentEnd, KindStateEnter,
		KindExecStart, KindExecSuccess, KindExecFailure,
		KindLLMCall, KindDebugAttempt, KindError, KindInfo:
		return true
	}
	return false
}

// Level returns the minimum severity a record of this kind carries when it
// is forwarded to a sink. EXEC_FAILURE is never below WARNING and ERROR is
// never below ERROR; LLM calls and debug attempts default to DEBUG.
func (k Kind) Level() Level {
	switch k {
	case KindError:
		return LevelError
	case KindExecFailure:
		return LevelWarning
	case KindLLMCall, KindDebugAttempt:
		return LevelDebug
	default:
		return LevelInfo
	}
}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", &InvalidActivityKindError{Kind: s}
	}
	return k, nil
}

// Record is a single observed pipeline event. Records are immutable once
// created; the tracker assigns Seq when the record is appended.
type Record struct {
	ID        string         `json:"id"`
	Seq       uint64         `json:"seq"`
	Timestamp time.Time      `json:"timestamp"`
	Kind      Kind           `json:"kind"`
	Source    string         `json:"source,omitempty"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewRecord builds a record for the given kind. The metadata map is copied
// so later mutation by the caller cannot affect the stored record.
func NewRecord(kind Kind, source, message string, metadata map[string]any) Record {
	return Record{
		ID:        NewRecordID(),
		Timestamp: time.Now(),
		Kind:      kind,
		Source:    source,
		Message:   message,
		Metadata:  copyMetadata(metadata),
	}
}

func (r Record) String() string {
	if r.Source == "" {
		return fmt.Sprintf("[%s] %s", r.Timestamp.Format(time.TimeOnly), r.Message)
	}
	return fmt.Sprintf("[%s] [%s] %s", r.Timestamp.Format(time.TimeOnly), r.Source, r.Message)
}

func copyMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
