package activity

import "fmt"

// InvalidActivityKindError indicates a caller passed an unrecognized kind.
// The record is rejected at the API boundary and never stored.
type InvalidActivityKindError struct {
	Kind string
}

func (e *InvalidActivityKindError) Error() string {
	return fmt.Sprintf("invalid activity kind: %q", e.Kind)
}

// SinkWriteError indicates a sink could not persist a forwarded record.
// It is caught at the logger boundary and surfaced as an internal ERROR
// record; it never propagates to the component that triggered the write.
type SinkWriteError struct {
	Sink string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("sink %q write failed: %v", e.Sink, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// RenderError indicates the real-time display failed to render one entry.
// The entry is skipped; the consumer loop continues.
type RenderError struct {
	Seq uint64
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render record %d: %v", e.Seq, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
