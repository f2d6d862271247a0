package activity

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDisplayRendersInOrder(t *testing.T) {
	tracker := NewTracker(TrackerOptions{})
	var buf bytes.Buffer
	display := NewDisplay(DisplayOptions{Tracker: tracker, Output: &buf, ConsoleWidth: 200})

	tracker.Record(KindAgentStart, "Analyzer", "analyzer up", nil)
	tracker.Record(KindExecStart, "executor", "running script", nil)
	tracker.Record(KindExecSuccess, "executor", "script done", nil)
	display.flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "AGENT: analyzer up")
	require.Contains(t, lines[1], "EXEC: running script")
	require.Contains(t, lines[2], "DONE: script done")
}

func TestDisplayIncrementalFlush(t *testing.T) {
	tracker := NewTracker(TrackerOptions{})
	var buf bytes.Buffer
	display := NewDisplay(DisplayOptions{Tracker: tracker, Output: &buf})

	tracker.Record(KindInfo, "test", "first", nil)
	display.flush()
	tracker.Record(KindInfo, "test", "second", nil)
	display.flush()
	display.flush()

	require.Equal(t, 1, strings.Count(buf.String(), "first"))
	require.Equal(t, 1, strings.Count(buf.String(), "second"))
}

func TestDisplayDropsEvictedBacklog(t *testing.T) {
	tracker := NewTracker(TrackerOptions{Capacity: 5})
	var buf bytes.Buffer
	display := NewDisplay(DisplayOptions{Tracker: tracker, Output: &buf, ConsoleWidth: 200})

	for i := 0; i < 12; i++ {
		tracker.Record(KindInfo, "test", fmt.Sprintf("message %d", i), nil)
	}
	display.flush()

	// Records 0-6 were evicted before the display saw them.
	require.Equal(t, uint64(7), display.Dropped())
	require.Contains(t, buf.String(), "skipped 7 entries")
	require.NotContains(t, buf.String(), "message 6")
	require.Contains(t, buf.String(), "message 7")
	require.Contains(t, buf.String(), "message 11")
}

type failingWriter struct {
	failures int
	writes   int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.failures > 0 {
		w.failures--
		return 0, errors.New("stream broken")
	}
	return len(p), nil
}

func TestDisplayRenderFailureIsolated(t *testing.T) {
	tracker := NewTracker(TrackerOptions{})
	out := &failingWriter{failures: 1}
	display := NewDisplay(DisplayOptions{Tracker: tracker, Output: out})

	tracker.Record(KindInfo, "test", "first", nil)
	tracker.Record(KindInfo, "test", "second", nil)
	display.flush()

	// The first entry failed and was skipped; the loop continued.
	require.Equal(t, 1, display.RenderErrors())
	require.Equal(t, 2, out.writes)
}

func TestDisplayStartStopDrains(t *testing.T) {
	tracker := NewTracker(TrackerOptions{})
	var buf syncBuffer
	display := NewDisplay(DisplayOptions{
		Tracker:      tracker,
		Output:       &buf,
		PollInterval: time.Hour, // only the final drain will render
	})
	display.Start()
	display.Start() // idempotent

	tracker.Record(KindInfo, "test", "queued before stop", nil)
	display.Stop()

	require.Contains(t, buf.String(), "queued before stop")
}

func TestDisplayDoesNotBlockProducers(t *testing.T) {
	tracker := NewTracker(TrackerOptions{Capacity: 50})
	display := NewDisplay(DisplayOptions{
		Tracker:      tracker,
		Output:       &slowWriter{delay: 10 * time.Millisecond},
		PollInterval: time.Millisecond,
	})
	display.Start()
	defer display.Stop()

	start := time.Now()
	for i := 0; i < 1000; i++ {
		tracker.Record(KindInfo, "test", "m", nil)
	}
	// Appends complete promptly even though rendering is slow.
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestFormatRecordTruncation(t *testing.T) {
	record := NewRecord(KindInfo, "test", strings.Repeat("x", 300), nil)
	line := FormatRecord(record, 40)
	require.LessOrEqual(t, len([]rune(line)), 40)
	require.True(t, strings.HasSuffix(line, "..."))

	short := FormatRecord(NewRecord(KindInfo, "test", "hi", nil), 80)
	require.False(t, strings.HasSuffix(short, "..."))
	require.Contains(t, short, "INFO: hi")
}

// syncBuffer is a bytes.Buffer safe for cross-goroutine use in tests.
type syncBuffer struct {
	mutex sync.Mutex
	buf   bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.String()
}

type slowWriter struct {
	delay time.Duration
}

func (w *slowWriter) Write(p []byte) (int, error) {
	time.Sleep(w.delay)
	return len(p), nil
}
