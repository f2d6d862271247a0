package activity

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Display renders records as they are appended, as a live console tail. It
// is a polling consumer: it reads the tracker tail on an interval and holds
// no lock producers need, so rendering latency can never create
// backpressure on Record callers. If the display falls more than a full
// buffer behind, the evicted entries are skipped and counted as dropped;
// entries are never reordered.
type Display struct {
	tracker  *Tracker
	out      io.Writer
	interval time.Duration
	width    int
	colored  bool

	mutex      sync.Mutex
	lastSeq    uint64
	dropped    uint64
	renderErrs int

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool
}

// DisplayOptions configures a Display.
type DisplayOptions struct {
	// Tracker to tail. Nil selects the process-wide default tracker.
	Tracker *Tracker

	// Output defaults to stdout. Color is used only when the output is a
	// terminal.
	Output io.Writer

	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration

	// ConsoleWidth bounds rendered line length. Defaults to
	// DefaultConsoleWidth.
	ConsoleWidth int
}

// NewDisplay creates a display with the given options.
func NewDisplay(opts DisplayOptions) *Display {
	if opts.Tracker == nil {
		opts.Tracker = Default()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.ConsoleWidth <= 0 {
		opts.ConsoleWidth = DefaultConsoleWidth
	}
	colored := false
	if f, ok := opts.Output.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd())
	}
	return &Display{
		tracker:  opts.Tracker,
		out:      opts.Output,
		interval: opts.PollInterval,
		width:    opts.ConsoleWidth,
		colored:  colored,
		done:     make(chan struct{}),
	}
}

// Start launches the polling goroutine. Starting an already-started display
// is a no-op.
func (d *Display) Start() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.started {
		return
	}
	d.started = true
	d.wg.Add(1)
	go d.loop()
}

// Stop drains the records appended so far, then shuts the display down. It
// does not wait for records appended after the stop request.
func (d *Display) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
	})
	d.wg.Wait()
}

// Dropped returns how many entries were skipped because the display fell
// behind the buffer.
func (d *Display) Dropped() uint64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.dropped
}

// RenderErrors returns how many entries failed to render and were skipped.
func (d *Display) RenderErrors() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.renderErrs
}

func (d *Display) loop() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			d.flush()
			return
		case <-ticker.C:
			d.flush()
		}
	}
}

// flush renders everything appended since the last poll, in append order.
func (d *Display) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	records, latest, gap := d.pending()
	if gap > 0 {
		d.dropped += gap
		fmt.Fprintf(d.out, "... skipped %d entries ...\n", gap)
	}
	for _, record := range records {
		if err := d.render(record); err != nil {
			d.renderErrs++
		}
	}
	d.lastSeq = latest
}

// pending returns the still-buffered records newer than the display cursor
// plus the size of any gap the buffer has already evicted.
func (d *Display) pending() (records []Record, latest, gap uint64) {
	records, latest = d.tracker.After(d.lastSeq)
	if len(records) > 0 {
		gap = records[0].Seq - d.lastSeq - 1
	} else if latest > d.lastSeq {
		gap = latest - d.lastSeq
	}
	return records, latest, gap
}

func (d *Display) render(record Record) error {
	line := FormatRecord(record, d.width)
	if c := kindColor(record.Kind); d.colored && c != nil {
		line = c.Sprint(line)
	}
	if _, err := fmt.Fprintln(d.out, line); err != nil {
		return &RenderError{Seq: record.Seq, Err: err}
	}
	return nil
}

// FormatRecord renders one record as a console line:
//
//	[HH:MM:SS] <glyph> <TAG>: <message>
//
// Lines longer than width are truncated with an ellipsis.
func FormatRecord(record Record, width int) string {
	glyph, tag := kindGlyph(record.Kind)
	line := fmt.Sprintf("[%s] %s %s: %s",
		record.Timestamp.Format("15:04:05"), glyph, tag, record.Message)
	if width > 3 && len([]rune(line)) > width {
		runes := []rune(line)
		line = string(runes[:width-3]) + "..."
	}
	return line
}

func kindGlyph(kind Kind) (glyph, tag string) {
	switch kind {
	case KindError:
		return "❌", "ERROR"
	case KindAgentStart, KindAgentEnd:
		return "🤖", "AGENT"
	case KindStateEnter:
		return "🔄", "STATE"
	case KindExecStart:
		return "▶️ ", "EXEC"
	case KindExecSuccess:
		return "✅", "DONE"
	case KindExecFailure:
		return "❌", "FAIL"
	case KindLLMCall:
		return "💬", "LLM"
	case KindDebugAttempt:
		return "🔧", "DEBUG"
	default:
		return "ℹ️ ", "INFO"
	}
}

func kindColor(kind Kind) *color.Color {
	switch kind {
	case KindError, KindExecFailure:
		return color.New(color.FgRed)
	case KindExecSuccess:
		return color.New(color.FgGreen)
	case KindAgentStart, KindAgentEnd:
		return color.New(color.FgCyan)
	case KindStateEnter:
		return color.New(color.FgBlue)
	case KindDebugAttempt:
		return color.New(color.FgYellow)
	default:
		return nil
	}
}
