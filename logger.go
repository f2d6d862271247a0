package activity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// NewConsoleHandler returns a slog handler that writes colorized output
// when w is a terminal.
func NewConsoleHandler(w io.Writer, level Level) slog.Handler {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level.Slog(),
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})
}

// NewConsoleLogger returns a logger that writes to stdout with colorized
// output if stdout is a terminal.
func NewConsoleLogger(level Level) *slog.Logger {
	return slog.New(NewConsoleHandler(os.Stdout, level))
}

// NewJSONLogger returns a logger that writes to w in JSON format.
func NewJSONLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, nil))
}

// LoggerOptions configures a Logger.
type LoggerOptions struct {
	// Tracker receives every logged event as a record. Nil selects the
	// process-wide default tracker.
	Tracker *Tracker

	// Name is the source tag used for plain leveled calls. Default
	// "pipeline".
	Name string

	// MinLevel is the minimum severity forwarded to sinks. Tracking is
	// unaffected by this threshold.
	MinLevel Level

	// Sinks receive severity-filtered records. Optional.
	Sinks []Sink

	// Console, when set, mirrors messages through a slog logger.
	Console *slog.Logger
}

// Logger adapts leveled log calls and domain events into tracker records,
// and independently mirrors them to severity-filtered sinks. No failure in
// the logger propagates to the pipeline component that triggered the call.
type Logger struct {
	tracker  *Tracker
	name     string
	minLevel Level
	sinks    []Sink
	console  *slog.Logger
}

// NewLogger creates a logger with the given options.
func NewLogger(opts LoggerOptions) *Logger {
	if opts.Tracker == nil {
		opts.Tracker = Default()
	}
	if opts.Name == "" {
		opts.Name = "pipeline"
	}
	return &Logger{
		tracker:  opts.Tracker,
		name:     opts.Name,
		minLevel: opts.MinLevel,
		sinks:    opts.Sinks,
		console:  opts.Console,
	}
}

// Tracker returns the tracker this logger records into.
func (l *Logger) Tracker() *Tracker {
	return l.tracker
}

// log records the event and forwards it to the sinks when its severity
// passes the configured minimum. The level is floored at the kind's
// implicit minimum so an EXEC_FAILURE is never filed below WARNING.
func (l *Logger) log(level Level, kind Kind, source, message string, metadata map[string]any) {
	if floor := kind.Level(); level < floor {
		level = floor
	}
	record, err := l.tracker.Record(kind, source, message, metadata)
	if err != nil {
		// Only reachable with an invalid kind, which the helpers never
		// produce. Surface it on the console rather than dropping silently.
		if l.console != nil {
			l.console.Error("activity record rejected", "error", err)
		}
		return
	}
	if l.console != nil {
		l.console.Log(context.Background(), level.Slog(), message, "source", source, "kind", string(kind))
	}
	if level >= l.minLevel {
		l.forward(level, record)
	}
}

func (l *Logger) forward(level Level, record Record) {
	for _, sink := range l.sinks {
		if err := sink.Write(level, record); err != nil {
			l.sinkFailure(sink, err)
		}
	}
}

// sinkFailure converts a sink write failure into one internal ERROR record
// so the failure is itself observable. The failure record goes to the
// tracker only, never back to the sinks, so a persistently broken sink
// cannot recurse.
func (l *Logger) sinkFailure(sink Sink, err error) {
	werr := &SinkWriteError{Sink: sink.Name(), Err: err}
	l.tracker.Record(KindError, "tracking", werr.Error(), map[string]any{
		"sink":  sink.Name(),
		"error": err.Error(),
	})
	if l.console != nil {
		l.console.Warn("activity sink write failed", "sink", sink.Name(), "error", err)
	}
}

// Close closes all attached sinks.
func (l *Logger) Close() error {
	var firstErr error
	for _, sink := range l.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Debug logs a debug-level message.
func (l *Logger) Debug(message string) {
	l.log(LevelDebug, KindInfo, l.name, message, nil)
}

// Info logs an info-level message.
func (l *Logger) Info(message string) {
	l.log(LevelInfo, KindInfo, l.name, message, nil)
}

// Warning logs a warning-level message.
func (l *Logger) Warning(message string) {
	l.log(LevelWarning, KindInfo, l.name, message, nil)
}

// Error logs an error. It is always tracked as an ERROR record.
func (l *Logger) Error(message string, metadata map[string]any) {
	l.log(LevelError, KindError, l.name, message, metadata)
}

// AgentStart logs the start of an agent invocation.
func (l *Logger) AgentStart(agent string, metadata map[string]any) {
	l.log(LevelInfo, KindAgentStart, agent, fmt.Sprintf("agent %q started", agent), metadata)
}

// AgentEnd logs the completion of an agent invocation.
func (l *Logger) AgentEnd(agent string, metadata map[string]any) {
	l.log(LevelInfo, KindAgentEnd, agent, fmt.Sprintf("agent %q completed", agent), metadata)
}

// StateEnter logs a transition into a graph node.
func (l *Logger) StateEnter(node string, metadata map[string]any) {
	l.log(LevelInfo, KindStateEnter, node, fmt.Sprintf("entering node %q", node), metadata)
}

// ExecStart logs the start of a code execution.
func (l *Logger) ExecStart(metadata map[string]any) {
	l.log(LevelInfo, KindExecStart, "executor", "starting code execution", metadata)
}

// ExecResult logs the outcome of a code execution. Failures are filed at
// WARNING severity.
func (l *Logger) ExecResult(success bool, duration time.Duration, metadata map[string]any) {
	kind := KindExecSuccess
	message := "code execution succeeded"
	if !success {
		kind = KindExecFailure
		message = "code execution failed"
	}
	metadata = copyMetadata(metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["success"] = success
	metadata["duration"] = duration.String()
	l.log(LevelInfo, kind, "executor", message, metadata)
}

// LLMCall logs a model invocation on behalf of an agent. Filed at DEBUG
// severity by default.
func (l *Logger) LLMCall(agent string, metadata map[string]any) {
	l.log(LevelDebug, KindLLMCall, agent, fmt.Sprintf("LLM call for %q", agent), metadata)
}

// DebugAttempt logs one pass of the debugger loop.
func (l *Logger) DebugAttempt(attempt, maxAttempts int, metadata map[string]any) {
	metadata = copyMetadata(metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["attempt"] = attempt
	metadata["max_attempts"] = maxAttempts
	l.log(LevelInfo, KindDebugAttempt, "debugger",
		fmt.Sprintf("debug attempt %d/%d", attempt, maxAttempts), metadata)
}
