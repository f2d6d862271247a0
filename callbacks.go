package activity

import (
	"context"
	"time"
)

// PipelineCallbacks is the instrumentation boundary the orchestration graph
// drives. The graph itself is an external collaborator; it calls these
// hooks as agents run, nodes transition, and code executes, and the hooks
// convert the events into tracked records.
type PipelineCallbacks interface {
	BeforeAgent(ctx context.Context, agent string)
	AfterAgent(ctx context.Context, agent string, err error)
	OnStateEnter(ctx context.Context, node string)
	BeforeExecution(ctx context.Context, attempt int)
	AfterExecution(ctx context.Context, success bool, duration time.Duration)
	OnLLMCall(ctx context.Context, agent string, model string)
	OnDebugAttempt(ctx context.Context, attempt, maxAttempts int)
	OnError(ctx context.Context, source string, err error)
}

// BaseCallbacks provides a default implementation that does nothing. Embed
// it to implement only the hooks you care about.
type BaseCallbacks struct{}

func (b *BaseCallbacks) BeforeAgent(ctx context.Context, agent string) {
	// noop
}

func (b *BaseCallbacks) AfterAgent(ctx context.Context, agent string, err error) {
	// noop
}

func (b *BaseCallbacks) OnStateEnter(ctx context.Context, node string) {
	// noop
}

func (b *BaseCallbacks) BeforeExecution(ctx context.Context, attempt int) {
	// noop
}

func (b *BaseCallbacks) AfterExecution(ctx context.Context, success bool, duration time.Duration) {
	// noop
}

func (b *BaseCallbacks) OnLLMCall(ctx context.Context, agent string, model string) {
	// noop
}

func (b *BaseCallbacks) OnDebugAttempt(ctx context.Context, attempt, maxAttempts int) {
	// noop
}

func (b *BaseCallbacks) OnError(ctx context.Context, source string, err error) {
	// noop
}

// CallbackChain fans each hook out to multiple callback implementations.
type CallbackChain struct {
	callbacks []PipelineCallbacks
}

// NewCallbackChain creates a new callback chain.
func NewCallbackChain(callbacks ...PipelineCallbacks) *CallbackChain {
	return &CallbackChain{callbacks: callbacks}
}

// Add adds a callback to the chain.
func (c *CallbackChain) Add(callback PipelineCallbacks) {
	c.callbacks = append(c.callbacks, callback)
}

func (c *CallbackChain) BeforeAgent(ctx context.Context, agent string) {
	for _, callback := range c.callbacks {
		callback.BeforeAgent(ctx, agent)
	}
}

func (c *CallbackChain) AfterAgent(ctx context.Context, agent string, err error) {
	for _, callback := range c.callbacks {
		callback.AfterAgent(ctx, agent, err)
	}
}

func (c *CallbackChain) OnStateEnter(ctx context.Context, node string) {
	for _, callback := range c.callbacks {
		callback.OnStateEnter(ctx, node)
	}
}

func (c *CallbackChain) BeforeExecution(ctx context.Context, attempt int) {
	for _, callback := range c.callbacks {
		callback.BeforeExecution(ctx, attempt)
	}
}

func (c *CallbackChain) AfterExecution(ctx context.Context, success bool, duration time.Duration) {
	for _, callback := range c.callbacks {
		callback.AfterExecution(ctx, success, duration)
	}
}

func (c *CallbackChain) OnLLMCall(ctx context.Context, agent string, model string) {
	for _, callback := range c.callbacks {
		callback.OnLLMCall(ctx, agent, model)
	}
}

func (c *CallbackChain) OnDebugAttempt(ctx context.Context, attempt, maxAttempts int) {
	for _, callback := range c.callbacks {
		callback.OnDebugAttempt(ctx, attempt, maxAttempts)
	}
}

func (c *CallbackChain) OnError(ctx context.Context, source string, err error) {
	for _, callback := range c.callbacks {
		callback.OnError(ctx, source, err)
	}
}

// LoggingCallbacks forwards every pipeline event to a Logger, which tracks
// it and mirrors it to the configured sinks.
type LoggingCallbacks struct {
	logger *Logger
}

// NewLoggingCallbacks creates callbacks backed by the given logger. A nil
// logger selects a logger on the process-wide default tracker.
func NewLoggingCallbacks(logger *Logger) *LoggingCallbacks {
	if logger == nil {
		logger = NewLogger(LoggerOptions{})
	}
	return &LoggingCallbacks{logger: logger}
}

func (l *LoggingCallbacks) BeforeAgent(ctx context.Context, agent string) {
	l.logger.AgentStart(agent, nil)
}

func (l *LoggingCallbacks) AfterAgent(ctx context.Context, agent string, err error) {
	var metadata map[string]any
	if err != nil {
		metadata = map[string]any{"error": err.Error()}
	}
	l.logger.AgentEnd(agent, metadata)
}

func (l *LoggingCallbacks) OnStateEnter(ctx context.Context, node string) {
	l.logger.StateEnter(node, nil)
}

func (l *LoggingCallbacks) BeforeExecution(ctx context.Context, attempt int) {
	l.logger.ExecStart(map[string]any{"attempt": attempt})
}

func (l *LoggingCallbacks) AfterExecution(ctx context.Context, success bool, duration time.Duration) {
	l.logger.ExecResult(success, duration, nil)
}

func (l *LoggingCallbacks) OnLLMCall(ctx context.Context, agent string, model string) {
	var metadata map[string]any
	if model != "" {
		metadata = map[string]any{"model": model}
	}
	l.logger.LLMCall(agent, metadata)
}

func (l *LoggingCallbacks) OnDebugAttempt(ctx context.Context, attempt, maxAttempts int) {
	l.logger.DebugAttempt(attempt, maxAttempts, nil)
}

func (l *LoggingCallbacks) OnError(ctx context.Context, source string, err error) {
	l.logger.Error(err.Error(), map[string]any{"source": source})
}
