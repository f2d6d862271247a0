package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoggingCallbacks(t *testing.T) {
	tracker := NewTracker(TrackerOptions{})
	logger := NewLogger(LoggerOptions{Tracker: tracker})
	hooks := NewLoggingCallbacks(logger)
	ctx := context.Background()

	hooks.OnStateEnter(ctx, "analyze")
	hooks.BeforeAgent(ctx, "Analyzer")
	hooks.OnLLMCall(ctx, "Analyzer", "gemini-2.5-pro")
	hooks.AfterAgent(ctx, "Analyzer", nil)
	hooks.BeforeExecution(ctx, 1)
	hooks.AfterExecution(ctx, false, 100*time.Millisecond)
	hooks.OnDebugAttempt(ctx, 1, 3)
	hooks.AfterExecution(ctx, true, 80*time.Millisecond)
	hooks.OnError(ctx, "executor", errors.New("boom"))

	summary := tracker.Summary()
	require.Equal(t, 9, summary.TotalRecords)
	require.Equal(t, 1, summary.AgentCallsTotal)
	require.Equal(t, 1, summary.AgentCallsCompleted)
	require.Equal(t, 1, summary.ExecutionsTotal)
	require.Equal(t, 1, summary.ExecutionsFailed)
	require.Equal(t, 1, summary.ExecutionsSucceeded)
	require.Equal(t, 1, summary.Errors)

	llm := tracker.OfKind(KindLLMCall)
	require.Len(t, llm, 1)
	require.Equal(t, "gemini-2.5-pro", llm[0].Metadata["model"])

	require.Equal(t, "analyze", tracker.CurrentStatus().CurrentNode)
}

func TestCallbackChain(t *testing.T) {
	trackerA := NewTracker(TrackerOptions{})
	trackerB := NewTracker(TrackerOptions{})
	chain := NewCallbackChain(
		NewLoggingCallbacks(NewLogger(LoggerOptions{Tracker: trackerA})),
		&BaseCallbacks{},
	)
	chain.Add(NewLoggingCallbacks(NewLogger(LoggerOptions{Tracker: trackerB})))

	chain.BeforeAgent(context.Background(), "Coder")

	require.Equal(t, 1, trackerA.Summary().AgentCallsTotal)
	require.Equal(t, 1, trackerB.Summary().AgentCallsTotal)
}

func TestBaseCallbacksIsNoop(t *testing.T) {
	var hooks PipelineCallbacks = &BaseCallbacks{}
	ctx := context.Background()

	hooks.BeforeAgent(ctx, "Coder")
	hooks.AfterAgent(ctx, "Coder", nil)
	hooks.OnStateEnter(ctx, "execute")
	hooks.BeforeExecution(ctx, 1)
	hooks.AfterExecution(ctx, true, time.Millisecond)
	hooks.OnLLMCall(ctx, "Coder", "")
	hooks.OnDebugAttempt(ctx, 1, 3)
	hooks.OnError(ctx, "x", errors.New("boom"))
}
