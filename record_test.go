package activity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds {
		parsed, err := ParseKind(string(kind))
		require.NoError(t, err)
		require.Equal(t, kind, parsed)
	}

	_, err := ParseKind("NOT_A_KIND")
	require.Error(t, err)

	var kindErr *InvalidActivityKindError
	require.True(t, errors.As(err, &kindErr))
	require.Equal(t, "NOT_A_KIND", kindErr.Kind)
}

func TestKindLevels(t *testing.T) {
	require.Equal(t, LevelError, KindError.Level())
	require.Equal(t, LevelWarning, KindExecFailure.Level())
	require.Equal(t, LevelDebug, KindLLMCall.Level())
	require.Equal(t, LevelDebug, KindDebugAttempt.Level())
	require.Equal(t, LevelInfo, KindAgentStart.Level())
	require.Equal(t, LevelInfo, KindInfo.Level())
}

func TestNewRecordCopiesMetadata(t *testing.T) {
	metadata := map[string]any{"attempt": 1}
	record := NewRecord(KindDebugAttempt, "debugger", "debug attempt 1/3", metadata)

	metadata["attempt"] = 99
	require.Equal(t, 1, record.Metadata["attempt"])
	require.True(t, strings.HasPrefix(record.ID, "act_"))
	require.False(t, record.Timestamp.IsZero())
}

func TestRecordString(t *testing.T) {
	record := NewRecord(KindAgentStart, "Coder", `agent "Coder" started`, nil)
	s := record.String()
	require.Contains(t, s, "[Coder]")
	require.Contains(t, s, `agent "Coder" started`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"Warning": LevelWarning,
		"warn":    LevelWarning,
		"error":   LevelError,
	}
	for input, want := range cases {
		level, err := ParseLevel(input)
		require.NoError(t, err)
		require.Equal(t, want, level)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}
