package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	var config Config
	config.ApplyDefaults()

	require.Equal(t, "INFO", config.LogLevel)
	require.Equal(t, LevelInfo, config.Level())
	require.True(t, config.LoggingEnabled())
	require.True(t, config.RealtimeDisplayEnabled())
	require.Equal(t, DefaultCapacity, config.RecentBufferCapacity)
	require.Equal(t, DefaultIterationNodes, config.IterationNodes)
	require.Equal(t, DefaultPollInterval, config.DisplayPollInterval)
	require.Equal(t, DefaultConsoleWidth, config.ConsoleWidth)
}

func TestLoadConfigString(t *testing.T) {
	config, err := LoadConfigString(`
log_level: debug
log_file: /tmp/run.log
enable_realtime_display: false
recent_buffer_capacity: 250
iteration_nodes: [router, planner_next]
display_poll_interval: 1s
`)
	require.NoError(t, err)
	require.Equal(t, LevelDebug, config.Level())
	require.Equal(t, "/tmp/run.log", config.LogFile)
	require.True(t, config.LoggingEnabled())
	require.False(t, config.RealtimeDisplayEnabled())
	require.Equal(t, 250, config.RecentBufferCapacity)
	require.Equal(t, []string{"router", "planner_next"}, config.IterationNodes)
	require.Equal(t, time.Second, config.DisplayPollInterval)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracking.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warning\n"), 0644))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, LevelWarning, config.Level())

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	t.Run("bad level", func(t *testing.T) {
		_, err := LoadConfigString("log_level: loud\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("negative capacity", func(t *testing.T) {
		_, err := LoadConfigString("recent_buffer_capacity: -1\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "recent_buffer_capacity")
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadConfigString("log_level: [\n")
		require.Error(t, err)
	})
}
