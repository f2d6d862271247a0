package activity

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the tracking configuration.
const (
	DefaultPollInterval = 200 * time.Millisecond
	DefaultConsoleWidth = 72
)

// Config controls tracking, sink logging, and display behavior. It is
// typically owned by the surrounding CLI layer and loaded from YAML. The
// zero value plus ApplyDefaults yields a working configuration.
type Config struct {
	// LogLevel is the minimum severity forwarded to sinks. One of
	// "debug", "info", "warning", "error". Default "info".
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	// LogFile is an optional path for the append-only file sink. Empty
	// disables file output.
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty"`

	// EnableLogging toggles sink forwarding. Tracking is unaffected.
	// Default true.
	EnableLogging *bool `json:"enable_logging,omitempty" yaml:"enable_logging,omitempty"`

	// EnableRealtimeDisplay toggles the live console view. Default true.
	EnableRealtimeDisplay *bool `json:"enable_realtime_display,omitempty" yaml:"enable_realtime_display,omitempty"`

	// RecentBufferCapacity bounds the recent-records window. Default
	// DefaultCapacity.
	RecentBufferCapacity int `json:"recent_buffer_capacity,omitempty" yaml:"recent_buffer_capacity,omitempty"`

	// IterationNodes are the graph nodes that mark a new outer-loop pass.
	// Default DefaultIterationNodes.
	IterationNodes []string `json:"iteration_nodes,omitempty" yaml:"iteration_nodes,omitempty"`

	// DisplayPollInterval is how often the display polls the store tail.
	DisplayPollInterval time.Duration `json:"display_poll_interval,omitempty" yaml:"display_poll_interval,omitempty"`

	// ConsoleWidth bounds rendered line length.
	ConsoleWidth int `json:"console_width,omitempty" yaml:"console_width,omitempty"`
}

// ApplyDefaults fills unset fields with their documented defaults.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = LevelInfo.String()
	}
	if c.EnableLogging == nil {
		c.EnableLogging = boolPtr(true)
	}
	if c.EnableRealtimeDisplay == nil {
		c.EnableRealtimeDisplay = boolPtr(true)
	}
	if c.RecentBufferCapacity == 0 {
		c.RecentBufferCapacity = DefaultCapacity
	}
	if c.IterationNodes == nil {
		c.IterationNodes = DefaultIterationNodes
	}
	if c.DisplayPollInterval == 0 {
		c.DisplayPollInterval = DefaultPollInterval
	}
	if c.ConsoleWidth == 0 {
		c.ConsoleWidth = DefaultConsoleWidth
	}
}

// Validate checks the configuration for nonsensical values.
func (c *Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := ParseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	if c.RecentBufferCapacity < 0 {
		return fmt.Errorf("recent_buffer_capacity must be non-negative, got %d", c.RecentBufferCapacity)
	}
	if c.DisplayPollInterval < 0 {
		return fmt.Errorf("display_poll_interval must be non-negative, got %s", c.DisplayPollInterval)
	}
	return nil
}

// Level returns the parsed minimum sink severity.
func (c *Config) Level() Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return LevelInfo
	}
	return level
}

// LoggingEnabled reports whether sink forwarding is on.
func (c *Config) LoggingEnabled() bool {
	return c.EnableLogging == nil || *c.EnableLogging
}

// RealtimeDisplayEnabled reports whether the live console view is on.
func (c *Config) RealtimeDisplayEnabled() bool {
	return c.EnableRealtimeDisplay == nil || *c.EnableRealtimeDisplay
}

// LoadConfigFile loads a configuration from a YAML file, applying defaults
// and validating the result.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadConfigString(string(data))
}

// LoadConfigString loads a configuration from a YAML string.
func LoadConfigString(data string) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(data), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.ApplyDefaults()
	return &config, nil
}

func boolPtr(v bool) *bool {
	return &v
}
