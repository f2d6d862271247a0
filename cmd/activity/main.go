package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/deepnoodle-ai/activity"
	"github.com/fatih/color"
)

type cliOptions struct {
	ConfigFile string
	LogLevel   string
	LogFile    string
	JSONLFile  string
	Capacity   int
	NoDisplay  bool
	Replay     string
}

func main() {
	opts := parseFlags()

	config, err := loadConfig(opts)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if opts.Replay != "" {
		if err := replay(opts.Replay, config); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	if err := simulate(opts, config); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}

func parseFlags() cliOptions {
	var opts cliOptions
	flag.StringVar(&opts.ConfigFile, "config", "", "Path to YAML tracking config")
	flag.StringVar(&opts.LogLevel, "level", "", "Minimum sink severity (debug|info|warning|error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Append-only text log file")
	flag.StringVar(&opts.JSONLFile, "jsonl", "", "JSONL activity log file (replayable)")
	flag.IntVar(&opts.Capacity, "capacity", 0, "Recent-records buffer capacity")
	flag.BoolVar(&opts.NoDisplay, "no-display", false, "Disable the real-time display")
	flag.StringVar(&opts.Replay, "replay", "", "Replay a JSONL activity log instead of simulating")
	flag.Parse()
	return opts
}

func loadConfig(opts cliOptions) (*activity.Config, error) {
	var config *activity.Config
	if opts.ConfigFile != "" {
		loaded, err := activity.LoadConfigFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	} else {
		config = &activity.Config{}
		config.ApplyDefaults()
	}

	// Flags override the config file.
	if opts.LogLevel != "" {
		config.LogLevel = opts.LogLevel
	}
	if opts.LogFile != "" {
		config.LogFile = opts.LogFile
	}
	if opts.Capacity > 0 {
		config.RecentBufferCapacity = opts.Capacity
	}
	if opts.NoDisplay {
		disabled := false
		config.EnableRealtimeDisplay = &disabled
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// simulate drives a scripted planner/coder/verifier pass through the
// tracking callbacks, with the live display on, then prints the summary.
func simulate(opts cliOptions, config *activity.Config) error {
	tracker := activity.NewTracker(activity.TrackerOptions{
		Capacity:       config.RecentBufferCapacity,
		IterationNodes: config.IterationNodes,
	})

	var sinks []activity.Sink
	if config.LoggingEnabled() && config.LogFile != "" {
		sink, err := activity.NewFileSink(config.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		sinks = append(sinks, sink)
		color.Blue("Log file: %s", config.LogFile)
	}
	if config.LoggingEnabled() && opts.JSONLFile != "" {
		sink, err := activity.NewJSONLSink(opts.JSONLFile)
		if err != nil {
			return fmt.Errorf("failed to open JSONL file: %w", err)
		}
		sinks = append(sinks, sink)
		color.Blue("JSONL log: %s", opts.JSONLFile)
	}

	logger := activity.NewLogger(activity.LoggerOptions{
		Tracker:  tracker,
		MinLevel: config.Level(),
		Sinks:    sinks,
	})
	defer logger.Close()

	var display *activity.Display
	if config.RealtimeDisplayEnabled() {
		display = activity.NewDisplay(activity.DisplayOptions{
			Tracker:      tracker,
			PollInterval: config.DisplayPollInterval,
			ConsoleWidth: config.ConsoleWidth,
		})
		display.Start()
	}

	runScriptedPipeline(context.Background(), activity.NewLoggingCallbacks(logger))

	if display != nil {
		display.Stop()
	}
	activity.FprintStatus(os.Stdout, tracker.CurrentStatus(), config.ConsoleWidth)
	activity.FprintSummary(os.Stdout, tracker, config.ConsoleWidth)
	return nil
}

// runScriptedPipeline emits the event sequence of one refinement run:
// analyze, plan, code, a failing execution repaired by the debugger, a
// routed second pass, and finalization.
func runScriptedPipeline(ctx context.Context, hooks activity.PipelineCallbacks) {
	step := func(node, agent string) {
		hooks.OnStateEnter(ctx, node)
		hooks.BeforeAgent(ctx, agent)
		hooks.OnLLMCall(ctx, agent, "gemini-2.5-pro")
		pause()
		hooks.AfterAgent(ctx, agent, nil)
	}

	step("analyze", "Analyzer")
	step("planner_initial", "Planner")
	step("coder_initial", "Coder")

	hooks.OnStateEnter(ctx, "execute")
	hooks.BeforeExecution(ctx, 1)
	pause()
	hooks.AfterExecution(ctx, false, 120*time.Millisecond)
	hooks.OnDebugAttempt(ctx, 1, 3)
	hooks.BeforeExecution(ctx, 2)
	pause()
	hooks.AfterExecution(ctx, true, 95*time.Millisecond)

	step("verify", "Verifier")
	step("router", "Router")
	step("planner_next", "Planner")
	step("coder_next", "Coder")

	hooks.OnStateEnter(ctx, "execute")
	hooks.BeforeExecution(ctx, 1)
	pause()
	hooks.AfterExecution(ctx, true, 88*time.Millisecond)

	step("verify", "Verifier")
	step("finalize", "Finalyzer")
}

func pause() {
	time.Sleep(50 * time.Millisecond)
}

// replay re-renders a recorded JSONL session and recomputes its summary.
func replay(path string, config *activity.Config) error {
	entries, err := activity.LoadHistory(path)
	if err != nil {
		return err
	}
	color.Cyan("Replaying %d entries from %s", len(entries), path)

	tracker := activity.NewTracker(activity.TrackerOptions{
		Capacity:       config.RecentBufferCapacity,
		IterationNodes: config.IterationNodes,
	})
	for _, entry := range entries {
		record := entry.Record
		fmt.Println(activity.FormatRecord(record, config.ConsoleWidth))
		if _, err := tracker.Record(record.Kind, record.Source, record.Message, record.Metadata); err != nil {
			color.Yellow("Skipping entry %s: %v", record.ID, err)
		}
	}

	activity.FprintStatus(os.Stdout, tracker.CurrentStatus(), config.ConsoleWidth)
	activity.FprintSummary(os.Stdout, tracker, config.ConsoleWidth)
	return nil
}
