package config

import "flag"

// parseFlags defines the config flags on fs, parses args and records the
// flag source for every flag the user set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskline", flag.ContinueOnError)
	}

	// Flag names differ from TOML keys; map them back for source tracking.
	fields := map[string]string{
		"data":           "data_file",
		"log-dir":        "log_dir",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
		"session-log":    "session_log",
		"hook":           "hook_command",
		"prompt":         "prompt",
	}

	// Paths
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Path to the task data file")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")
	fs.BoolVar(&cfg.SessionLog, "session-log", cfg.SessionLog, "Record commands to a JSONL session log")

	// Hooks
	fs.StringVar(&cfg.HookCommand, "hook", cfg.HookCommand, "Command to run after each save")

	// Interactive
	fs.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "Prompt shown before each command")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := fields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
