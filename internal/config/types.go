package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
	// Warnings collects non-fatal problems such as unknown keys.
	Warnings []string
}

// Default values.
const (
	DefaultDataFile  = "data/tasks.txt"
	DefaultLogDir    = "~/.taskline"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultPrompt    = "> "
	DefaultGreeting  = "Hello! What can I do for you?"
)

// Config holds the full configuration for taskline.
type Config struct {
	// Paths
	DataFile string `toml:"data_file"`
	LogDir   string `toml:"log_dir"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// SessionLog records every command of a session as JSONL under LogDir.
	SessionLog bool `toml:"session_log"`

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Interactive session
	Prompt   string `toml:"prompt"`
	Greeting string `toml:"greeting"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"data_file",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"session_log",
		"hook_command",
		"prompt",
		"greeting",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
	cfg.SessionLog = false
	cfg.HookCommand = ""
	cfg.Prompt = DefaultPrompt
	cfg.Greeting = DefaultGreeting
}
