package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKLINE_* environment variables and
// records the environment as the source of every value it sets.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKLINE_DATA"); v != "" {
		cfg.DataFile = v
		setEnv("data_file")
	}
	if v := os.Getenv("TASKLINE_LOG_DIR"); v != "" {
		cfg.LogDir = v
		setEnv("log_dir")
	}
	if v := os.Getenv("TASKLINE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TASKLINE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TASKLINE_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TASKLINE_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
	if v := os.Getenv("TASKLINE_SESSION_LOG"); v != "" {
		cfg.SessionLog = boolFromString(v)
		setEnv("session_log")
	}
	if v := os.Getenv("TASKLINE_HOOK"); v != "" {
		cfg.HookCommand = v
		setEnv("hook_command")
	}
	if v, ok := os.LookupEnv("TASKLINE_PROMPT"); ok {
		cfg.Prompt = v
		setEnv("prompt")
	}
	if v := os.Getenv("TASKLINE_GREETING"); v != "" {
		cfg.Greeting = v
		setEnv("greeting")
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
