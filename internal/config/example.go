package config

import "github.com/MakeNowJust/heredoc/v2"

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return heredoc.Doc(`
		# Taskline configuration file
		# Values can be overridden by environment variables (TASKLINE_*) or CLI flags

		# Task data file (relative to the current directory)
		data_file = "data/tasks.txt"

		# Log directory for session logs (supports ~ expansion and %VAR% on Windows)
		log_dir = "~/.taskline"

		# Console logging
		log_level = "info"       # debug, info, warn, error
		log_format = "text"      # text, json, logfmt
		log_timestamps = false
		log_caller = false

		# Record every command to a JSONL file under log_dir
		session_log = false

		# Command run after each successful save; receives the action and data file
		# hook_command = "/path/to/hook.sh"

		# Interactive session
		prompt = "> "
		greeting = "Hello! What can I do for you?"
	`)
}
