package cmd

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nibzard/taskline/internal/config"
)

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskline config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	cfg := cws.Config
	if file := cws.GetConfigFile(); file != "" {
		fmt.Printf("Config file: %s\n\n", file)
	} else {
		fmt.Print("Config file: (none)\n\n")
	}

	values := []struct {
		field string
		value any
	}{
		{"data_file", cfg.DataFile},
		{"log_dir", cfg.LogDir},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"log_caller", cfg.LogCaller},
		{"session_log", cfg.SessionLog},
		{"hook_command", cfg.HookCommand},
		{"prompt", cfg.Prompt},
		{"greeting", cfg.Greeting},
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, v := range values {
		fmt.Fprintf(tw, "%s\t%q\t(%s)\n", v.field, fmt.Sprint(v.value), cws.SourceOf(v.field))
	}
	return tw.Flush()
}
