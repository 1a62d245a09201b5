// Package cmd implements the CLI command structure for taskline.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/command"
	"github.com/nibzard/taskline/internal/config"
	"github.com/nibzard/taskline/internal/logging"
	"github.com/nibzard/taskline/internal/loop"
	"github.com/nibzard/taskline/internal/storage"
	"github.com/nibzard/taskline/internal/task"
	"github.com/nibzard/taskline/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskline CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskline", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(fs, os.Stdout)
			return nil
		}
		printUsage(fs, os.Stderr)
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := newLogger(cfg)
	for _, w := range cws.Warnings {
		logger.Warn("config", "warning", w)
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "run" as default
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Execute the subcommand
	switch subcommand {
	case "run":
		return runCommand(ctx, cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "exec":
		return execCommand(ctx, cfg, logger, remainingArgs)
	case "ls":
		return lsCommand(cfg, logger, remainingArgs)
	case "export":
		return exportCommand(cfg, logger, remainingArgs)
	case "import":
		return importCommand(cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "completion":
		return completionCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newLogger builds the console logger from config. Logs go to stderr so
// they never mix with command output.
func newLogger(cfg *config.Config) *log.Logger {
	return logging.NewConsoleFromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

// resolveDataFile applies an optional positional data file argument.
func resolveDataFile(cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if len(args) == 1 {
		cfg.DataFile = args[0]
	}
	if !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(cfg.ProjectRoot, cfg.DataFile)
	}
	return nil
}

// runCommand starts an interactive session on stdin/stdout.
func runCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskline run", flag.ContinueOnError)
	uiMode := fs.String("ui", "", "UI mode (tui for terminal UI)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := resolveDataFile(cfg, fs.Args()); err != nil {
		return err
	}

	if *uiMode == "tui" {
		return runTUI(ctx, cfg, logger)
	}
	if *uiMode != "" {
		return fmt.Errorf("unknown ui mode: %s", *uiMode)
	}

	l, err := loop.New(cfg, loop.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("initializing session: %w", err)
	}
	defer l.Close()

	return l.Run(ctx, os.Stdin, os.Stdout)
}

// tuiCommand launches the terminal UI.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskline tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := resolveDataFile(cfg, fs.Args()); err != nil {
		return err
	}
	return runTUI(ctx, cfg, logger)
}

func runTUI(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	// Log lines and hook output would corrupt the full-screen view.
	logger.SetOutput(io.Discard)
	l, err := loop.New(cfg, loop.WithLogger(logger), loop.WithHookOutput(io.Discard))
	if err != nil {
		return fmt.Errorf("initializing session: %w", err)
	}
	defer l.Close()

	return ui.RunTUI(ctx, l)
}

// execCommand runs a single command line, e.g. `taskline exec todo read book`.
func execCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskline exec", flag.ContinueOnError)
	dataFile := fs.String("file", "", "Data file to use instead of the configured one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	line := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(line) == "" {
		return fmt.Errorf("exec requires a command, e.g. taskline exec todo read book")
	}
	var fileArgs []string
	if *dataFile != "" {
		fileArgs = []string{*dataFile}
	}
	if err := resolveDataFile(cfg, fileArgs); err != nil {
		return err
	}

	l, err := loop.New(cfg, loop.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("initializing session: %w", err)
	}
	defer l.Close()

	res, err := l.Step(ctx, line)
	if err != nil {
		return err
	}
	fmt.Println(res.Message())
	if res.SaveErr != nil {
		return res.SaveErr
	}
	return nil
}

// lsCommand prints the task list, optionally filtered by state.
func lsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskline ls", flag.ContinueOnError)
	status := fs.String("status", "", "Filter by status (pending|done)")
	kind := fs.String("type", "", "Filter by type (todo|deadline|event)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := resolveDataFile(cfg, fs.Args()); err != nil {
		return err
	}

	var kindFilter task.Kind
	if *kind != "" {
		k, ok := task.KindFromName(*kind)
		if !ok {
			return fmt.Errorf("unknown task type: %s (expected todo|deadline|event)", *kind)
		}
		kindFilter = k
	}
	switch *status {
	case "", "pending", "done":
	default:
		return fmt.Errorf("unknown status: %s (expected pending|done)", *status)
	}

	list, err := storage.New(cfg.DataFile, storage.WithLogger(logger)).Load()
	if err != nil {
		return err
	}

	res, err := command.Execute(command.List(), list, nil)
	if err != nil {
		return err
	}
	if *status == "" && *kind == "" {
		fmt.Println(res.Message())
		return nil
	}

	// Filtered output keeps each task's position in the full list so the
	// numbers still work with done and delete.
	printed := 0
	for i, t := range res.Tasks {
		if *status == "pending" && t.Done || *status == "done" && !t.Done {
			continue
		}
		if *kind != "" && t.Kind != kindFilter {
			continue
		}
		fmt.Printf("%d.%s\n", i+1, t)
		printed++
	}
	if printed == 0 {
		fmt.Println("No matching tasks.")
	}
	return nil
}

// tailCommand tails the latest session log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskline tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	workDir := cfg.ProjectRoot
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, workDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}

	if logPath == "" {
		fmt.Println("No session logs found. Enable them with session_log = true or --session-log.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskline version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprint(w, heredoc.Doc(`
		Taskline - a single-line task tracker

		Usage:
		  taskline [options] [command] [args]

		Commands:
		  run [file]          Start an interactive session (default command)
		  tui [file]          Launch the terminal UI
		  exec <command>      Run one command, e.g. exec deadline report /by Friday
		  ls [file]           List tasks
		  export [file]       Write tasks as JSON (stdout or -o path)
		  import <document>   Add tasks from a JSON export (- for stdin)
		  doctor              Check config, data file and log directory
		  tail                Tail the latest session log
		  config              Show the effective configuration
		  completion <shell>  Print a shell completion script (bash|zsh|fish|powershell)
		  version             Show version information
		  help                Show this help message

		Session commands:
		  todo <description>
		  deadline <description> /by <date>
		  event <description> /at <date>
		  list
		  done <task number>
		  delete <task number>
		  bye

		Global Options:
	`))
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	fmt.Fprint(w, heredoc.Doc(`

		Run Options:
		  -ui string
		        UI mode (tui for terminal UI)

		Ls Options:
		  -status string
		        Filter by status (pending|done)
		  -type string
		        Filter by type (todo|deadline|event)

		Export Options:
		  -o string
		        Output file (default stdout)

		Import Options:
		  -replace
		        Replace existing tasks instead of appending

		Tail Options:
		  -f, --follow
		        Follow the log (like tail -f)
		  -n int
		        Number of lines to show (0 = all)
	`))
}
