// Package hooks invokes external post-save hooks.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Options configures a hook invocation.
type Options struct {
	Command  string
	Action   string
	DataFile string
	// Task is the display form of the affected task, if any.
	Task    string
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command as `<command> <action> <data-file>`.
// The action, data file and task are also exported as TASKLINE_ACTION,
// TASKLINE_DATA_FILE and TASKLINE_TASK. Nothing runs when no command is
// configured or the data file does not exist.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" || opts.DataFile == "" {
		return Result{}, nil
	}

	info, err := os.Stat(opts.DataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("stat data file: %w", err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("data file path is a directory: %s", opts.DataFile)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, opts.Command, opts.Action, opts.DataFile)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Env = append(os.Environ(),
		"TASKLINE_ACTION="+opts.Action,
		"TASKLINE_DATA_FILE="+opts.DataFile,
		"TASKLINE_TASK="+opts.Task,
	)
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err = cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
