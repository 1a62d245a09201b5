// Package loop runs an interactive task session: it reads command lines,
// executes them against the task list and prints the responses.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/command"
	"github.com/nibzard/taskline/internal/config"
	"github.com/nibzard/taskline/internal/hooks"
	"github.com/nibzard/taskline/internal/logging"
	"github.com/nibzard/taskline/internal/parser"
	"github.com/nibzard/taskline/internal/storage"
	"github.com/nibzard/taskline/internal/task"
)

// Loop manages one session over a task list and its data file.
type Loop struct {
	cfg     *config.Config
	store   *storage.Store
	list    *task.List
	logger  *log.Logger
	session *logging.SessionLogger
	hookOut io.Writer
	loadErr error
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the console logger used for warnings and errors.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHookOutput sends hook stdout and stderr to w.
func WithHookOutput(w io.Writer) Option {
	return func(l *Loop) {
		l.hookOut = w
	}
}

// New loads the task list from cfg.DataFile and prepares a session. A data
// file that cannot be read is not fatal: the session starts with an empty
// list and LoadErr reports the problem.
func New(cfg *config.Config, opts ...Option) (*Loop, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	l := &Loop{
		cfg:    cfg,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.store = storage.New(cfg.DataFile, storage.WithLogger(l.logger))
	list, err := l.store.Load()
	if err != nil {
		l.logger.Warn("starting with an empty task list", "err", err)
		l.loadErr = err
	}
	l.list = list

	if cfg.SessionLog {
		session, err := logging.NewSessionLogger(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			// Non-fatal: the session works without a log.
			l.logger.Warn("session log disabled", "err", err)
		} else {
			l.session = session
			session.Logger().Info("session started", "data_file", cfg.DataFile, "tasks", list.Len())
		}
	}

	return l, nil
}

// Close flushes and closes the session log.
func (l *Loop) Close() error {
	if l.session == nil {
		return nil
	}
	l.session.Logger().Info("session ended", "tasks", l.list.Len())
	err := l.session.Close()
	l.session = nil
	return err
}

// Tasks returns a snapshot of the current list.
func (l *Loop) Tasks() []task.Task {
	return l.list.Tasks()
}

// DataFile returns the path the list is saved to.
func (l *Loop) DataFile() string {
	return l.store.Path()
}

// LoadErr returns the error that forced an empty start, if any.
func (l *Loop) LoadErr() error {
	return l.loadErr
}

// SessionID returns the id of the session log, or "" when it is disabled.
func (l *Loop) SessionID() string {
	if l.session == nil {
		return ""
	}
	return l.session.SessionID
}

// Step parses and executes one input line. Parse and index errors leave
// the list unchanged. A failed save is reported through Result.SaveErr.
func (l *Loop) Step(ctx context.Context, line string) (command.Result, error) {
	cmd, err := parser.Parse(line)
	if err != nil {
		l.record("rejected", "input", line, "err", err)
		return command.Result{}, err
	}

	res, err := command.Execute(cmd, l.list, l.store)
	if err != nil {
		l.record("failed", "input", line, "command", cmd.Kind.String(), "err", err)
		return command.Result{}, err
	}

	if res.SaveErr != nil {
		l.logger.Error("could not save tasks", "path", l.store.Path(), "err", res.SaveErr)
	}
	l.record("executed", "input", line, "command", res.Kind.String(), "count", res.Count, "saved", res.Saved)

	if res.Saved {
		l.runHook(ctx, res)
	}
	return res, nil
}

// Run prints the greeting, then reads commands from in until an exit
// command, end of input or cancellation of ctx.
func (l *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if l.cfg.Greeting != "" {
		fmt.Fprintln(out, l.cfg.Greeting)
	}
	if l.loadErr != nil {
		fmt.Fprintln(out, LoadWarning(l.loadErr))
	}

	// The reader goroutine may stay blocked in Scan after Run returns; stop
	// only keeps it from blocking on the send.
	stop := make(chan struct{})
	defer close(stop)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, l.cfg.Prompt)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			select {
			case err := <-scanErr:
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			default:
			}
			return nil
		}

		res, err := l.Step(ctx, line)
		if err != nil {
			fmt.Fprintln(out, ErrorMessage(err))
			continue
		}
		fmt.Fprintln(out, res.Message())
		if res.SaveErr != nil {
			fmt.Fprintln(out, SaveWarning(res.SaveErr))
		}
		if res.Exit {
			return nil
		}
	}
}

// ErrorMessage renders an error for the user.
func ErrorMessage(err error) string {
	return "OOPS!!! " + capitalize(err.Error())
}

// LoadWarning renders a data file that could not be read.
func LoadWarning(err error) string {
	return fmt.Sprintf("Could not load saved tasks (%v). Starting with an empty list.", err)
}

// SaveWarning renders a failed save for the user.
func SaveWarning(err error) string {
	return fmt.Sprintf("Warning: the change was not saved (%v).", err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (l *Loop) record(msg string, keyvals ...any) {
	if l.session == nil {
		return
	}
	l.session.Logger().Info(msg, keyvals...)
}

func (l *Loop) runHook(ctx context.Context, res command.Result) {
	if l.cfg.HookCommand == "" {
		return
	}
	result, err := hooks.Invoke(ctx, hooks.Options{
		Command:  l.cfg.HookCommand,
		Action:   res.Kind.String(),
		DataFile: l.store.Path(),
		Task:     res.Task.String(),
		WorkDir:  l.cfg.ProjectRoot,
		Stdout:   l.hookOut,
		Stderr:   l.hookOut,
	})
	if result.Ran {
		l.logger.Debug("hook ran", "command", result.Command, "exit_code", result.ExitCode)
		l.record("hook", "command", result.Command, "exit_code", result.ExitCode)
	}
	if err != nil {
		l.logger.Warn("hook failed", "err", err)
	}
}
