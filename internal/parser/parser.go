// Package parser turns one line of user input into a command.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nibzard/taskline/internal/command"
	"github.com/nibzard/taskline/internal/task"
)

// Command keywords.
const (
	KeywordExit     = "bye"
	KeywordList     = "list"
	KeywordDone     = "done"
	KeywordDelete   = "delete"
	KeywordToDo     = "todo"
	KeywordDeadline = "deadline"
	KeywordEvent    = "event"
)

// Separators between a description and its date.
const (
	SeparatorBy = " /by "
	SeparatorAt = " /at "
)

var (
	ErrUnrecognized       = errors.New("unrecognized command")
	ErrMissingIndex       = errors.New("missing index")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrMissingDescription = errors.New("missing description")
	ErrMissingSeparator   = errors.New("missing separator")
	ErrMissingDate        = errors.New("missing date")
)

// ParseError reports a malformed input line.
type ParseError struct {
	Line  string // trimmed input
	Err   error  // one of the Err* sentinels, possibly wrapped
	Usage string // expected form, if known
}

func (e *ParseError) Error() string {
	if e.Usage != "" {
		return fmt.Sprintf("%s (usage: %s)", e.Err, e.Usage)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

var usages = map[string]string{
	KeywordDone:     "done <task number>",
	KeywordDelete:   "delete <task number>",
	KeywordToDo:     "todo <description>",
	KeywordDeadline: "deadline <description> /by <date>",
	KeywordEvent:    "event <description> /at <date>",
}

// Usage returns the expected form of a keyword, or "" for unknown keywords.
func Usage(keyword string) string {
	return usages[keyword]
}

// Parse converts line into a command. It never returns both a command and
// an error; every failure is a *ParseError.
func Parse(line string) (command.Command, error) {
	line = strings.TrimSpace(line)

	switch line {
	case KeywordExit:
		return command.Exit(), nil
	case KeywordList:
		return command.List(), nil
	}

	if rest, ok := cutKeyword(line, KeywordDone); ok {
		idx, err := parseIndex(rest)
		if err != nil {
			return command.Command{}, newError(line, KeywordDone, err)
		}
		return command.Done(idx), nil
	}
	if rest, ok := cutKeyword(line, KeywordDelete); ok {
		idx, err := parseIndex(rest)
		if err != nil {
			return command.Command{}, newError(line, KeywordDelete, err)
		}
		return command.Delete(idx), nil
	}
	if rest, ok := cutKeyword(line, KeywordToDo); ok {
		desc := strings.TrimSpace(rest)
		if desc == "" {
			return command.Command{}, newError(line, KeywordToDo, ErrMissingDescription)
		}
		t, err := task.NewToDo(desc)
		if err != nil {
			return command.Command{}, newError(line, KeywordToDo, err)
		}
		return command.Add(t), nil
	}
	if rest, ok := cutKeyword(line, KeywordDeadline); ok {
		desc, by, err := splitDated(rest, SeparatorBy)
		if err != nil {
			return command.Command{}, newError(line, KeywordDeadline, err)
		}
		t, err := task.NewDeadline(desc, by)
		if err != nil {
			return command.Command{}, newError(line, KeywordDeadline, err)
		}
		return command.Add(t), nil
	}
	if rest, ok := cutKeyword(line, KeywordEvent); ok {
		desc, at, err := splitDated(rest, SeparatorAt)
		if err != nil {
			return command.Command{}, newError(line, KeywordEvent, err)
		}
		t, err := task.NewEvent(desc, at)
		if err != nil {
			return command.Command{}, newError(line, KeywordEvent, err)
		}
		return command.Add(t), nil
	}

	return command.Command{}, &ParseError{Line: line, Err: ErrUnrecognized}
}

func newError(line, keyword string, err error) *ParseError {
	return &ParseError{Line: line, Err: err, Usage: usages[keyword]}
}

// cutKeyword returns the text after keyword when line is exactly keyword or
// keyword followed by whitespace. "donee" does not match "done".
func cutKeyword(line, keyword string) (string, bool) {
	if !strings.HasPrefix(line, keyword) {
		return "", false
	}
	rest := line[len(keyword):]
	if rest == "" {
		return "", true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(r) {
		return "", false
	}
	return rest, true
}

// parseIndex converts a 1-based task number to a 0-based index.
func parseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingIndex
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w %q", ErrInvalidNumber, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w %q", ErrInvalidNumber, s)
	}
	return n - 1, nil
}

// splitDated splits "<description><sep><date>" at the first separator.
// rest starts with the whitespace that followed the keyword, so a separator
// directly after the keyword yields an empty description.
func splitDated(rest, sep string) (string, string, error) {
	if strings.TrimSpace(rest) == "" {
		return "", "", ErrMissingDescription
	}
	i := strings.Index(rest, sep)
	if i < 0 {
		return "", "", fmt.Errorf("%w %q", ErrMissingSeparator, sep)
	}
	desc := strings.TrimSpace(rest[:i])
	if desc == "" {
		return "", "", ErrMissingDescription
	}
	date := strings.TrimSpace(rest[i+len(sep):])
	if date == "" {
		return "", "", ErrMissingDate
	}
	return desc, date, nil
}
