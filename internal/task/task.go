package task

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the task variant.
type Kind int

const (
	KindToDo Kind = iota
	KindDeadline
	KindEvent
)

var (
	// ErrEmptyDescription is returned when a description is blank after trimming.
	ErrEmptyDescription = errors.New("description cannot be empty")
	// ErrEmptyDate is returned when a deadline or event has a blank date.
	ErrEmptyDate = errors.New("date cannot be empty")
	// ErrUnexpectedDate is returned when a to-do carries a date.
	ErrUnexpectedDate = errors.New("to-do tasks have no date")
	// ErrLineBreak is returned when a field spans more than one line.
	ErrLineBreak = errors.New("fields cannot contain line breaks")
	// ErrDatePipe is returned when a date would be split wrongly by the data
	// file delimiter: it contains " | " or starts with "| ".
	ErrDatePipe = errors.New(`dates cannot contain " | " or start with "| "`)
)

// Tag returns the one-letter tag used in the data file.
func (k Kind) Tag() string {
	switch k {
	case KindToDo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindToDo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindFromTag maps a data file tag back to a Kind.
func KindFromTag(tag string) (Kind, bool) {
	switch tag {
	case "T":
		return KindToDo, true
	case "D":
		return KindDeadline, true
	case "E":
		return KindEvent, true
	}
	return 0, false
}

// KindFromName maps a kind name ("todo", "deadline", "event") to a Kind.
func KindFromName(name string) (Kind, bool) {
	switch name {
	case "todo":
		return KindToDo, true
	case "deadline":
		return KindDeadline, true
	case "event":
		return KindEvent, true
	}
	return 0, false
}

// Task represents a single entry in the task list.
// Date holds the deadline text for KindDeadline and the event time for
// KindEvent; it is empty for KindToDo.
type Task struct {
	Kind        Kind
	Description string
	Done        bool
	Date        string
}

// NewToDo returns a to-do task.
func NewToDo(description string) (Task, error) {
	return New(KindToDo, description, "")
}

// NewDeadline returns a deadline that is due by the given date text.
func NewDeadline(description, by string) (Task, error) {
	return New(KindDeadline, description, by)
}

// NewEvent returns an event happening at the given date text.
func NewEvent(description, at string) (Task, error) {
	return New(KindEvent, description, at)
}

// New trims the fields and returns a validated task of the given kind.
func New(kind Kind, description, date string) (Task, error) {
	t := Task{
		Kind:        kind,
		Description: strings.TrimSpace(description),
		Date:        strings.TrimSpace(date),
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate checks the task invariants.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.ContainsAny(t.Description, "\r\n") || strings.ContainsAny(t.Date, "\r\n") {
		return ErrLineBreak
	}
	switch t.Kind {
	case KindToDo:
		if t.Date != "" {
			return ErrUnexpectedDate
		}
	case KindDeadline, KindEvent:
		if strings.TrimSpace(t.Date) == "" {
			return ErrEmptyDate
		}
		if date := strings.TrimSpace(t.Date); strings.Contains(date, " | ") || strings.HasPrefix(date, "| ") {
			return ErrDatePipe
		}
	default:
		return fmt.Errorf("unknown task kind %d", int(t.Kind))
	}
	return nil
}

// By returns the deadline text, or "" for other kinds.
func (t Task) By() string {
	if t.Kind != KindDeadline {
		return ""
	}
	return t.Date
}

// At returns the event time text, or "" for other kinds.
func (t Task) At() string {
	if t.Kind != KindEvent {
		return ""
	}
	return t.Date
}

// MarkDone sets the done flag. Marking a done task again is a no-op.
func (t *Task) MarkDone() {
	t.Done = true
}

// String renders the task for display, e.g. "[D][X] report (by: Sunday)".
func (t Task) String() string {
	mark := " "
	if t.Done {
		mark = "X"
	}
	line := fmt.Sprintf("[%s][%s] %s", t.Kind.Tag(), mark, t.Description)
	switch t.Kind {
	case KindDeadline:
		line += fmt.Sprintf(" (by: %s)", t.Date)
	case KindEvent:
		line += fmt.Sprintf(" (at: %s)", t.Date)
	}
	return line
}
