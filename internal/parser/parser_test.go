package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/taskline/internal/command"
	"github.com/nibzard/taskline/internal/task"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name string
		line string
		want command.Command
	}{
		{"bye", "bye", command.Exit()},
		{"bye padded", "  bye \n", command.Exit()},
		{"list", "list", command.List()},
		{"done", "done 2", command.Done(1)},
		{"done padded", "done    10  ", command.Done(9)},
		{"done tab", "done\t1", command.Done(0)},
		{"delete", "delete 1", command.Delete(0)},
		{"todo", "todo read book", command.Add(task.Task{Kind: task.KindToDo, Description: "read book"})},
		{"todo inner spaces", "todo  read   book ", command.Add(task.Task{Kind: task.KindToDo, Description: "read   book"})},
		{"deadline", "deadline submit report /by Sunday", command.Add(task.Task{Kind: task.KindDeadline, Description: "submit report", Date: "Sunday"})},
		{"deadline date text", "deadline pay rent /by 2024-01-01 18:00", command.Add(task.Task{Kind: task.KindDeadline, Description: "pay rent", Date: "2024-01-01 18:00"})},
		{"deadline first separator", "deadline a /by b /by c", command.Add(task.Task{Kind: task.KindDeadline, Description: "a", Date: "b /by c"})},
		{"event", "event party /at Mon 2-4pm", command.Add(task.Task{Kind: task.KindEvent, Description: "party", Date: "Mon 2-4pm"})},
		{"deadline pipe in date", "deadline pay /by 5|6pm", command.Add(task.Task{Kind: task.KindDeadline, Description: "pay", Date: "5|6pm"})},
		{"event pipe in date", "event x /at room A|B", command.Add(task.Task{Kind: task.KindEvent, Description: "x", Date: "room A|B"})},
		{"event keeps other separator", "event talk /by bob /at noon", command.Add(task.Task{Kind: task.KindEvent, Description: "talk /by bob", Date: "noon"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.line, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"empty", "", ErrUnrecognized},
		{"blank", "   ", ErrUnrecognized},
		{"unknown", "hello", ErrUnrecognized},
		{"bye with args", "bye now", ErrUnrecognized},
		{"list with args", "list all", ErrUnrecognized},
		{"uppercase", "TODO read", ErrUnrecognized},
		{"done collision", "donee 1", ErrUnrecognized},
		{"todo collision", "todolist", ErrUnrecognized},
		{"deadline collision", "deadlines x /by y", ErrUnrecognized},
		{"done missing index", "done", ErrMissingIndex},
		{"done missing index padded", "done   ", ErrMissingIndex},
		{"delete missing index", "delete", ErrMissingIndex},
		{"done letters", "done abc", ErrInvalidNumber},
		{"done negative", "done -1", ErrInvalidNumber},
		{"done plus sign", "done +1", ErrInvalidNumber},
		{"done zero", "done 0", ErrInvalidNumber},
		{"done two numbers", "done 1 2", ErrInvalidNumber},
		{"done overflow", "done 99999999999999999999999", ErrInvalidNumber},
		{"delete decimal", "delete 1.5", ErrInvalidNumber},
		{"todo bare", "todo", ErrMissingDescription},
		{"todo blank", "todo    ", ErrMissingDescription},
		{"deadline no separator", "deadline report", ErrMissingSeparator},
		{"deadline bare", "deadline", ErrMissingDescription},
		{"deadline no description", "deadline /by Sunday", ErrMissingDescription},
		{"deadline trailing separator", "deadline report /by", ErrMissingSeparator},
		{"deadline wrong separator", "deadline report /at Sunday", ErrMissingSeparator},
		{"event no separator", "event party", ErrMissingSeparator},
		{"event no description", "event  /at noon", ErrMissingDescription},
		{"event slash without spaces", "event party/at noon", ErrMissingSeparator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err == nil {
				t.Fatalf("Parse(%q) = %+v, expected error", tt.line, got)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Parse(%q) error is %T, want *ParseError", tt.line, err)
			}
			if diff := cmp.Diff(command.Command{}, got); diff != "" {
				t.Errorf("Parse(%q) returned a command alongside the error:\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseErrorMessages(t *testing.T) {
	_, err := Parse("deadline report")
	if err == nil || !strings.Contains(err.Error(), `" /by "`) {
		t.Errorf("expected message naming the /by separator, got %v", err)
	}

	_, err = Parse("event party")
	if err == nil || !strings.Contains(err.Error(), `" /at "`) {
		t.Errorf("expected message naming the /at separator, got %v", err)
	}

	_, missing := Parse("done")
	_, invalid := Parse("done x")
	if missing.Error() == invalid.Error() {
		t.Errorf("missing and invalid index share a message: %q", missing)
	}

	_, err = Parse("todo")
	if !strings.Contains(err.Error(), Usage(KeywordToDo)) {
		t.Errorf("expected usage in message, got %q", err)
	}

	_, err = Parse("jump")
	if err.Error() != "unrecognized command" {
		t.Errorf("unexpected message %q", err)
	}
}

// TestParseTotal checks that every input yields exactly one of a command or
// an error.
func TestParseTotal(t *testing.T) {
	inputs := []string{
		"", "b", "by", "bye", "byee", "list", "lis", "done", "done 1", "done x",
		"delete 3", "todo", "todo x", "deadline x /by y", "deadline x", "event x /at y",
		"event", "\t", "todo  x", "done  1", "事件", "todo 事件",
	}
	for _, in := range inputs {
		c, err := Parse(in)
		if err != nil {
			if diff := cmp.Diff(command.Command{}, c); diff != "" {
				t.Errorf("Parse(%q) returned both command and error", in)
			}
			continue
		}
		if c.Kind == command.KindAdd {
			if verr := c.Task.Validate(); verr != nil {
				t.Errorf("Parse(%q) produced invalid task: %v", in, verr)
			}
		}
	}
}
