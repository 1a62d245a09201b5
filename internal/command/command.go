// Package command defines parsed user commands and executes them against a
// task list.
package command

import (
	"fmt"
	"strings"

	"github.com/nibzard/taskline/internal/task"
)

// Kind identifies the command variant.
type Kind int

const (
	KindExit Kind = iota
	KindList
	KindDone
	KindDelete
	KindAdd
)

// String returns the command keyword.
func (k Kind) String() string {
	switch k {
	case KindExit:
		return "bye"
	case KindList:
		return "list"
	case KindDone:
		return "done"
	case KindDelete:
		return "delete"
	case KindAdd:
		return "add"
	default:
		return fmt.Sprintf("command(%d)", int(k))
	}
}

// Command is one parsed user intent. Index is the 0-based task position for
// done and delete; Task is the new task for add.
type Command struct {
	Kind  Kind
	Index int
	Task  task.Task
}

// Exit returns the command that ends the session.
func Exit() Command { return Command{Kind: KindExit} }

// List returns the command that prints all tasks.
func List() Command { return Command{Kind: KindList} }

// Done returns the command that completes the task at index.
func Done(index int) Command { return Command{Kind: KindDone, Index: index} }

// Delete returns the command that removes the task at index.
func Delete(index int) Command { return Command{Kind: KindDelete, Index: index} }

// Add returns the command that appends t.
func Add(t task.Task) Command { return Command{Kind: KindAdd, Task: t} }

// IsExit reports whether executing c ends the session.
func (c Command) IsExit() bool {
	return c.Kind == KindExit
}

// Mutates reports whether c changes the task list when it succeeds.
func (c Command) Mutates() bool {
	switch c.Kind {
	case KindDone, KindDelete, KindAdd:
		return true
	}
	return false
}

// Saver persists a task list.
type Saver interface {
	Save(list *task.List) error
}

// Result describes what a command did.
type Result struct {
	Kind  Kind
	Exit  bool
	Task  task.Task   // task added, completed or removed
	Tasks []task.Task // snapshot for list
	Count int         // list length after the command
	Saved bool
	// SaveErr is set when the mutation succeeded in memory but could not be
	// written to storage.
	SaveErr error
}

// Execute runs c against list and persists the list through store after a
// successful mutation. An index error leaves the list untouched and skips
// the save.
func Execute(c Command, list *task.List, store Saver) (Result, error) {
	res := Result{Kind: c.Kind}

	switch c.Kind {
	case KindExit:
		res.Exit = true
	case KindList:
		res.Tasks = list.Tasks()
	case KindDone:
		t, err := list.Complete(c.Index)
		if err != nil {
			return Result{}, err
		}
		res.Task = t
	case KindDelete:
		t, err := list.Delete(c.Index)
		if err != nil {
			return Result{}, err
		}
		res.Task = t
	case KindAdd:
		if err := c.Task.Validate(); err != nil {
			return Result{}, fmt.Errorf("invalid task: %w", err)
		}
		list.Add(c.Task)
		res.Task = c.Task
	default:
		return Result{}, fmt.Errorf("unknown command %s", c.Kind)
	}

	res.Count = list.Len()
	if c.Mutates() && store != nil {
		if err := store.Save(list); err != nil {
			res.SaveErr = err
		} else {
			res.Saved = true
		}
	}
	return res, nil
}

// Message renders the response shown to the user.
func (r Result) Message() string {
	var b strings.Builder
	switch r.Kind {
	case KindExit:
		b.WriteString("Bye. Hope to see you again soon!")
	case KindList:
		if len(r.Tasks) == 0 {
			b.WriteString("Your task list is empty.")
			break
		}
		b.WriteString("Here are the tasks in your list:")
		for i, t := range r.Tasks {
			fmt.Fprintf(&b, "\n%d.%s", i+1, t)
		}
	case KindDone:
		fmt.Fprintf(&b, "Nice! I've marked this task as done:\n  %s", r.Task)
	case KindDelete:
		fmt.Fprintf(&b, "Noted. I've removed this task:\n  %s\n%s", r.Task, countLine(r.Count))
	case KindAdd:
		fmt.Fprintf(&b, "Got it. I've added this task:\n  %s\n%s", r.Task, countLine(r.Count))
	}
	return b.String()
}

func countLine(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}
