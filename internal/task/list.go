package task

import "fmt"

// IndexError reports a task position that does not exist in the list.
type IndexError struct {
	Index int // 0-based position that was requested
	Len   int // list length at the time of the request
}

func (e *IndexError) Error() string {
	noun := "tasks"
	if e.Len == 1 {
		noun = "task"
	}
	return fmt.Sprintf("task %d does not exist (you have %d %s)", e.Index+1, e.Len, noun)
}

// List is the ordered collection of tasks for a session.
// Insertion order is display order and persisted order.
type List struct {
	tasks []Task
}

// NewList returns a list holding copies of the given tasks.
func NewList(tasks ...Task) *List {
	l := &List{tasks: make([]Task, len(tasks))}
	copy(l.tasks, tasks)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Get returns the task at index.
func (l *List) Get(index int) (Task, error) {
	if err := l.check(index); err != nil {
		return Task{}, err
	}
	return l.tasks[index], nil
}

// Add appends a task to the end of the list.
func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Complete marks the task at index as done and returns it.
// Completing an already-done task succeeds without changes.
func (l *List) Complete(index int) (Task, error) {
	if err := l.check(index); err != nil {
		return Task{}, err
	}
	l.tasks[index].MarkDone()
	return l.tasks[index], nil
}

// Delete removes the task at index and returns it. Later tasks shift down.
func (l *List) Delete(index int) (Task, error) {
	if err := l.check(index); err != nil {
		return Task{}, err
	}
	removed := l.tasks[index]
	l.tasks = append(l.tasks[:index], l.tasks[index+1:]...)
	return removed, nil
}

// Equal reports whether both lists hold the same tasks in the same order.
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.tasks) != len(other.tasks) {
		return false
	}
	for i := range l.tasks {
		if l.tasks[i] != other.tasks[i] {
			return false
		}
	}
	return true
}

func (l *List) check(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return &IndexError{Index: index, Len: len(l.tasks)}
	}
	return nil
}
