package task

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleList(t *testing.T) *List {
	t.Helper()
	a, _ := NewToDo("read book")
	b, _ := NewDeadline("submit report", "Sunday")
	c, _ := NewEvent("party", "Mon 2pm")
	return NewList(a, b, c)
}

func TestListAdd(t *testing.T) {
	l := NewList()
	a, _ := NewToDo("first")
	b, _ := NewToDo("second")
	l.Add(a)
	l.Add(b)

	if l.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", l.Len())
	}
	if diff := cmp.Diff([]Task{a, b}, l.Tasks()); diff != "" {
		t.Errorf("Tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestListComplete(t *testing.T) {
	for i := 0; i < 3; i++ {
		l := sampleList(t)
		before := l.Tasks()

		got, err := l.Complete(i)
		if err != nil {
			t.Fatalf("Complete(%d): %v", i, err)
		}
		if !got.Done {
			t.Errorf("Complete(%d) returned task not done", i)
		}

		want := before
		want[i].Done = true
		if diff := cmp.Diff(want, l.Tasks()); diff != "" {
			t.Errorf("Complete(%d) mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestListCompleteIdempotent(t *testing.T) {
	l := sampleList(t)
	if _, err := l.Complete(0); err != nil {
		t.Fatal(err)
	}
	snapshot := l.Tasks()
	if _, err := l.Complete(0); err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if diff := cmp.Diff(snapshot, l.Tasks()); diff != "" {
		t.Errorf("second Complete changed list (-want +got):\n%s", diff)
	}
}

func TestListOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 3, 4, 100} {
		l := sampleList(t)
		before := l.Tasks()

		_, err := l.Complete(idx)
		var ie *IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("Complete(%d): expected IndexError, got %v", idx, err)
		}
		if ie.Index != idx || ie.Len != 3 {
			t.Errorf("IndexError = %+v", ie)
		}

		if _, err := l.Delete(idx); !errors.As(err, &ie) {
			t.Fatalf("Delete(%d): expected IndexError, got %v", idx, err)
		}
		if _, err := l.Get(idx); !errors.As(err, &ie) {
			t.Fatalf("Get(%d): expected IndexError, got %v", idx, err)
		}

		if diff := cmp.Diff(before, l.Tasks()); diff != "" {
			t.Errorf("list changed after failed ops (-want +got):\n%s", diff)
		}
	}
}

func TestListDelete(t *testing.T) {
	l := sampleList(t)
	before := l.Tasks()

	removed, err := l.Delete(1)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed != before[1] {
		t.Errorf("removed = %+v, want %+v", removed, before[1])
	}
	if diff := cmp.Diff([]Task{before[0], before[2]}, l.Tasks()); diff != "" {
		t.Errorf("Delete mismatch (-want +got):\n%s", diff)
	}

	for l.Len() > 0 {
		if _, err := l.Delete(0); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := l.Delete(0); err == nil {
		t.Error("Delete on empty list should fail")
	}
}

func TestListTasksIsCopy(t *testing.T) {
	l := sampleList(t)
	tasks := l.Tasks()
	tasks[0].Description = "mutated"
	if got, _ := l.Get(0); got.Description != "read book" {
		t.Errorf("Tasks() leaked internal slice: %q", got.Description)
	}
}

func TestListEqual(t *testing.T) {
	a := sampleList(t)
	b := sampleList(t)
	if !a.Equal(b) {
		t.Error("identical lists should be equal")
	}
	b.Complete(2)
	if a.Equal(b) {
		t.Error("lists differing in done flag should not be equal")
	}
	if a.Equal(nil) {
		t.Error("list should not equal nil")
	}
}

func TestIndexErrorMessage(t *testing.T) {
	tests := []struct {
		err  IndexError
		want string
	}{
		{IndexError{Index: 4, Len: 1}, "task 5 does not exist (you have 1 task)"},
		{IndexError{Index: 0, Len: 0}, "task 1 does not exist (you have 0 tasks)"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
