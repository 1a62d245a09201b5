// Package storage reads and writes the task data file.
//
// The file holds one task per line:
//
//	T | 0 | read book
//	D | 1 | submit report | Sunday
//	E | 0 | party | Mon 2pm
//
// Fields are separated by " | ". The second field is the done flag. Deadlines
// and events carry the date text as a fourth field. Values are trimmed on
// write and on read.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/task"
)

// Delimiter separates fields within a line.
const Delimiter = " | "

// Error reports a failure to read or write the data file.
type Error struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// LineError describes a data file line that could not be decoded.
type LineError struct {
	Line int // 1-based line number
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Store persists a task list to a single file.
type Store struct {
	path   string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report skipped lines.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a store for the file at path. The file is not touched until
// Load or Save is called.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the data file. A missing file yields an empty list and no
// error. Malformed lines are skipped and logged at warn level. If the file
// cannot be read, Load returns an empty list together with an *Error so the
// caller can carry on.
func (s *Store) Load() (*task.List, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return task.NewList(), nil
		}
		return task.NewList(), &Error{Op: "load", Path: s.path, Err: err}
	}
	defer f.Close()

	list, bad, err := Read(f)
	if err != nil {
		return task.NewList(), &Error{Op: "load", Path: s.path, Err: err}
	}
	for _, le := range bad {
		s.logger.Warn("skipping malformed line", "path", s.path, "line", le.Line, "err", le.Err)
	}
	return list, nil
}

// Save replaces the data file with the contents of list. The new content is
// written to a temporary file in the same directory and renamed into place,
// so readers see either the old or the new file.
func (s *Store) Save(list *task.List) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &Error{Op: "save", Path: s.path, Err: fmt.Errorf("create data dir: %w", err)}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &Error{Op: "save", Path: s.path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			tmp.Close()
		}
		os.Remove(tmpName)
	}()

	wrap := func(step string, e error) error {
		return &Error{Op: "save", Path: s.path, Err: fmt.Errorf("%s: %w", step, e)}
	}

	if err := Write(tmp, list); err != nil {
		return wrap("write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		return wrap("sync temp file", err)
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return wrap("close temp file", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return wrap("chmod temp file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return wrap("replace data file", err)
	}
	return nil
}

// Read decodes every line from r. Blank lines are ignored; lines that fail
// to decode are returned as LineErrors and left out of the list. The error
// is non-nil only when r itself fails.
func Read(r io.Reader) (*task.List, []*LineError, error) {
	list := task.NewList()
	var bad []*LineError

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		t, err := Decode(text)
		if err != nil {
			bad = append(bad, &LineError{Line: n, Text: text, Err: err})
			continue
		}
		list.Add(t)
	}
	if err := sc.Err(); err != nil {
		return nil, bad, err
	}
	return list, bad, nil
}

// Write encodes every task in list to w, one per line.
func Write(w io.Writer, list *task.List) error {
	bw := bufio.NewWriter(w)
	for _, t := range list.Tasks() {
		if _, err := bw.WriteString(Encode(t)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Encode returns the data file line for t, without a trailing newline.
func Encode(t task.Task) string {
	done := "0"
	if t.Done {
		done = "1"
	}
	fields := []string{t.Kind.Tag(), done, strings.TrimSpace(t.Description)}
	if t.Kind != task.KindToDo {
		fields = append(fields, strings.TrimSpace(t.Date))
	}
	return strings.Join(fields, Delimiter)
}

// Decode parses one data file line. For deadlines and events the date is
// taken after the last delimiter, so descriptions may contain " | " but
// dates may not.
func Decode(line string) (task.Task, error) {
	parts := strings.SplitN(strings.TrimSpace(line), Delimiter, 3)
	if len(parts) < 3 {
		return task.Task{}, fmt.Errorf("expected at least 3 fields, got %d", len(parts))
	}

	tag := strings.TrimSpace(parts[0])
	kind, ok := task.KindFromTag(tag)
	if !ok {
		return task.Task{}, fmt.Errorf("unknown task type %q", tag)
	}

	var done bool
	switch flag := strings.TrimSpace(parts[1]); flag {
	case "0":
	case "1":
		done = true
	default:
		return task.Task{}, fmt.Errorf("invalid done flag %q", flag)
	}

	desc, date := parts[2], ""
	if kind != task.KindToDo {
		i := strings.LastIndex(desc, Delimiter)
		if i < 0 {
			return task.Task{}, fmt.Errorf("missing date field for %s", kind)
		}
		desc, date = desc[:i], desc[i+len(Delimiter):]
	}

	t, err := task.New(kind, desc, date)
	if err != nil {
		return task.Task{}, err
	}
	t.Done = done
	return t, nil
}
