// Package exchange converts task lists to and from a portable JSON document.
package exchange

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskline/internal/task"
)

// SchemaVersion is the document version written by Export.
const SchemaVersion = 1

const schemaURL = "https://github.com/nibzard/taskline/schema/tasks.json"

//go:embed schema.json
var schemaJSON []byte

// Document is the exported form of a task list.
type Document struct {
	SchemaVersion int    `json:"schema_version"`
	Tasks         []Item `json:"tasks"`
}

// Item is one exported task.
type Item struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	Date        string `json:"date,omitempty"`
}

// ValidationError reports one problem in an imported document.
type ValidationError struct {
	Path string // dotted path to the offending value, e.g. tasks[0].date
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ImportError collects every validation problem found in a document.
type ImportError struct {
	Errors []error
}

func (e *ImportError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return "invalid task document: " + strings.Join(msgs, "; ")
}

// Unwrap returns the individual problems.
func (e *ImportError) Unwrap() []error {
	return e.Errors
}

// Schema returns the JSON Schema documents are validated against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

// NewDocument converts list to its exported form.
func NewDocument(list *task.List) Document {
	doc := Document{SchemaVersion: SchemaVersion, Tasks: make([]Item, 0, list.Len())}
	for _, t := range list.Tasks() {
		doc.Tasks = append(doc.Tasks, Item{
			Type:        t.Kind.String(),
			Description: t.Description,
			Done:        t.Done,
			Date:        t.Date,
		})
	}
	return doc
}

// Export writes list to w as indented JSON.
func Export(w io.Writer, list *task.List) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewDocument(list)); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return nil
}

// Import reads a document from r. The document is checked against the
// schema first; every problem is reported in an *ImportError.
func Import(r io.Reader) (*task.List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, &ImportError{Errors: schemaErrors(err)}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	list := task.NewList()
	var problems []error
	for i, item := range doc.Tasks {
		t, err := item.Task()
		if err != nil {
			problems = append(problems, &ValidationError{Path: fmt.Sprintf("tasks[%d]", i), Err: err})
			continue
		}
		list.Add(t)
	}
	if len(problems) > 0 {
		return nil, &ImportError{Errors: problems}
	}
	return list, nil
}

// Task converts an item back into a validated task.
func (it Item) Task() (task.Task, error) {
	kind, ok := task.KindFromName(it.Type)
	if !ok {
		return task.Task{}, fmt.Errorf("unknown task type %q", it.Type)
	}
	t, err := task.New(kind, it.Description, it.Date)
	if err != nil {
		return task.Task{}, err
	}
	if it.Done {
		t.MarkDone()
	}
	return t, nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

func schemaErrors(err error) []error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{err}
	}
	var out []error
	collectSchemaErrors(&out, ve)
	return out
}

func collectSchemaErrors(out *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

// jsonPointerToPath turns "/tasks/0/date" into "tasks[0].date".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
