// Package ui provides an optional full-screen terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskline/internal/command"
	"github.com/nibzard/taskline/internal/loop"
	"github.com/nibzard/taskline/internal/task"
)

// Session executes command lines; *loop.Loop implements it.
type Session interface {
	Step(ctx context.Context, line string) (command.Result, error)
	Tasks() []task.Task
	DataFile() string
	LoadErr() error
}

// maxHistory bounds the transcript kept on screen.
const maxHistory = 6

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// RunTUI runs an interactive session on the terminal until the user exits.
func RunTUI(ctx context.Context, s Session) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(newModel(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type entry struct {
	input  string
	output string
	isErr  bool
}

type model struct {
	ctx      context.Context
	session  Session
	input    []rune
	history  []entry
	tasks    []task.Task
	width    int
	quitting bool
}

func newModel(ctx context.Context, s Session) *model {
	m := &model{
		ctx:     ctx,
		session: s,
		tasks:   s.Tasks(),
	}
	// Logs are hidden behind the alt screen, so a failed load is shown here.
	if err := s.LoadErr(); err != nil {
		m.history = append(m.history, entry{output: loop.LoadWarning(err), isErr: true})
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		case tea.KeyCtrlU:
			m.input = nil
		case tea.KeySpace:
			m.input = append(m.input, ' ')
		case tea.KeyRunes:
			m.input = append(m.input, msg.Runes...)
		}
	}
	return m, nil
}

// submit runs the current input line through the session.
func (m *model) submit() (tea.Model, tea.Cmd) {
	line := string(m.input)
	m.input = nil
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	res, err := m.session.Step(m.ctx, line)
	e := entry{input: line}
	switch {
	case err != nil:
		e.output = loop.ErrorMessage(err)
		e.isErr = true
	case res.SaveErr != nil:
		e.output = res.Message() + "\n" + loop.SaveWarning(res.SaveErr)
		e.isErr = true
	default:
		e.output = res.Message()
	}
	m.history = append(m.history, e)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.tasks = m.session.Tasks()

	if res.Exit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Taskline") + "  " + dimStyle.Render(m.session.DataFile()) + "\n\n")

	writeTasks(&b, m.tasks)
	writeHistory(&b, m.history)

	if m.quitting {
		return b.String()
	}
	b.WriteString(promptStyle.Render(">") + " " + string(m.input) + "█\n\n")
	b.WriteString(dimStyle.Render("enter: run  ctrl+u: clear  esc/ctrl+c: quit  try: todo, deadline .. /by .., event .. /at .., done N, delete N, bye") + "\n")
	return b.String()
}

func writeTasks(b *strings.Builder, tasks []task.Task) {
	b.WriteString(headerStyle.Render(fmt.Sprintf("Tasks (%d)", len(tasks))) + "\n")
	if len(tasks) == 0 {
		b.WriteString(dimStyle.Render("  Your task list is empty.") + "\n\n")
		return
	}
	pending := 0
	for i, t := range tasks {
		line := fmt.Sprintf("%d.%s", i+1, t)
		if t.Done {
			line = doneStyle.Render(line)
		} else {
			pending++
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d pending, %d done", pending, len(tasks)-pending)) + "\n\n")
}

func writeHistory(b *strings.Builder, history []entry) {
	for _, e := range history {
		if e.input != "" {
			b.WriteString(promptStyle.Render(">") + " " + e.input + "\n")
		}
		out := e.output
		if e.isErr {
			out = errorStyle.Render(out)
			if !strings.HasPrefix(e.output, "OOPS") {
				out = warnStyle.Render(e.output)
			}
		}
		b.WriteString(out + "\n\n")
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
