package cmd

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/nibzard/taskline/internal/config"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	runErr := fn()
	_ = w.Close()

	output, readErr := io.ReadAll(r)
	_ = r.Close()
	if readErr != nil {
		t.Fatalf("ReadAll() error = %v", readErr)
	}

	return string(output), runErr
}

func TestCompletionCommandOutputsScripts(t *testing.T) {
	cfg := &config.Config{}

	tests := []struct {
		shell   string
		needles []string
	}{
		{shell: "bash", needles: []string{"# taskline bash completion", "complete -F _taskline taskline", "deadline"}},
		{shell: "zsh", needles: []string{"#compdef taskline", "compadd run tui exec"}},
		{shell: "fish", needles: []string{"# taskline fish completion", "__fish_seen_subcommand_from exec"}},
		{shell: "powershell", needles: []string{"# taskline PowerShell completion", "'import', 'doctor'"}},
		{shell: "pwsh", needles: []string{"# taskline PowerShell completion"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			output, err := captureStdout(t, func() error {
				return completionCommand(cfg, []string{tt.shell})
			})
			if err != nil {
				t.Fatalf("completionCommand() error = %v", err)
			}
			for _, needle := range tt.needles {
				if !strings.Contains(output, needle) {
					t.Errorf("completion output missing %q for shell %q:\n%s", needle, tt.shell, output)
				}
			}
			if strings.Contains(output, "%!") {
				t.Errorf("completion output has a formatting error:\n%s", output)
			}
		})
	}
}

func TestCompletionCommandErrors(t *testing.T) {
	cfg := &config.Config{}

	if err := completionCommand(cfg, []string{}); err == nil {
		t.Fatal("expected error when shell is missing")
	}

	if err := completionCommand(cfg, []string{"unknown"}); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}
