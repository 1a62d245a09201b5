package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"ERROR", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
		{"yaml", log.TextFormatter},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormatter(tt.input); got != tt.want {
				t.Errorf("ParseFormatter(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("warn") || ValidLevel("loud") {
		t.Error("ValidLevel mismatch")
	}
	if !ValidFormat("logfmt") || ValidFormat("yaml") {
		t.Error("ValidFormat mismatch")
	}
}

func TestNewConsoleFromConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleFromConfig(&buf, "warn", "json", false, false)

	logger.Info("hidden")
	logger.Warn("skipping malformed line", "line", 3)

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", out, err)
	}
	if entry["msg"] != "skipping malformed line" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["prefix"] != "taskline" {
		t.Errorf("prefix: got %v, want taskline", entry["prefix"])
	}
}
