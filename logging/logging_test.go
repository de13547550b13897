package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_DiscardByDefault(t *testing.T) {
	closer, err := Init(Options{})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer closer.Close()

	if L().Enabled(context.Background(), ParseLevel("debug")) {
		t.Error("Expected debug disabled at default level")
	}
	Info("dropped")
}

func TestInit_Writer(t *testing.T) {
	var buf bytes.Buffer
	closer, err := Init(Options{Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer closer.Close()

	Debug("tick", "frame", 3)
	With("component", "test").Warn("late")

	out := buf.String()
	if !strings.Contains(out, "msg=tick") || !strings.Contains(out, "frame=3") {
		t.Errorf("Expected debug record, got %q", out)
	}
	if !strings.Contains(out, "component=test") {
		t.Errorf("Expected attribute from With, got %q", out)
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	closer, _ := Init(Options{Level: "error", Writer: &buf})
	defer closer.Close()

	Info("hidden")
	Error("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("Expected info record to be filtered at error level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Expected error record")
	}
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "morph.log")
	closer, err := Init(Options{File: path, Writer: os.Stdout})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Info("to file")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("Expected log file content, got %q", data)
	}
	Init(Options{})
}

func TestInit_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "morph.log")

	if err := os.WriteFile(path, make([]byte, MaxFileSize+1), 0o644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	closer, err := Init(Options{File: path})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Init(Options{})
	defer closer.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read log directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != "morph.log" && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > MaxFileSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", MaxFileSize, info.Size())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"INFO":    "INFO",
		" warn ":  "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
		"":        "INFO",
	}
	for in, want := range tests {
		if got := ParseLevel(in).String(); got != want {
			t.Errorf("ParseLevel(%q): expected %s, got %s", in, want, got)
		}
	}
}
