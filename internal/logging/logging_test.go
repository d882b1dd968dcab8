package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_WritesConsoleAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	var console bytes.Buffer

	logger, err := New(&console, true, dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info().Str("dataset", "csv").Msg("Loaded project data")

	if !strings.Contains(console.String(), "Loaded project data") {
		t.Errorf("Expected console output, got %q", console.String())
	}

	content, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(content), `"dataset":"csv"`) {
		t.Errorf("Expected JSON fields in log file, got %q", content)
	}

	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Error("Expected the write probe to be removed")
	}
}

func TestNew_UnwritableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(&bytes.Buffer{}, true, filepath.Join(file, "logs")); err == nil {
		t.Error("Expected an error when the log directory cannot be created")
	}
}

func TestLevel(t *testing.T) {
	if Level(true) != zerolog.DebugLevel {
		t.Errorf("Expected debug level when verbose, got %v", Level(true))
	}
	if Level(false) != zerolog.InfoLevel {
		t.Errorf("Expected info level by default, got %v", Level(false))
	}
}
