package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursereg/config"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "coursereg.log")

	logger, err := New(config.LogConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	logger.Debug("schedule_refresh")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file, got %v", err)
	}
	if !strings.Contains(string(data), "schedule_refresh") {
		t.Fatalf("expected log entry in file, got %q", string(data))
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursereg.log")

	logger, err := New(config.LogConfig{Level: "loud", File: path})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Fatal("expected debug to be disabled after falling back to info")
	}
}

func TestNew_NoFileIsNop(t *testing.T) {
	logger, err := New(config.LogConfig{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if logger.Core().Enabled(0) {
		t.Fatal("expected nop logger")
	}
}
