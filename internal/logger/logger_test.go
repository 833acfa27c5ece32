package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
func setupTestLogger(t *testing.T) (string, func()) {
	t.Helper()
	Reset()

	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}

	return logPath, func() {
		Reset()
	}
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestInit_WritesBanner(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	if Path() != logPath {
		t.Errorf("Path() = %q, want %q", Path(), logPath)
	}
	if !strings.Contains(readLog(t, logPath), "Logger initialized") {
		t.Error("expected init banner in log file")
	}
}

func TestInit_InvalidPath(t *testing.T) {
	Reset()
	defer Reset()

	if err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log")); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestLevels(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	Debug("hidden-debug-line")
	Info("visible-info-line")
	Warn("visible-warn-line %d", 7)
	Error("visible-error-line")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden-debug-line") {
		t.Error("debug line should be filtered at info level")
	}
	for _, want := range []string{"visible-info-line", "visible-warn-line 7", "visible-error-line"} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q", want)
		}
	}
}

func TestSetDebug(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	SetDebug(true)
	Debug("debug-now-visible")
	SetDebug(false)
	Debug("debug-hidden-again")

	content := readLog(t, logPath)
	if !strings.Contains(content, "debug-now-visible") {
		t.Error("debug line should be written when debug is enabled")
	}
	if strings.Contains(content, "debug-hidden-again") {
		t.Error("debug line should be filtered after SetDebug(false)")
	}
}

func TestWithInteraction(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	log := WithInteraction("abc-123", "multi-select")
	log.Info("resolved", "outcome", "selected")

	content := readLog(t, logPath)
	for _, want := range []string{"interaction=abc-123", "kind=multi-select", "component=prompt", "outcome=selected"} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q, got:\n%s", want, content)
		}
	}
}

func TestComponentLogger_AfterClose(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	Close()

	// Must not panic once the file is gone.
	ComponentLogger("git").Info("dropped")
	Info("dropped too")
}

func TestConcurrent(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(n int) {
			for j := 0; j < 100; j++ {
				Info("concurrent test %d-%d", n, j)
			}
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestReset(t *testing.T) {
	tmpDir := t.TempDir()
	defer Reset()

	Reset()
	logPath1 := filepath.Join(tmpDir, "log1.log")
	if err := Init(logPath1); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	Info("message to log1")

	Reset()
	logPath2 := filepath.Join(tmpDir, "log2.log")
	if err := Init(logPath2); err != nil {
		t.Fatalf("Failed to reinit logger: %v", err)
	}
	Info("message to log2")

	content1 := readLog(t, logPath1)
	if !strings.Contains(content1, "message to log1") {
		t.Error("log1 should contain 'message to log1'")
	}
	if strings.Contains(content1, "message to log2") {
		t.Error("log1 should NOT contain 'message to log2'")
	}
	if !strings.Contains(readLog(t, logPath2), "message to log2") {
		t.Error("log2 should contain 'message to log2'")
	}
}
