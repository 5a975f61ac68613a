package logger

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/harrison/rewatch/internal/models"
)

func skipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on windows")
	}
}

// TestLogDirectoryCreation verifies the log directory is created on initialization
func TestLogDirectoryCreation(t *testing.T) {
	skipWithoutSymlinks(t)
	logDir := filepath.Join(t.TempDir(), "nested", "logs")

	logger, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Expected log directory %s to exist, but it doesn't", logDir)
	}
}

// TestSessionLogFile verifies a timestamped log file with a header is created per session
func TestSessionLogFile(t *testing.T) {
	skipWithoutSymlinks(t)
	logDir := t.TempDir()

	logger, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Close()

	name := filepath.Base(logger.Path())
	if !strings.HasPrefix(name, "session-") || !strings.HasSuffix(name, ".log") {
		t.Errorf("Expected session-YYYYMMDD-HHMMSS.log, got %s", name)
	}

	content, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("Failed to read session log: %v", err)
	}
	if !strings.HasPrefix(string(content), "=== rewatch session log ===\n") {
		t.Errorf("Expected session header, got %q", string(content))
	}
	if !strings.Contains(string(content), "Started at: ") {
		t.Error("Expected start timestamp in header")
	}
}

// TestLatestSymlink verifies latest.log symlink is created and points to the current session
func TestLatestSymlink(t *testing.T) {
	skipWithoutSymlinks(t)
	logDir := t.TempDir()

	logger, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	symlinkPath := filepath.Join(logDir, "latest.log")
	linkInfo, err := os.Lstat(symlinkPath)
	if err != nil {
		t.Fatalf("Expected latest.log symlink to exist: %v", err)
	}
	if linkInfo.Mode()&os.ModeSymlink == 0 {
		t.Error("Expected latest.log to be a symlink")
	}

	target, err := os.Readlink(symlinkPath)
	if err != nil {
		t.Fatalf("Failed to read symlink: %v", err)
	}
	if target != filepath.Base(logger.Path()) {
		t.Errorf("Expected symlink to point to %s, got %s", filepath.Base(logger.Path()), target)
	}
}

// TestSymlinkUpdate verifies the symlink moves to a newer session
func TestSymlinkUpdate(t *testing.T) {
	skipWithoutSymlinks(t)
	logDir := t.TempDir()

	logger1, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger1.Close()

	// Session files are named to the second
	time.Sleep(time.Second)

	logger2, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger2.Close()

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("Failed to read symlink: %v", err)
	}
	if target != filepath.Base(logger2.Path()) {
		t.Errorf("Expected symlink to point to the newest session %s, got %s", filepath.Base(logger2.Path()), target)
	}
}

// TestFileLogRunCycle verifies run start and every completion shape are recorded
func TestFileLogRunCycle(t *testing.T) {
	skipWithoutSymlinks(t)
	logger, err := NewFileLogger(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.LogRunStart("run-1", "demo.py")
	logger.LogRunComplete(models.RunResult{ID: "run-1", ExitCode: 0, Duration: 1500 * time.Millisecond})
	logger.LogRunComplete(models.RunResult{ID: "run-2", ExitCode: 4, Duration: 200 * time.Millisecond})
	logger.LogRunComplete(models.RunResult{ID: "run-3", Err: errors.New("exec: \"python3\": executable file not found in $PATH")})
	logger.LogRunComplete(models.RunResult{ID: "run-4", Interrupted: true, Duration: 2 * time.Second})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("Failed to read session log: %v", err)
	}
	output := string(content)

	expected := []string{
		"Run run-1 started: demo.py",
		"Run run-1 PASSED: exit code 0, duration 1.5s",
		"Run run-2 FAILED: exit code 4, duration 0.2s",
		"Run run-3 ERROR: exec: \"python3\": executable file not found in $PATH",
		"Run run-4 INTERRUPTED after 2.0s",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in session log, got:\n%s", want, output)
		}
	}
}

// TestNewFileLoggerInvalidPath verifies an unusable directory is reported
func TestNewFileLoggerInvalidPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create blocker file: %v", err)
	}

	_, err := NewFileLogger(filepath.Join(blocker, "logs"), "info")
	if err == nil {
		t.Fatal("Expected error when log directory is below a regular file")
	}
	if !strings.Contains(err.Error(), "failed to create log directory") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestCloseTwice verifies Close is idempotent and later writes are dropped
func TestCloseTwice(t *testing.T) {
	skipWithoutSymlinks(t)
	logger, err := NewFileLogger(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Should not panic
	logger.LogInfo("after close")
}
