package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/rewatch/internal/models"
)

// FileLogger records a watch session to a file in the configured log directory.
// It creates one timestamped log file per session and maintains a latest.log
// symlink pointing to the most recent one.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir      string
	sessionLog  *os.File
	sessionFile string
	logLevel    string
	mu          sync.Mutex
}

// NewFileLogger creates a FileLogger in logDir filtering at logLevel.
// It creates the directory if needed, opens session-YYYYMMDD-HHMMSS.log and
// points latest.log at it.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	ts := time.Now().Format("20060102-150405")
	sessionFile := filepath.Join(logDir, fmt.Sprintf("session-%s.log", ts))

	file, err := os.OpenFile(sessionFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create session log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")

	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	if err := os.Symlink(filepath.Base(sessionFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:      logDir,
		sessionLog:  file,
		sessionFile: sessionFile,
		logLevel:    normalizeLogLevel(logLevel),
	}

	logger.write("=== rewatch session log ===\n")
	logger.write(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// Path returns the session log file path
func (fl *FileLogger) Path() string {
	return fl.sessionFile
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !enabled(fl.logLevel, level) {
		return
	}

	fl.write(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogRunStart records the start of a run cycle at INFO level.
func (fl *FileLogger) LogRunStart(id string, path string) {
	fl.LogInfo(fmt.Sprintf("Run %s started: %s", id, path))
}

// LogRunComplete records the outcome of a run cycle at INFO level.
// Spawn failures and interrupted runs are recorded with their cause.
func (fl *FileLogger) LogRunComplete(result models.RunResult) {
	switch {
	case result.Err != nil:
		fl.LogInfo(fmt.Sprintf("Run %s %s: %v", result.ID, result.Status(), result.Err))
	case result.Interrupted:
		fl.LogInfo(fmt.Sprintf("Run %s %s after %.1fs", result.ID, result.Status(), result.Duration.Seconds()))
	default:
		fl.LogInfo(fmt.Sprintf("Run %s %s: exit code %d, duration %.1fs", result.ID, result.Status(), result.ExitCode, result.Duration.Seconds()))
	}
}

// Close flushes and closes the session log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.sessionLog != nil {
		if err := fl.sessionLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync session log: %w", err)
		}
		if err := fl.sessionLog.Close(); err != nil {
			return fmt.Errorf("failed to close session log: %w", err)
		}
		fl.sessionLog = nil
	}

	return nil
}

// write is a thread-safe helper to append to the session log file.
func (fl *FileLogger) write(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.sessionLog != nil {
		fl.sessionLog.WriteString(message)
		// Flush after each write so tailing latest.log stays current
		fl.sessionLog.Sync()
	}
}
