// Package logger provides logging implementations for rewatch sessions.
//
// Loggers record diagnostic messages from the watch loop and one entry per run
// cycle. The console logger writes to stderr next to the script's own output;
// the file logger keeps a per-session record when a log directory is set.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/rewatch/internal/display"
	"github.com/harrison/rewatch/internal/models"
)

var levelColors = map[string]*color.Color{
	"TRACE": color.New(color.FgHiBlack),
	"DEBUG": color.New(color.FgCyan),
	"INFO":  color.New(color.FgBlue),
	"WARN":  color.New(color.FgYellow),
	"ERROR": color.New(color.FgRed),
}

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines to a writer.
// Level names are colored when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// A nil writer discards everything. Unknown levels mean "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: display.IsTerminal(writer) && !color.NoColor,
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !enabled(cl.logLevel, level) {
		return
	}

	label := level
	if c, ok := levelColors[level]; ok && cl.colorOutput {
		label = c.Sprint(level)
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

// LogRunStart logs the start of a run cycle at DEBUG level.
// The console already shows a run banner, so this only surfaces the run id.
func (cl *ConsoleLogger) LogRunStart(id string, path string) {
	cl.LogDebug(fmt.Sprintf("run %s started: %s", shortID(id), path))
}

// LogRunComplete logs the end of a run cycle at DEBUG level.
func (cl *ConsoleLogger) LogRunComplete(result models.RunResult) {
	message := fmt.Sprintf("run %s %s: exit %d in %s", shortID(result.ID), result.Status(), result.ExitCode, formatDuration(result.Duration))
	if result.Err != nil {
		message = fmt.Sprintf("run %s %s: %v", shortID(result.ID), result.Status(), result.Err)
	}
	cl.LogDebug(message)
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// shortID trims a uuid to its first block for compact console lines
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// formatDuration keeps milliseconds for sub-second runs and whole seconds otherwise
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Second).String()
}

// NoOpLogger discards everything. It is the default when no logger is supplied.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(message string)                {}
func (n *NoOpLogger) LogDebug(message string)                {}
func (n *NoOpLogger) LogWarn(message string)                 {}
func (n *NoOpLogger) LogError(message string)                {}
func (n *NoOpLogger) LogRunStart(id string, path string)     {}
func (n *NoOpLogger) LogRunComplete(result models.RunResult) {}
