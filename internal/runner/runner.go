// Package runner executes the watch target as a child process and reports
// each run cycle on the console.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/rewatch/internal/display"
	"github.com/harrison/rewatch/internal/logger"
	"github.com/harrison/rewatch/internal/models"
)

// ErrSpawn is wrapped into RunResult.Err when the script could not be started
var ErrSpawn = errors.New("failed to start script")

// DefaultWaitDelay bounds how long Wait keeps copying output after the child
// has exited or been cancelled
const DefaultWaitDelay = 2 * time.Second

// Logger records run cycles
type Logger interface {
	LogRunStart(id string, path string)
	LogRunComplete(result models.RunResult)
}

// Options configures a Runner
type Options struct {
	Interpreters map[string]string // Extension -> interpreter command; unmapped files run directly
	ClearScreen  bool              // Clear the display before each run
	Stdin        io.Reader         // Defaults to os.Stdin
	Stdout       io.Writer         // Defaults to os.Stdout; banners are written here too
	Stderr       io.Writer         // Defaults to os.Stderr
	Logger       Logger            // Defaults to a no-op logger
}

// Runner executes the watch target and reports its exit status
type Runner struct {
	interpreters map[string]string
	clearScreen  bool
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	logger       Logger
	newID        func() string
	waitDelay    time.Duration
}

// New creates a Runner from opts, filling unset streams with the process's own
func New(opts Options) *Runner {
	r := &Runner{
		interpreters: make(map[string]string, len(opts.Interpreters)),
		clearScreen:  opts.ClearScreen,
		stdin:        opts.Stdin,
		stdout:       opts.Stdout,
		stderr:       opts.Stderr,
		logger:       opts.Logger,
		newID:        uuid.NewString,
		waitDelay:    DefaultWaitDelay,
	}

	for ext, interp := range opts.Interpreters {
		r.interpreters[strings.ToLower(ext)] = interp
	}
	if r.stdin == nil {
		r.stdin = os.Stdin
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}
	if r.logger == nil {
		r.logger = logger.NewNoOpLogger()
	}

	return r
}

// Interpreter returns the interpreter command configured for path's extension,
// or "" when the file is executed directly
func (r *Runner) Interpreter(path string) string {
	return strings.TrimSpace(r.interpreters[strings.ToLower(filepath.Ext(path))])
}

// CanExecute reports whether path will be handed to an interpreter or carries
// an executable permission bit. Windows decides by extension, so it always passes.
func (r *Runner) CanExecute(path string) bool {
	if r.Interpreter(path) != "" || runtime.GOOS == "windows" {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0111 != 0
}

// BuildCommand constructs the command that runs path.
// The path is made absolute so a bare filename is never looked up in PATH.
func (r *Runner) BuildCommand(ctx context.Context, path string) (*exec.Cmd, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	var cmd *exec.Cmd
	if fields := strings.Fields(r.Interpreter(abs)); len(fields) > 0 {
		args := append(fields[1:], abs)
		cmd = exec.CommandContext(ctx, fields[0], args...)
	} else {
		cmd = exec.CommandContext(ctx, abs)
	}

	// *os.File streams are handed to the child directly, so it shares the console
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.WaitDelay = r.waitDelay

	if runtime.GOOS != "windows" {
		// Let the script shut down the way it would on Ctrl+C; WaitDelay kills stragglers
		cmd.Cancel = func() error {
			return cmd.Process.Signal(os.Interrupt)
		}
	}

	return cmd, nil
}

// Run executes path once and blocks until it exits.
// A script that cannot be started is reported on the console and returned in
// RunResult.Err; it is never retried. Cancelling ctx stops the script and
// marks the result as interrupted without printing a completion banner.
func (r *Runner) Run(ctx context.Context, path string) models.RunResult {
	result := models.RunResult{
		ID:        r.newID(),
		Path:      path,
		StartedAt: time.Now(),
	}

	if r.clearScreen {
		// A failed clear only leaves old output on screen
		_ = display.ClearScreen(r.stdout)
	}
	display.RunBanner(r.stdout, path)
	display.Separator(r.stdout)
	r.logger.LogRunStart(result.ID, path)

	cmd, err := r.BuildCommand(ctx, path)
	if err == nil {
		err = cmd.Start()
	}
	if err != nil {
		result.Duration = time.Since(result.StartedAt)
		if ctx.Err() != nil {
			result.Interrupted = true
			r.logger.LogRunComplete(result)
			return result
		}

		result.Err = fmt.Errorf("%w: %w", ErrSpawn, err)
		display.SpawnError(r.stdout, err)
		display.WatchingNotice(r.stdout)
		r.logger.LogRunComplete(result)
		return result
	}

	// Non-exit errors here are output-copy failures; the exit status still stands
	_ = cmd.Wait()
	result.Duration = time.Since(result.StartedAt)
	result.ExitCode = -1
	if cmd.ProcessState != nil {
		result.ExitCode = exitStatus(cmd.ProcessState)
	}

	if ctx.Err() != nil {
		result.Interrupted = true
		r.logger.LogRunComplete(result)
		return result
	}

	display.Separator(r.stdout)
	display.CompletionBanner(r.stdout, result.ExitCode)
	display.WatchingNotice(r.stdout)
	r.logger.LogRunComplete(result)

	return result
}
