// Package watcher implements the polling loop that re-runs a single file
// whenever its modification time changes.
//
// The loop moves through a small set of states:
//
//	Init      validate the target exists (ErrTargetNotFound otherwise)
//	Armed     record the modification time and run once
//	Polling   sleep PollInterval, re-read the modification time
//	Debounce  on change, sleep SettleDelay, then run again
//
// Cancelling the context stops the loop from any state with a farewell
// message and a nil error. A failed stat while polling ends the loop with
// ErrPoll. Runs are synchronous: a change made while the script is running
// is noticed on the first poll after it exits.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harrison/rewatch/internal/display"
	"github.com/harrison/rewatch/internal/logger"
	"github.com/harrison/rewatch/internal/models"
)

var (
	// ErrTargetNotFound is returned when the watch target is missing at startup
	ErrTargetNotFound = errors.New("watch target not found")

	// ErrPoll is returned when the modification time can no longer be read
	ErrPoll = errors.New("failed to poll watch target")
)

const (
	// DefaultPollInterval is the delay between modification-time checks
	DefaultPollInterval = 500 * time.Millisecond

	// DefaultSettleDelay lets a multi-write save finish before the script is run
	DefaultSettleDelay = 100 * time.Millisecond
)

// Runner executes the watch target once per call
type Runner interface {
	Run(ctx context.Context, path string) models.RunResult
}

// Logger receives diagnostic messages from the loop
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogWarn(message string)
	LogError(message string)
}

// StatFunc returns the modification time of path
type StatFunc func(path string) (time.Time, error)

// ModTime is the default StatFunc backed by os.Stat
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Options configures a Watcher. A non-positive PollInterval or a negative
// SettleDelay falls back to the package default.
type Options struct {
	PollInterval       time.Duration
	SettleDelay        time.Duration
	RecheckAfterSettle bool      // Re-read the modification time after the settle delay
	Out                io.Writer // Watch notices and farewell; defaults to os.Stdout
	ErrOut             io.Writer // Startup and polling errors; defaults to os.Stderr
	Logger             Logger
	Stat               StatFunc // Defaults to ModTime
}

// Watcher polls a single file and hands it to a Runner on every change
type Watcher struct {
	runner       Runner
	pollInterval time.Duration
	settleDelay  time.Duration
	recheck      bool
	out          io.Writer
	errOut       io.Writer
	logger       Logger
	stat         StatFunc
}

// New creates a Watcher that delegates runs to runner
func New(runner Runner, opts Options) *Watcher {
	w := &Watcher{
		runner:       runner,
		pollInterval: opts.PollInterval,
		settleDelay:  opts.SettleDelay,
		recheck:      opts.RecheckAfterSettle,
		out:          opts.Out,
		errOut:       opts.ErrOut,
		logger:       opts.Logger,
		stat:         opts.Stat,
	}

	if w.pollInterval <= 0 {
		w.pollInterval = DefaultPollInterval
	}
	if w.settleDelay < 0 {
		w.settleDelay = DefaultSettleDelay
	}
	if w.out == nil {
		w.out = os.Stdout
	}
	if w.errOut == nil {
		w.errOut = os.Stderr
	}
	if w.logger == nil {
		w.logger = logger.NewNoOpLogger()
	}
	if w.stat == nil {
		w.stat = ModTime
	}

	return w
}

// Arm validates that path exists and returns a target holding its current
// modification time
func (w *Watcher) Arm(path string) (*models.WatchTarget, error) {
	modTime, err := w.stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTargetNotFound, path, err)
	}
	return models.NewWatchTarget(path, modTime), nil
}

// Run watches path until ctx is cancelled or polling fails.
// The target is run once immediately and once more after every observed change.
// It returns nil when stopped through ctx, an ErrTargetNotFound error when the
// path is missing (the target is never run), and an ErrPoll error when the
// file can no longer be read.
func (w *Watcher) Run(ctx context.Context, path string) error {
	target, err := w.Arm(path)
	if err != nil {
		display.TargetNotFound(w.errOut, path)
		w.logger.LogError(err.Error())
		return err
	}

	display.WatchStart(w.out, target.Path)
	w.logger.LogDebug(fmt.Sprintf("armed %s (mtime %s)", target.Path, formatModTime(target.ModTime)))

	w.runner.Run(ctx, target.Path)

	for ctx.Err() == nil {
		if !sleep(ctx, w.pollInterval) {
			break
		}

		modTime, err := w.stat(target.Path)
		if err != nil {
			return w.pollFailed(err)
		}
		if !target.Changed(modTime) {
			w.logger.LogTrace(fmt.Sprintf("poll: %s unchanged", target.Path))
			continue
		}

		if modTime.Before(target.ModTime) {
			w.logger.LogWarn(fmt.Sprintf("mtime of %s moved backward (%s -> %s)", target.Path, formatModTime(target.ModTime), formatModTime(modTime)))
		}
		w.logger.LogDebug(fmt.Sprintf("change detected on %s (mtime %s -> %s)", target.Path, formatModTime(target.ModTime), formatModTime(modTime)))
		target.Update(modTime)

		if !sleep(ctx, w.settleDelay) {
			break
		}

		if w.recheck {
			// Writes that landed during the settle delay belong to this run
			settled, err := w.stat(target.Path)
			if err != nil {
				return w.pollFailed(err)
			}
			if target.Changed(settled) {
				w.logger.LogDebug(fmt.Sprintf("%s changed again while settling (mtime %s)", target.Path, formatModTime(settled)))
				target.Update(settled)
			}
		}

		w.runner.Run(ctx, target.Path)
	}

	display.Farewell(w.out)
	w.logger.LogDebug(fmt.Sprintf("stopped watching %s", target.Path))
	return nil
}

// pollFailed reports a stat failure that ends the loop
func (w *Watcher) pollFailed(err error) error {
	display.PollError(w.errOut, err)
	wrapped := fmt.Errorf("%w: %w", ErrPoll, err)
	w.logger.LogError(wrapped.Error())
	return wrapped
}

// sleep waits for d or until ctx is done. It returns false if ctx ended the wait.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func formatModTime(t time.Time) string {
	return t.Format("15:04:05.000000000")
}
