package models

import "time"

// Run status constants
const (
	StatusPassed      = "PASSED"      // Script exited with status 0
	StatusFailed      = "FAILED"      // Script exited with a non-zero status
	StatusError       = "ERROR"       // Script could not be started
	StatusInterrupted = "INTERRUPTED" // Run was cut short by a stop signal
)

// RunResult represents the outcome of a single run of the watch target.
// It only lives for one report cycle.
type RunResult struct {
	ID          string        // Correlation id for log lines
	Path        string        // Path that was executed
	ExitCode    int           // Exit status reported by the process
	StartedAt   time.Time     // When the run started
	Duration    time.Duration // Time taken by the run
	Err         error         // Set when the process could not be started
	Interrupted bool          // Set when the run was cancelled mid-flight
}

// Success returns true if the process ran to completion with status 0
func (r RunResult) Success() bool {
	return r.Err == nil && !r.Interrupted && r.ExitCode == 0
}

// Status returns one of the run status constants
func (r RunResult) Status() string {
	switch {
	case r.Err != nil:
		return StatusError
	case r.Interrupted:
		return StatusInterrupted
	case r.ExitCode != 0:
		return StatusFailed
	default:
		return StatusPassed
	}
}
