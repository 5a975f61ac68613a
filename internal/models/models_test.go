package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatchTarget_Changed(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		modTime time.Time
		want    bool
	}{
		{name: "same timestamp", modTime: base, want: false},
		{name: "newer timestamp", modTime: base.Add(time.Second), want: true},
		{name: "older timestamp", modTime: base.Add(-time.Hour), want: true},
		{name: "sub-second difference", modTime: base.Add(time.Nanosecond), want: true},
		{name: "same instant in another zone", modTime: base.In(time.FixedZone("UTC+2", 2*3600)), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewWatchTarget("demo.py", base)
			assert.Equal(t, tt.want, target.Changed(tt.modTime))
		})
	}
}

func TestWatchTarget_Update(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	target := NewWatchTarget("demo.py", base)

	next := base.Add(2 * time.Second)
	target.Update(next)

	assert.Equal(t, next, target.ModTime)
	assert.False(t, target.Changed(next))
	assert.True(t, target.Changed(base))
}

func TestRunResult_Status(t *testing.T) {
	tests := []struct {
		name        string
		result      RunResult
		wantStatus  string
		wantSuccess bool
	}{
		{name: "clean exit", result: RunResult{ExitCode: 0}, wantStatus: StatusPassed, wantSuccess: true},
		{name: "non-zero exit", result: RunResult{ExitCode: 3}, wantStatus: StatusFailed, wantSuccess: false},
		{name: "spawn failure", result: RunResult{ExitCode: 0, Err: errors.New("permission denied")}, wantStatus: StatusError, wantSuccess: false},
		{name: "interrupted", result: RunResult{ExitCode: -1, Interrupted: true}, wantStatus: StatusInterrupted, wantSuccess: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.result.Status())
			assert.Equal(t, tt.wantSuccess, tt.result.Success())
		})
	}
}
