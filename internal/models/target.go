package models

import "time"

// WatchTarget is the single file under observation and the modification
// time last seen for it.
type WatchTarget struct {
	Path    string    // Path as given on the command line
	ModTime time.Time // Last observed modification time
}

// NewWatchTarget creates a WatchTarget armed with the given modification time
func NewWatchTarget(path string, modTime time.Time) *WatchTarget {
	return &WatchTarget{
		Path:    path,
		ModTime: modTime,
	}
}

// Changed reports whether modTime differs from the stored timestamp.
// Any difference counts, including a timestamp that moved backward.
func (t *WatchTarget) Changed(modTime time.Time) bool {
	return !modTime.Equal(t.ModTime)
}

// Update stores modTime as the last observed modification time
func (t *WatchTarget) Update(modTime time.Time) {
	t.ModTime = modTime
}
