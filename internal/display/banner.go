package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// SeparatorWidth is the number of '=' characters in a separator line
const SeparatorWidth = 50

var (
	infoColor    = color.New(color.FgCyan)
	runColor     = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed)
)

// WatchStart announces the target before the initial run
func WatchStart(w io.Writer, path string) {
	infoColor.Fprintf(w, "👀 Watching %s for changes...\n", path)
	fmt.Fprintf(w, "Press Ctrl+C to stop\n\n")
}

// RunBanner shows which file is about to run
func RunBanner(w io.Writer, path string) {
	runColor.Fprintf(w, "🔄 Running %s...\n", path)
}

// Separator prints a full-width rule between banners and script output
func Separator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", SeparatorWidth))
}

// CompletionBanner reports the exit status of a finished run.
// Status 0 is shown in green with a check mark, anything else in red.
func CompletionBanner(w io.Writer, exitCode int) {
	if exitCode == 0 {
		successColor.Fprintf(w, "✓ Finished (Exit code: %d)\n", exitCode)
		return
	}
	failColor.Fprintf(w, "✗ Finished (Exit code: %d)\n", exitCode)
}

// SpawnError reports a script that could not be started
func SpawnError(w io.Writer, err error) {
	failColor.Fprintf(w, "❌ Error running script: %v\n", err)
}

// WatchingNotice closes every run cycle
func WatchingNotice(w io.Writer) {
	infoColor.Fprintf(w, "\n👀 Watching for changes... (Press Ctrl+C to stop)\n")
}

// TargetNotFound reports a watch path that does not exist at startup
func TargetNotFound(w io.Writer, path string) {
	failColor.Fprintf(w, "❌ Error: File '%s' not found!\n", path)
}

// PollError reports a failure that ended the watch loop
func PollError(w io.Writer, err error) {
	failColor.Fprintf(w, "\n❌ Error: %v\n", err)
}

// Error reports a startup failure such as an invalid configuration
func Error(w io.Writer, err error) {
	failColor.Fprintf(w, "Error: %v\n", err)
}

// Farewell is printed when the user stops the watcher
func Farewell(w io.Writer) {
	fmt.Fprintf(w, "\n\n👋 Stopped watching. Goodbye!\n")
}

// Usage prints the one-line synopsis and an example invocation
func Usage(w io.Writer, program string) {
	fmt.Fprintf(w, "Usage: %s <path-to-script>\n", program)
	fmt.Fprintf(w, "Example: %s main.py\n", program)
}
