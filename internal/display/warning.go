package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var warnColor = color.New(color.FgYellow)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	warnColor.Fprint(out, b.String())
}

// WarnNotExecutable creates the startup warning for a target that can neither
// be executed directly nor handed to a configured interpreter
func WarnNotExecutable(path string) Warning {
	return Warning{
		Title:      "Target is not executable",
		Message:    "No interpreter is configured for this file type, so it will be executed directly.",
		Files:      []string{path},
		Suggestion: fmt.Sprintf("Run 'chmod +x %s' or map its extension under 'interpreters' in .rewatch/config.yaml", path),
	}
}
