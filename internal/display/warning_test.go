package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	withColor(t, true)
	var buf bytes.Buffer
	w := Warning{
		Title: "Configuration Missing",
	}

	w.Display(&buf)

	output := buf.String()
	assert.Contains(t, output, "\x1b[33m", "expected yellow ANSI color code")
	assert.Contains(t, output, "⚠️")
	assert.Contains(t, output, "Configuration Missing")
	assert.Contains(t, output, "\x1b[0m", "expected ANSI reset code")
}

func TestDisplayWarning_NoColor(t *testing.T) {
	withColor(t, false)
	var buf bytes.Buffer
	w := Warning{Title: "Plain", Message: "No escapes here"}

	w.Display(&buf)

	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Equal(t, "⚠️  Warning: Plain\n    No escapes here\n", buf.String())
}

func TestDisplayWarning_WithFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		wantText string
	}{
		{
			name:     "single file",
			files:    []string{"demo.py"},
			wantText: "Affected file:",
		},
		{
			name:     "multiple files",
			files:    []string{"demo.py", "build.sh", "app.js"},
			wantText: "Affected files:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withColor(t, false)
			var buf bytes.Buffer
			w := Warning{
				Title: "Invalid Target",
				Files: tt.files,
			}

			w.Display(&buf)

			output := buf.String()
			assert.Contains(t, output, tt.wantText)
			for i, file := range tt.files {
				expected := strings.Repeat(" ", 6) + string(rune('1'+i)) + ". " + file
				assert.Contains(t, output, expected)
			}
		})
	}
}

func TestDisplayWarning_WithSuggestion(t *testing.T) {
	withColor(t, false)
	var buf bytes.Buffer
	w := Warning{
		Title:      "Deprecated Setting",
		Suggestion: "Use 'poll_interval' instead",
	}

	w.Display(&buf)

	output := buf.String()
	assert.Contains(t, output, "    Suggestion:\n")
	assert.Contains(t, output, "    Use 'poll_interval' instead\n")
}

func TestWarnNotExecutable(t *testing.T) {
	w := WarnNotExecutable("tool.bin")

	assert.Equal(t, "Target is not executable", w.Title)
	assert.Equal(t, []string{"tool.bin"}, w.Files)
	assert.Contains(t, w.Suggestion, "chmod +x tool.bin")
	assert.Contains(t, w.Suggestion, "interpreters")
}
