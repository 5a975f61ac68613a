package display

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/mattn/go-isatty"
)

// clearSequence moves the cursor home, clears the screen and drops the scrollback
const clearSequence = "\x1b[H\x1b[2J\x1b[3J"

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS ptys)
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ClearScreen clears the visible terminal area.
// On Windows the console is cleared with "cls"; elsewhere ANSI escapes are written to w.
func ClearScreen(w io.Writer) error {
	if runtime.GOOS == "windows" {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = w
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("failed to clear screen: %w", err)
		}
		return nil
	}

	if _, err := io.WriteString(w, clearSequence); err != nil {
		return fmt.Errorf("failed to clear screen: %w", err)
	}
	return nil
}
