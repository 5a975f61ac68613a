// Package display provides the console presentation for rewatch: run banners,
// separators, screen clearing, warnings and usage text.
//
// Everything the user sees around a run cycle is written here, so the shape of
// the console stays the same across the runner, the watcher and the CLI:
//
//	🔄 Running demo.py...
//	==================================================
//	hello
//	==================================================
//	✓ Finished (Exit code: 0)
//
//	👀 Watching for changes... (Press Ctrl+C to stop)
//
// # Colors
//
// Banners are colored with fatih/color. Color is disabled automatically when
// the output is not a terminal or when NO_COLOR is set:
//   - Cyan for the run banner and watch notices
//   - Green for a zero exit status, red for anything else
//   - Yellow for warnings
//
// # Screen Clearing
//
// ClearScreen wipes the visible terminal area before a run. Callers should gate
// it with IsTerminal so that redirected output is never polluted with escape
// sequences.
//
// All functions accept io.Writer for testability.
package display
