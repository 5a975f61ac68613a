package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for rewatch
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewatch <path-to-script>",
		Short: "Re-run a script every time it changes",
		Long: `rewatch watches a single file and runs it again whenever it is saved.

The file is run once at startup and then again after every change to its
modification time. The screen is cleared before each run and the script's
own output is shown between two separators, followed by its exit code.

Scripts are run through an interpreter chosen by extension (.py, .sh, .js,
.rb, .pl, .go) or executed directly when the extension is not mapped.

Configuration is loaded from .rewatch/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  rewatch main.py                     # Run main.py now and on every save
  rewatch --interval 200ms build.sh   # Poll faster
  rewatch --no-clear demo.js          # Keep previous runs on screen
  rewatch --log-dir .rewatch/logs app.rb  # Keep a session log`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		RunE:    watchCommand,
		// Every error is reported where it is detected
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .rewatch/config.yaml)")
	cmd.Flags().Duration("interval", 500*time.Millisecond, "Delay between modification checks")
	cmd.Flags().Duration("settle", 100*time.Millisecond, "Pause after a change before running")
	cmd.Flags().Bool("no-clear", false, "Do not clear the screen before each run")
	cmd.Flags().Bool("no-recheck", false, "Do not re-read the modification time after the settle pause")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (default: info)")
	cmd.Flags().String("log-dir", "", "Directory for session logs (default: no file log)")
	cmd.Flags().Bool("verbose", false, "Show debug logging (same as --log-level debug)")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		reportUsage(c, err)
		return err
	})

	return cmd
}
