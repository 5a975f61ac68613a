package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrison/rewatch/internal/config"
	"github.com/harrison/rewatch/internal/display"
	"github.com/harrison/rewatch/internal/logger"
	"github.com/harrison/rewatch/internal/models"
	"github.com/harrison/rewatch/internal/runner"
	"github.com/harrison/rewatch/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	// ErrUsage is returned when the command line does not name exactly one script
	ErrUsage = errors.New("expected exactly one path to a script")

	// ErrTargetIsDirectory is returned when the watch path is a directory
	ErrTargetIsDirectory = errors.New("watch target is a directory")
)

// watchCommand implements the root command: validate, configure, then hand over to the watcher
func watchCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		reportUsage(cmd, nil)
		return ErrUsage
	}
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		display.Error(cmd.ErrOrStderr(), err)
		return err
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		err := fmt.Errorf("%w: %s", ErrTargetIsDirectory, path)
		display.Error(cmd.ErrOrStderr(), err)
		return err
	}

	consoleLog := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	loggers := []sessionLogger{consoleLog}

	var fileLog *logger.FileLogger
	if cfg.LogDir != "" {
		fileLog, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			err = fmt.Errorf("failed to create file logger: %w", err)
			display.Error(cmd.ErrOrStderr(), err)
			return err
		}
		defer fileLog.Close()
		loggers = append(loggers, fileLog)
		consoleLog.LogInfo(fmt.Sprintf("session log: %s", fileLog.Path()))
	}
	multiLog := &multiLogger{loggers: loggers}

	out := cmd.OutOrStdout()
	r := runner.New(runner.Options{
		Interpreters: cfg.Interpreters,
		ClearScreen:  cfg.ClearScreen && display.IsTerminal(out),
		Stdin:        cmd.InOrStdin(),
		Stdout:       out,
		Stderr:       cmd.ErrOrStderr(),
		Logger:       multiLog,
	})

	if _, err := os.Stat(path); err == nil && !r.CanExecute(path) {
		warning := display.WarnNotExecutable(path)
		warning.Display(cmd.ErrOrStderr())
		// The console already shows the warning box
		if fileLog != nil {
			fileLog.LogWarn(fmt.Sprintf("%s: %s", warning.Title, path))
		}
	}

	w := watcher.New(r, watcher.Options{
		PollInterval:       cfg.PollInterval,
		SettleDelay:        cfg.SettleDelay,
		RecheckAfterSettle: cfg.RecheckAfterSettle,
		Out:                out,
		ErrOut:             cmd.ErrOrStderr(),
		Logger:             multiLog,
	})

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	multiLog.LogDebug(fmt.Sprintf("watching %s every %s (settle %s)", path, cfg.PollInterval, cfg.SettleDelay))
	return w.Run(ctx, path)
}

// loadConfig reads the config file and applies the flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var intervalPtr, settlePtr *time.Duration
	if cmd.Flags().Changed("interval") {
		interval, _ := cmd.Flags().GetDuration("interval")
		intervalPtr = &interval
	}
	if cmd.Flags().Changed("settle") {
		settle, _ := cmd.Flags().GetDuration("settle")
		settlePtr = &settle
	}

	var clearPtr, recheckPtr *bool
	if noClear, _ := cmd.Flags().GetBool("no-clear"); noClear {
		clearScreen := false
		clearPtr = &clearScreen
	}
	if noRecheck, _ := cmd.Flags().GetBool("no-recheck"); noRecheck {
		recheck := false
		recheckPtr = &recheck
	}

	var logLevelPtr, logDirPtr *string
	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &level
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && logLevelPtr == nil {
		level := "debug"
		logLevelPtr = &level
	}
	if cmd.Flags().Changed("log-dir") {
		dir, _ := cmd.Flags().GetString("log-dir")
		logDirPtr = &dir
	}

	cfg.MergeWithFlags(intervalPtr, settlePtr, clearPtr, recheckPtr, logLevelPtr, logDirPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// reportUsage prints an optional error followed by the usage synopsis
func reportUsage(cmd *cobra.Command, err error) {
	w := cmd.ErrOrStderr()
	if err != nil {
		display.Error(w, err)
	}
	display.Usage(w, cmd.Root().Name())
	fmt.Fprintf(w, "Run '%s --help' for all flags.\n", cmd.Root().Name())
}

// sessionLogger is what both the watcher and the runner log through
type sessionLogger interface {
	watcher.Logger
	runner.Logger
}

// multiLogger fans every call out to several loggers
type multiLogger struct {
	loggers []sessionLogger
}

// LogTrace forwards to all loggers
func (ml *multiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

// LogDebug forwards to all loggers
func (ml *multiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogWarn forwards to all loggers
func (ml *multiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

// LogError forwards to all loggers
func (ml *multiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

// LogRunStart forwards to all loggers
func (ml *multiLogger) LogRunStart(id string, path string) {
	for _, l := range ml.loggers {
		l.LogRunStart(id, path)
	}
}

// LogRunComplete forwards to all loggers
func (ml *multiLogger) LogRunComplete(result models.RunResult) {
	for _, l := range ml.loggers {
		l.LogRunComplete(result)
	}
}
