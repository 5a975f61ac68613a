package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultInterpreters maps file extensions to the command used to run them.
// Files with an unmapped extension are executed directly.
var DefaultInterpreters = map[string]string{
	".py": "python3",
	".sh": "sh",
	".js": "node",
	".rb": "ruby",
	".pl": "perl",
	".go": "go run",
}

// Config represents rewatch configuration options
type Config struct {
	// PollInterval is the delay between modification-time checks
	PollInterval time.Duration `yaml:"poll_interval"`

	// SettleDelay is the pause after a detected change before the script is run
	SettleDelay time.Duration `yaml:"settle_delay"`

	// ClearScreen clears the terminal before each run
	ClearScreen bool `yaml:"clear_screen"`

	// RecheckAfterSettle re-reads the modification time after the settle delay
	RecheckAfterSettle bool `yaml:"recheck_after_settle"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory for session logs (empty disables file logging)
	LogDir string `yaml:"log_dir"`

	// Interpreters maps extensions to interpreter commands
	Interpreters map[string]string `yaml:"interpreters"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	interpreters := make(map[string]string, len(DefaultInterpreters))
	for ext, interp := range DefaultInterpreters {
		interpreters[ext] = interp
	}

	return &Config{
		PollInterval:       500 * time.Millisecond,
		SettleDelay:        100 * time.Millisecond,
		ClearScreen:        true,
		RecheckAfterSettle: true,
		LogLevel:           "info",
		LogDir:             "",
		Interpreters:       interpreters,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are written as strings ("500ms"), so parse through a shadow struct
	type yamlConfig struct {
		PollInterval       string            `yaml:"poll_interval"`
		SettleDelay        string            `yaml:"settle_delay"`
		ClearScreen        bool              `yaml:"clear_screen"`
		RecheckAfterSettle bool              `yaml:"recheck_after_settle"`
		LogLevel           string            `yaml:"log_level"`
		LogDir             string            `yaml:"log_dir"`
		Interpreters       map[string]string `yaml:"interpreters"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.PollInterval != "" {
		interval, err := time.ParseDuration(yamlCfg.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid poll_interval format %q: %w", yamlCfg.PollInterval, err)
		}
		cfg.PollInterval = interval
	}
	if yamlCfg.SettleDelay != "" {
		delay, err := time.ParseDuration(yamlCfg.SettleDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid settle_delay format %q: %w", yamlCfg.SettleDelay, err)
		}
		cfg.SettleDelay = delay
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = normalizeLevel(yamlCfg.LogLevel)
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	for ext, interp := range yamlCfg.Interpreters {
		cfg.Interpreters[normalizeExt(ext)] = strings.TrimSpace(interp)
	}

	// Booleans default to true, so only a key that is present may turn them off
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["clear_screen"]; exists {
			cfg.ClearScreen = yamlCfg.ClearScreen
		}
		if _, exists := rawMap["recheck_after_settle"]; exists {
			cfg.RecheckAfterSettle = yamlCfg.RecheckAfterSettle
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .rewatch/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".rewatch", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(pollInterval *time.Duration, settleDelay *time.Duration, clearScreen *bool, recheck *bool, logLevel *string, logDir *string) {
	if pollInterval != nil {
		c.PollInterval = *pollInterval
	}
	if settleDelay != nil {
		c.SettleDelay = *settleDelay
	}
	if clearScreen != nil {
		c.ClearScreen = *clearScreen
	}
	if recheck != nil {
		c.RecheckAfterSettle = *recheck
	}
	if logLevel != nil {
		c.LogLevel = normalizeLevel(*logLevel)
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0, got %v", c.PollInterval)
	}

	if c.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must be >= 0, got %v", c.SettleDelay)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	for ext := range c.Interpreters {
		if ext == "." || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid interpreter extension %q, must look like \".py\"", ext)
		}
	}

	return nil
}

// normalizeExt lowercases an extension and ensures it starts with a dot
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// normalizeLevel accepts log levels in any case
func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
