// Package config loads the wizard configuration from ~/.ghwizard/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Tiliavir/gh-wizard/internal/model"
)

// Config is the root configuration. Every field can be overridden with the
// GHWIZARD_* environment variable named in its env tag.
type Config struct {
	// DataDir holds the record files and the log. Empty = the config directory.
	DataDir  string         `yaml:"data_dir" env:"GHWIZARD_DATA_DIR"`
	LogLevel string         `yaml:"log_level" env:"GHWIZARD_LOG_LEVEL" env-default:"info"`
	Storage  StorageConfig  `yaml:"storage"`
	Pomodoro PomodoroConfig `yaml:"pomodoro"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"GHWIZARD_STORAGE_BACKEND" env-default:"json"`
}

// PomodoroConfig holds the default timer durations.
type PomodoroConfig struct {
	WorkMinutes       int  `yaml:"work_minutes" env:"GHWIZARD_WORK_MINUTES" env-default:"25"`
	ShortBreakMinutes int  `yaml:"short_break_minutes" env:"GHWIZARD_SHORT_BREAK_MINUTES" env-default:"5"`
	LongBreakMinutes  int  `yaml:"long_break_minutes" env:"GHWIZARD_LONG_BREAK_MINUTES" env-default:"15"`
	LongBreakEvery    int  `yaml:"long_break_every" env:"GHWIZARD_LONG_BREAK_EVERY" env-default:"4"`
	Quiet             bool `yaml:"quiet" env:"GHWIZARD_QUIET"`
}

// Plan converts the pomodoro settings into a timer plan.
func (p PomodoroConfig) Plan() model.TimerPlan {
	return model.TimerPlan{
		WorkMinutes:       p.WorkMinutes,
		ShortBreakMinutes: p.ShortBreakMinutes,
		LongBreakMinutes:  p.LongBreakMinutes,
		LongBreakEvery:    p.LongBreakEvery,
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# gh-wizard configuration
#
# All settings are optional; the defaults below are what you get without
# this file. Every key can also be set through the environment variable
# shown next to it.

# Directory for sessions, tasks, timer history, stats and the log.
# Empty means the directory this file lives in.       (GHWIZARD_DATA_DIR)
data_dir: ""

# debug, info, warn or error.                           (GHWIZARD_LOG_LEVEL)
log_level: info

storage:
  # json: one human-readable file per record kind.
  # sqlite: a single wizard.db with one row per record kind.
  backend: json                                       # (GHWIZARD_STORAGE_BACKEND)

pomodoro:
  work_minutes: 25                                    # (GHWIZARD_WORK_MINUTES)
  short_break_minutes: 5                              # (GHWIZARD_SHORT_BREAK_MINUTES)
  long_break_minutes: 15                              # (GHWIZARD_LONG_BREAK_MINUTES)
  # A long break replaces the short one after this many pomodoros.
  long_break_every: 4                                 # (GHWIZARD_LONG_BREAK_EVERY)
  # Set to true to stop ringing the terminal bell when a phase ends.
  quiet: false                                        # (GHWIZARD_QUIET)
`

// Dir returns the wizard home: $GHWIZARD_HOME, or ~/.ghwizard.
func Dir() (string, error) {
	if dir := os.Getenv("GHWIZARD_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ghwizard"), nil
}

// DefaultPath returns the path of config.yaml inside Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path, creating it with annotated defaults on
// first run. Environment variables override file values.
func Load(path string) (Config, error) {
	var cfg Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("reading environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the timer cannot run with.
func (c Config) Validate() error {
	p := c.Pomodoro
	if p.WorkMinutes <= 0 || p.ShortBreakMinutes <= 0 || p.LongBreakMinutes <= 0 {
		return fmt.Errorf("pomodoro durations must be positive (work %d, short %d, long %d)",
			p.WorkMinutes, p.ShortBreakMinutes, p.LongBreakMinutes)
	}
	if p.LongBreakEvery < 1 {
		return fmt.Errorf("pomodoro.long_break_every must be at least 1, got %d", p.LongBreakEvery)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
