package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/pressable/internal/button"
)

// Behaviors understood by the demo actions.
const (
	BehaviorSucceed = "succeed"
	BehaviorFail    = "fail"
	BehaviorFlaky   = "flaky"
	BehaviorPanic   = "panic"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Defaults applied to every button
	Button ButtonConfig `koanf:"button"`

	// Buttons shown by the demo (a built-in set when empty)
	Buttons []ButtonSpec `koanf:"buttons"`

	// Transition history database
	History HistoryConfig `koanf:"history"`

	// Desktop notifications via D-Bus
	Notifications NotificationsConfig `koanf:"notifications"`

	Log LogConfig `koanf:"log"`
}

// ButtonConfig holds the revert and notification defaults.
type ButtonConfig struct {
	SuccessMS     int   `koanf:"success_ms"`    // revert delay after success (default: 1000)
	ErrorMS       int   `koanf:"error_ms"`      // revert delay after failure (default: 1000)
	ShowSuccess   *bool `koanf:"show_success"`  // display Success before reverting (default: true)
	ShowError     *bool `koanf:"show_error"`    // display Error before reverting (default: true)
	Notifications *bool `koanf:"notifications"` // emit transition events (default: true)
}

// ButtonSpec describes one demo button.
type ButtonSpec struct {
	Name        string  `koanf:"name"`
	Label       string  `koanf:"label"`
	Behavior    string  `koanf:"behavior"`   // "succeed", "fail", "flaky" or "panic"
	LatencyMS   int     `koanf:"latency_ms"` // simulated work duration
	FailRate    float64 `koanf:"fail_rate"`  // flaky only, 0.0-1.0 (default: 0.5)
	Disabled    bool    `koanf:"disabled"`
	ShowSuccess *bool   `koanf:"show_success"` // overrides [button]
	ShowError   *bool   `koanf:"show_error"`   // overrides [button]
}

// HistoryConfig holds the sqlite history settings.
type HistoryConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Path    string `koanf:"path"`    // default: XDG data dir
}

// NotificationsConfig controls desktop notifications.
type NotificationsConfig struct {
	Desktop   bool `koanf:"desktop"`    // notify on Error
	OnSuccess bool `koanf:"on_success"` // also notify on Success
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
	File  string `koanf:"file"`  // default: XDG state dir
	JSON  bool   `koanf:"json"`
}

// Load reads the standard config locations.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order; later files win. Missing
// files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.History.Path = expandPath(cfg.History.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	for i := range cfg.Buttons {
		cfg.Buttons[i].Behavior = strings.ToLower(strings.TrimSpace(cfg.Buttons[i].Behavior))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/pressable/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pressable", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[string]bool)

	for i, b := range c.Buttons {
		if b.Name == "" {
			errs = append(errs, fmt.Errorf("%w: buttons[%d] has no name", ErrInvalidConfig, i))
		} else if seen[b.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate button %q", ErrInvalidConfig, b.Name))
		}
		seen[b.Name] = true

		switch b.Behavior {
		case "", BehaviorSucceed, BehaviorFail, BehaviorFlaky, BehaviorPanic:
		default:
			errs = append(errs, fmt.Errorf("%w: button %q has unknown behavior %q", ErrInvalidConfig, b.Name, b.Behavior))
		}
		if b.FailRate < 0 || b.FailRate > 1 {
			errs = append(errs, fmt.Errorf("%w: button %q fail_rate must be within 0-1", ErrInvalidConfig, b.Name))
		}
	}
	if c.Button.SuccessMS < 0 || c.Button.ErrorMS < 0 {
		errs = append(errs, fmt.Errorf("%w: revert durations must not be negative", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// GetButtons returns the configured buttons with defaults applied, or the
// built-in demo set when none are configured.
func (c *Config) GetButtons() []ButtonSpec {
	specs := c.Buttons
	if len(specs) == 0 {
		specs = defaultButtons()
	}

	out := make([]ButtonSpec, len(specs))
	for i, s := range specs {
		if s.Label == "" {
			s.Label = s.Name
		}
		if s.Behavior == "" {
			s.Behavior = BehaviorSucceed
		}
		if s.LatencyMS <= 0 {
			s.LatencyMS = 800
		}
		if s.Behavior == BehaviorFlaky && s.FailRate == 0 {
			s.FailRate = 0.5
		}
		out[i] = s
	}
	return out
}

func defaultButtons() []ButtonSpec {
	return []ButtonSpec{
		{Name: "save", Label: "Save draft", Behavior: BehaviorSucceed, LatencyMS: 600},
		{Name: "upload", Label: "Upload report", Behavior: BehaviorFail, LatencyMS: 1200},
		{Name: "sync", Label: "Sync mailbox", Behavior: BehaviorFlaky, LatencyMS: 900},
		{Name: "crash", Label: "Rebuild index", Behavior: BehaviorPanic, LatencyMS: 400},
	}
}

// ButtonOptions returns orchestrator options for spec, merging [button]
// defaults with the per-button overrides.
func (c *Config) ButtonOptions(spec ButtonSpec) button.Options {
	opts := button.DefaultOptions()

	if c.Button.SuccessMS > 0 {
		opts.SuccessDuration = time.Duration(c.Button.SuccessMS) * time.Millisecond
	}
	if c.Button.ErrorMS > 0 {
		opts.ErrorDuration = time.Duration(c.Button.ErrorMS) * time.Millisecond
	}
	opts.ShowSuccess = boolOr(spec.ShowSuccess, boolOr(c.Button.ShowSuccess, true))
	opts.ShowError = boolOr(spec.ShowError, boolOr(c.Button.ShowError, true))
	opts.Notifications = boolOr(c.Button.Notifications, true)
	opts.Disabled = spec.Disabled

	return opts
}

// HistoryEnabled reports whether transitions should be recorded.
func (c *Config) HistoryEnabled() bool {
	return boolOr(c.History.Enabled, true)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
