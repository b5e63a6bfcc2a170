//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/pressable/internal/button"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/.local/share/pressable.db",
			expected: filepath.Join(home, ".local", "share", "pressable.db"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/log/pressable.log",
			expected: "/var/log/pressable.log",
		},
		{
			name:     "relative path unchanged",
			input:    "logs/pressable.log",
			expected: "logs/pressable.log",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "pressable", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestLoadFrom_MissingFilesGiveDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	opts := cfg.ButtonOptions(ButtonSpec{})
	assert.Equal(t, time.Second, opts.SuccessDuration)
	assert.Equal(t, time.Second, opts.ErrorDuration)
	assert.True(t, opts.ShowSuccess)
	assert.True(t, opts.ShowError)
	assert.True(t, opts.Notifications)
	assert.False(t, opts.Disabled)
	assert.True(t, cfg.HistoryEnabled())
	assert.Len(t, cfg.GetButtons(), 4)
}

func TestLoadFrom_FullFile(t *testing.T) {
	path := writeConfig(t, `
[button]
success_ms = 250
error_ms = 3000
show_success = false
notifications = false

[[buttons]]
name = "deploy"
label = "Deploy"
behavior = "Flaky"
latency_ms = 100

[[buttons]]
name = "lint"
disabled = true
show_success = true

[history]
enabled = false
path = "~/pressable.db"

[notifications]
desktop = true

[log]
level = "debug"
json = true
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	buttons := cfg.GetButtons()
	require.Len(t, buttons, 2)
	assert.Equal(t, BehaviorFlaky, buttons[0].Behavior)
	assert.InDelta(t, 0.5, buttons[0].FailRate, 1e-9)
	assert.Equal(t, "lint", buttons[1].Label)
	assert.Equal(t, BehaviorSucceed, buttons[1].Behavior)
	assert.Equal(t, 800, buttons[1].LatencyMS)

	deploy := cfg.ButtonOptions(buttons[0])
	assert.Equal(t, 250*time.Millisecond, deploy.SuccessDuration)
	assert.Equal(t, 3*time.Second, deploy.ErrorDuration)
	assert.False(t, deploy.ShowSuccess)
	assert.False(t, deploy.Notifications)

	lint := cfg.ButtonOptions(buttons[1])
	assert.True(t, lint.ShowSuccess, "per-button override wins")
	assert.True(t, lint.Disabled)

	assert.False(t, cfg.HistoryEnabled())
	assert.NotContains(t, cfg.History.Path, "~")
	assert.True(t, cfg.Notifications.Desktop)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	first := writeConfig(t, "[button]\nsuccess_ms = 100\nerror_ms = 100\n")
	second := writeConfig(t, "[button]\nsuccess_ms = 200\n")

	cfg, err := LoadFrom(first, second)
	require.NoError(t, err)

	opts := cfg.ButtonOptions(ButtonSpec{})
	assert.Equal(t, 200*time.Millisecond, opts.SuccessDuration)
	assert.Equal(t, 100*time.Millisecond, opts.ErrorDuration)
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	path := writeConfig(t, "[button\nsuccess_ms = ")

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "empty config",
			config: Config{},
		},
		{
			name: "valid buttons",
			config: Config{Buttons: []ButtonSpec{
				{Name: "a", Behavior: BehaviorFail},
				{Name: "b", Behavior: BehaviorFlaky, FailRate: 0.2},
			}},
		},
		{
			name:    "missing name",
			config:  Config{Buttons: []ButtonSpec{{Behavior: BehaviorFail}}},
			wantErr: true,
		},
		{
			name:    "duplicate name",
			config:  Config{Buttons: []ButtonSpec{{Name: "a"}, {Name: "a"}}},
			wantErr: true,
		},
		{
			name:    "unknown behavior",
			config:  Config{Buttons: []ButtonSpec{{Name: "a", Behavior: "explode"}}},
			wantErr: true,
		},
		{
			name:    "fail rate out of range",
			config:  Config{Buttons: []ButtonSpec{{Name: "a", FailRate: 1.5}}},
			wantErr: true,
		},
		{
			name:    "negative duration",
			config:  Config{Button: ButtonConfig{ErrorMS: -1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestButtonOptions_StartsFromDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, button.DefaultOptions().SuccessDuration, cfg.ButtonOptions(ButtonSpec{}).SuccessDuration)
}
