// Package config handles configuration loading and validation for ffadmin.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Built-in action names for keybindings.
const (
	ActionRefresh        = "refresh"
	ActionToggleRead     = "toggle-read"
	ActionDeleteEntry    = "delete-entry"
	ActionDeleteSelected = "delete-selected"
	ActionDeleteAll      = "delete-all"
	ActionSelectAll      = "select-all"
)

var validActions = []string{
	ActionRefresh,
	ActionToggleRead,
	ActionDeleteEntry,
	ActionDeleteSelected,
	ActionDeleteAll,
	ActionSelectAll,
}

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"R": {Action: ActionRefresh, Help: "refresh"},
	"r": {Action: ActionToggleRead, Help: "read/unread"},
	"a": {Action: ActionSelectAll, Help: "select page"},
	"d": {
		Action:  ActionDeleteEntry,
		Help:    "delete",
		Confirm: "Delete this notification for every recipient?",
	},
	"x": {
		Action:  ActionDeleteSelected,
		Help:    "delete selected",
		Confirm: "Delete the selected notifications?",
	},
	"D": {
		Action:  ActionDeleteAll,
		Help:    "delete lane",
		Confirm: "Delete ALL notifications in this lane?",
	},
}

// Config holds the application configuration.
type Config struct {
	Backend     BackendConfig         `yaml:"backend"`
	Board       BoardConfig           `yaml:"board"`
	TUI         TUIConfig             `yaml:"tui"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
	DataDir     string                `yaml:"-"` // set by caller, not from config file
}

// BackendConfig locates the REST backend.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// BoardConfig controls the notification listing.
type BoardConfig struct {
	PageSize     int           `yaml:"page_size"`
	PollInterval time.Duration `yaml:"poll_interval"` // 0 disables auto refresh
	DefaultLane  string        `yaml:"default_lane"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme    string        `yaml:"theme"`
	ToastTTL time.Duration `yaml:"toast_ttl"`
}

// Keybinding defines a TUI keybinding action.
type Keybinding struct {
	Action  string `yaml:"action"`  // built-in action name
	Help    string `yaml:"help"`    // help text shown in TUI
	Confirm string `yaml:"confirm"` // confirmation prompt (empty = no confirm)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:4000",
			Timeout: 10 * time.Second,
		},
		Board: BoardConfig{
			PageSize:     10,
			PollInterval: 30 * time.Second,
			DefaultLane:  "orders",
		},
		TUI: TUIConfig{
			Theme:    "tokyo-night",
			ToastTTL: 5 * time.Second,
		},
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = defaults.Backend.BaseURL
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = defaults.Backend.Timeout
	}
	if c.Board.PageSize == 0 {
		c.Board.PageSize = defaults.Board.PageSize
	}
	if c.Board.DefaultLane == "" {
		c.Board.DefaultLane = defaults.Board.DefaultLane
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.ToastTTL == 0 {
		c.TUI.ToastTTL = defaults.TUI.ToastTTL
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))

	for k, v := range defaults {
		result[k] = v
	}

	for k, v := range user {
		result[k] = v
	}

	return result
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute http(s) URL, got %q", c.Backend.BaseURL)
	}

	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout cannot be negative")
	}

	if c.Board.PageSize < 1 || c.Board.PageSize > 100 {
		return fmt.Errorf("board.page_size must be between 1 and 100")
	}

	if c.Board.PollInterval != 0 && c.Board.PollInterval < time.Second {
		return fmt.Errorf("board.poll_interval must be 0 (disabled) or at least 1s")
	}

	if c.Board.DefaultLane != "orders" && c.Board.DefaultLane != "created" {
		return fmt.Errorf("board.default_lane must be %q or %q", "orders", "created")
	}

	for key, kb := range c.Keybindings {
		if kb.Action == "" {
			return fmt.Errorf("keybinding %q must have an action", key)
		}
		if !isValidAction(kb.Action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, kb.Action)
		}
	}

	return nil
}

func isValidAction(action string) bool {
	return slices.Contains(validActions, action)
}
