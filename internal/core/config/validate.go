package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility, theme names and keybinding keys. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
		c.validateKeybindings(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if strings.HasPrefix(c.Backend.BaseURL, "http://") && !isLocalURL(c.Backend.BaseURL) {
		warnings = append(warnings, ValidationWarning{
			Category: "Backend",
			Item:     "base_url",
			Message:  "session token will be sent over plain http",
		})
	}

	if c.Board.PollInterval == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Board",
			Item:     "poll_interval",
			Message:  "auto refresh is disabled",
		})
	}

	return warnings
}

func isLocalURL(u string) bool {
	rest := strings.TrimPrefix(u, "http://")
	return strings.HasPrefix(rest, "localhost") || strings.HasPrefix(rest, "127.0.0.1")
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

// validateKeybindings checks every key is a single printable character so the
// TUI can match it against key presses.
func (c *Config) validateKeybindings() error {
	var errs criterio.FieldErrorsBuilder
	for key := range c.Keybindings {
		if utf8.RuneCountInString(key) != 1 {
			errs = errs.Append(fmt.Sprintf("keybindings[%q]", key), fmt.Errorf("key must be a single character"))
		}
	}
	return errs.ToError()
}
