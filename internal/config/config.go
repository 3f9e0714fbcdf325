// Package config provides configuration types and defaults for quickselect.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/zjrosen/quickselect/internal/log"
)

// DefaultConfigPath is where a commented default config is written when no
// config file is found.
const DefaultConfigPath = ".quickselect/config.yaml"

// PairConfig defines an extra delimiter action.
// Equal open and close make a quote-style pair, anything else a bracket pair.
type PairConfig struct {
	Name      string `mapstructure:"name"`
	Open      string `mapstructure:"open"`
	Close     string `mapstructure:"close"`
	Multiline bool   `mapstructure:"multiline"` // quote pairs only: allow spanning lines
}

// OpenRune returns the opening delimiter. Only meaningful after Validate.
func (p PairConfig) OpenRune() rune {
	r, _ := utf8.DecodeRuneInString(p.Open)
	return r
}

// CloseRune returns the closing delimiter. Only meaningful after Validate.
func (p PairConfig) CloseRune() rune {
	r, _ := utf8.DecodeRuneInString(p.Close)
	return r
}

// IsQuote reports whether the pair uses the same character on both sides.
func (p PairConfig) IsQuote() bool {
	return p.Open == p.Close
}

// Config holds all configuration options for quickselect.
type Config struct {
	Debug    bool         `mapstructure:"debug"`
	LogFile  string       `mapstructure:"log_file"`
	Pairs    []PairConfig `mapstructure:"pairs"`
	Disabled []string     `mapstructure:"disabled"` // built-in action IDs to hide
	UI       UIConfig     `mapstructure:"ui"`
	Watch    WatchConfig  `mapstructure:"watch"`
}

// UIConfig holds viewer options.
type UIConfig struct {
	ShowStatusBar  bool   `mapstructure:"show_status_bar"`
	LineNumbers    bool   `mapstructure:"line_numbers"`
	SelectionColor string `mapstructure:"selection_color"` // hex color e.g. "#7C3AED"
}

// WatchConfig controls reloading the viewed file when it changes on disk.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Debug:   false,
		LogFile: "quickselect-debug.log",
		UI: UIConfig{
			ShowStatusBar:  true,
			LineNumbers:    true,
			SelectionColor: "#7C3AED",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
	}
}

// ValidatePairs checks custom pair definitions.
// Name collisions with built-in actions are checked by the action registry.
func ValidatePairs(pairs []PairConfig) error {
	seen := make(map[string]bool, len(pairs))
	for i, p := range pairs {
		if p.Name == "" {
			return fmt.Errorf("pair %d: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("pair %d (%s): duplicate name", i, p.Name)
		}
		seen[p.Name] = true

		if utf8.RuneCountInString(p.Open) != 1 {
			return fmt.Errorf("pair %d (%s): open must be a single character, got %q", i, p.Name, p.Open)
		}
		if utf8.RuneCountInString(p.Close) != 1 {
			return fmt.Errorf("pair %d (%s): close must be a single character, got %q", i, p.Name, p.Close)
		}
		if p.Multiline && !p.IsQuote() {
			return fmt.Errorf("pair %d (%s): multiline only applies to pairs with the same open and close", i, p.Name)
		}
	}
	return nil
}

// ValidateUI checks viewer options.
func ValidateUI(ui UIConfig) error {
	if ui.SelectionColor == "" {
		return nil
	}
	if !isHexColor(ui.SelectionColor) {
		return fmt.Errorf("ui.selection_color must be a hex color like \"#7C3AED\", got %q", ui.SelectionColor)
	}
	return nil
}

// ValidateWatch checks file watching options.
func ValidateWatch(w WatchConfig) error {
	if w.Enabled && w.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive when watching is enabled, got %s", w.Debounce)
	}
	return nil
}

// Validate runs every section validator.
func (c Config) Validate() error {
	if err := ValidatePairs(c.Pairs); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	return ValidateWatch(c.Watch)
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# quickselect configuration

# Write debug logs (same as --debug or QUICKSELECT_DEBUG=1)
debug: false
log_file: quickselect-debug.log

# Extra delimiter actions. Same open and close = quote-style pairing,
# different = nesting-aware bracket pairing.
# pairs:
#   - name: angle
#     open: "<"
#     close: ">"
#   - name: pipe
#     open: "|"
#     close: "|"
#     multiline: false

# Built-in actions to hide: paren, square, curly, single-quote,
# double-quote, backtick
# disabled:
#   - backtick

# Viewer settings
ui:
  show_status_bar: true     # Show caret position and messages
  line_numbers: true        # Show a line number gutter
  selection_color: "#7C3AED"

# Reload the viewed file when it changes on disk
watch:
  enabled: true
  debounce: 200ms
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
