package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults registers the default values on v so unset keys fall back to them.
func SetDefaults(v *viper.Viper) {
	defaults := Defaults()
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	v.SetDefault("ui.line_numbers", defaults.UI.LineNumbers)
	v.SetDefault("ui.selection_color", defaults.UI.SelectionColor)
	v.SetDefault("watch.enabled", defaults.Watch.Enabled)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
}

// Load reads and validates the config file at path with its own viper
// instance, leaving the global one untouched.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Decode(v)
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
