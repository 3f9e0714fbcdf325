package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/quickselect/internal/actions"
	"github.com/zjrosen/quickselect/internal/config"
	"github.com/zjrosen/quickselect/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
	// cfgErr is reported by the first command that needs the config.
	cfgErr error
	// closeLog flushes the debug log, if one was opened.
	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "quickselect",
	Short: "Select the text between matching delimiters",
	Long: `quickselect finds the innermost pair of brackets or quotes around a
position in a file and selects the text between them.

Use "select" from scripts and editors, "view" to try it interactively.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { closeLog() },
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .quickselect/config.yaml, then ~/.config/quickselect/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug logs (same as "+log.EnvDebug+"=1)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .quickselect/config.yaml (current directory)
		// 2. ~/.config/quickselect/config.yaml (user config)
		if _, err := os.Stat(config.DefaultConfigPath); err == nil {
			viper.SetConfigFile(config.DefaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "quickselect"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file found anywhere - create the commented default.
			if writeErr := config.WriteDefaultConfig(config.DefaultConfigPath); writeErr == nil {
				viper.SetConfigFile(config.DefaultConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		} else {
			cfgErr = fmt.Errorf("reading config %s: %w", viper.ConfigFileUsed(), err)
			return
		}
	}

	cfg, cfgErr = config.Decode(viper.GetViper())
}

// setup opens the debug log and surfaces config errors before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if !cfg.Debug && !log.DebugRequested() {
		return nil
	}

	var (
		closer func()
		err    error
	)
	if cmd.Name() == viewCmd.Name() {
		closer, err = log.InitWithTeaLog(cfg.LogFile, "quickselect")
	} else {
		closer, err = log.Init(cfg.LogFile)
	}
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	closeLog = closer
	log.Info(log.CatCLI, "Starting", "command", cmd.Name(), "version", version, "config", viper.ConfigFileUsed())
	return nil
}

// registry builds the action registry for the loaded config.
func registry() (*actions.Registry, error) {
	r, err := actions.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return r, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
