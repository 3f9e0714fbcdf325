package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/quickselect/internal/actions"
	"github.com/zjrosen/quickselect/internal/config"
	"github.com/zjrosen/quickselect/internal/log"
)

var pairMultiline bool

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Manage custom delimiter pairs in the config file",
}

var pairAddCmd = &cobra.Command{
	Use:   "add <name> <open> <close>",
	Short: "Add a delimiter pair",
	Long: `Add a delimiter pair to the config file in use. Other settings and
comments in the file are kept.

Examples:
  quickselect pair add angle '<' '>'
  quickselect pair add pipe '|' '|' --multiline`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs := slices.Clone(cfg.Pairs)
		pairs = append(pairs, config.PairConfig{
			Name:      args[0],
			Open:      args[1],
			Close:     args[2],
			Multiline: pairMultiline,
		})
		return savePairs(cmd, pairs, "Added")
	},
}

var pairRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a delimiter pair",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs := slices.DeleteFunc(slices.Clone(cfg.Pairs), func(p config.PairConfig) bool {
			return p.Name == args[0]
		})
		if len(pairs) == len(cfg.Pairs) {
			return fmt.Errorf("pair %q: %w", args[0], actions.ErrUnknownAction)
		}
		return savePairs(cmd, pairs, "Removed")
	},
}

func init() {
	pairAddCmd.Flags().BoolVarP(&pairMultiline, "multiline", "m", false, "let quote-style pairs span lines")
	pairCmd.AddCommand(pairAddCmd, pairRemoveCmd)
	rootCmd.AddCommand(pairCmd)
}

// savePairs validates pairs against the built-ins and writes them back.
func savePairs(cmd *cobra.Command, pairs []config.PairConfig, verb string) error {
	next := cfg
	next.Pairs = pairs
	if err := config.ValidatePairs(pairs); err != nil {
		return err
	}
	if _, err := actions.FromConfig(next); err != nil {
		return err
	}

	path := configPath()
	if err := config.SavePairs(path, pairs); err != nil {
		log.ErrorErr(log.CatConfig, "Saving pairs failed", err, "path", path)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	cfg = next
	log.Info(log.CatConfig, verb+" pair", "path", path, "count", len(pairs))
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s pair in %s\n", verb, path)
	return err
}

// configPath is the file edits go to: the one loaded, else the default.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.DefaultConfigPath
}
