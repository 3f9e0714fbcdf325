package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/quickselect/internal/presentation"
)

var actionsFormat string

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the available selection actions",
	Long: `List the built-in and configured selection actions.

Examples:
  quickselect actions
  quickselect actions --format json | jq '.[].id'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := presentation.ParseFormat(actionsFormat)
		if err != nil {
			return err
		}
		r, err := registry()
		if err != nil {
			return err
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout(), format)
		return formatter.FormatActions(presentation.FromActions(r.All()))
	},
}

func init() {
	actionsCmd.Flags().StringVarP(&actionsFormat, "format", "f", "text", "output format: text, json, or yaml")
	rootCmd.AddCommand(actionsCmd)
}
