package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/quickselect/internal/log"
	"github.com/zjrosen/quickselect/internal/pubsub"
	"github.com/zjrosen/quickselect/internal/ui/viewer"
	"github.com/zjrosen/quickselect/internal/watcher"
)

var noWatch bool

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open a file and try selections interactively",
	Long: `Open a file read-only. Move with hjkl or the arrow keys, press a
delimiter key to select inside the pair around the caret, and press it again
to include the delimiters. Press o before a delimiter to select the outer text
directly, esc to clear, and q to quit.

The file is reloaded when it changes on disk unless watching is disabled.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the file when it changes")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]
	r, err := registry()
	if err != nil {
		return err
	}
	doc, err := viewer.LoadFile(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var changes *pubsub.Broker[watcher.Change]
	if cfg.Watch.Enabled && !noWatch {
		wcfg := watcher.DefaultConfig(path)
		if cfg.Watch.Debounce > 0 {
			wcfg.Debounce = cfg.Watch.Debounce
		}
		w, err := watcher.New(wcfg)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			_ = w.Stop()
			return err
		}
		defer func() {
			if err := w.Stop(); err != nil {
				log.ErrorErr(log.CatWatcher, "Stopping watcher", err)
			}
		}()
		log.Debug(log.CatWatcher, "Watching", "path", w.Path(), "debounce", wcfg.Debounce)
		changes = w.Broker()
	}

	model := viewer.New(ctx, viewer.Options{
		Path:     path,
		Doc:      doc,
		Registry: r,
		UI:       cfg.UI,
		Changes:  changes,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
