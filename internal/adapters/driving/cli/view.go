package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	sourcefile "github.com/custodia-labs/extractview/internal/adapters/driven/source/file"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui"
	"github.com/custodia-labs/extractview/internal/logger"
)

var (
	viewWatch   bool
	viewNoMouse bool
)

// stdoutIsTerminal reports whether the viewer can take over the screen.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Browse an extraction in the terminal",
	Long: `Open the document and its extracted values side by side.

The file may be JSON, TOML or YAML. Moving over a highlighted span or an
outline entry highlights the same annotation in both panes.

Controls:
  ←/h, →/l  - Previous / next span in the document
  ↑/k, ↓/j  - Move in the outline
  Enter     - Expand / collapse a category
  Tab       - Switch pane
  Esc       - Clear highlight
  r         - Reload the file
  ?         - Toggle help
  q         - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVarP(&viewWatch, "watch", "w", false, "reload when the file changes")
	viewCmd.Flags().BoolVar(&viewNoMouse, "no-mouse", false, "disable pointer hover and click")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) (err error) {
	if !stdoutIsTerminal() {
		return errors.New("view needs a terminal; use render or inspect instead")
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	settingsService, err := openSettings()
	if err != nil {
		return err
	}
	settings := settingsService.Get()
	if cmd.Flags().Changed("watch") {
		settings.Watch = viewWatch
	}
	if cmd.Flags().Changed("no-mouse") {
		settings.Mouse = !viewNoMouse
	}

	viewer, source, err := loadViewer(cmd, args, settings)
	if err != nil {
		return err
	}
	reportRejected(cmd, viewer.Rejected())

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	var changes <-chan struct{}
	if settings.Watch {
		input, ok := source.(*sourcefile.Source)
		if !ok {
			return errors.New("--watch needs an input file")
		}
		watcher := sourcefile.NewWatcher(input.Path(), sourcefile.DefaultDebounce)
		defer watcher.Close()

		changes, err = watcher.Watch(ctx)
		if err != nil {
			return fmt.Errorf("watching %s: %w", input.Path(), err)
		}
	}

	title := "extractview"
	if t := viewer.Extraction().Title; t != "" {
		title = "extractview - " + t
	}
	app, err := tui.NewApp(tui.NewPorts(viewer), tui.Options{Title: title, Mouse: settings.Mouse})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	// Log lines would tear the alternate screen; replay them on exit.
	release := logger.Hold()
	defer release()

	if err := app.Run(changes); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
