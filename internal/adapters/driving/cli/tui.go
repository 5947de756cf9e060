package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/curata/internal/adapters/driving/tui"
	"github.com/custodia-labs/curata/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Curata.

The TUI walks the draft and published collections one post at a time.
Edits made to the collection files by other programs are picked up
automatically.

Controls:
  n/p      - Next / previous post
  P        - Publish the current draft
  r        - Toggle ready to publish
  t        - Set tag
  d        - Delete post
  Esc      - Back
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the installed services.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Lifecycle: lifecycleService,
		Tags:      tagService,
		Export:    exportService,
		Media:     mediaService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tuiPorts()
	if newWatcher != nil {
		w, err := newWatcher()
		if err != nil {
			logger.Warn("file watching disabled: %v", err)
		} else {
			defer w.Close()
			ports.Watcher = w
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
