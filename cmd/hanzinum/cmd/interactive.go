package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/hanzinum/internal/tui"
	"github.com/f3rmion/hanzinum/internal/tui/bigchar"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch an interactive converter. The rendering updates as you type.

Controls:
  Enter    Keep the result in the history
  Tab      Toggle standard / currency form
  Ctrl+T   Toggle traditional / simplified script
  Ctrl+Y   Copy the result to the clipboard
  Esc      Quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	addRenderFlags(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.New(opts, logger).WithBanner(bigchar.System()),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
