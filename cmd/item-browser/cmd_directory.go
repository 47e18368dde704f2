package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ddbrown30/item-browser/cmd/item-browser/tui"
	"github.com/ddbrown30/item-browser/internal/browser"
	"github.com/ddbrown30/item-browser/internal/notify"
)

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Show the world's item directory",
	Long: `Shows the world's items with the item browser entry point. The button can be
hidden or made compact with the show-entry-point-button and use-compact-button
settings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTerminal("directory"); err != nil {
			return err
		}
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		items, err := s.lib.WorldItems(ctx)
		if err != nil {
			return err
		}
		open := func() tui.BrowserModel {
			rec := &notify.Recorder{}
			d := browser.New(ctx, s.deps(rec), browser.Options{Browse: true})
			return tui.NewBrowserModel(ctx, d, rec)
		}
		m := tui.NewDirectoryModel(ctx, s.l, s.lib, items, s.cfg.Settings, open)
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("running directory: %w", err)
		}
		return nil
	},
}
