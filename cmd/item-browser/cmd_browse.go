package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ddbrown30/item-browser/cmd/item-browser/tui"
	"github.com/ddbrown30/item-browser/internal/browser"
	"github.com/ddbrown30/item-browser/internal/notify"
)

var (
	browseScope scopeFlags
	selectScope scopeFlags
	selectPick  bool
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the item browser",
	Long:  "Opens the item browser in browse mode. Activating a row shows the item's sheet.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTerminal("browse"); err != nil {
			return err
		}
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		opts, err := browseScope.options(s.l, notify.Logger(logger), true)
		if err != nil {
			return err
		}
		_, _, err = runBrowser(cmd.Context(), s, opts, nil)
		return err
	},
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick an item and print its id",
	Long: `Opens the item browser as a picker. The chosen item's id is printed on
stdout; dismissing the browser exits with status 1 and prints nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTerminal("select"); err != nil {
			return err
		}
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		opts, err := selectScope.options(s.l, notify.Logger(logger), false)
		if err != nil {
			return err
		}

		var prepare func(*browser.Dialog) error
		if selectPick {
			prepare = pickScope
		}
		id, ok, err := runBrowser(cmd.Context(), s, opts, prepare)
		if err != nil {
			return err
		}
		if !ok {
			return errNoSelection
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

// runBrowser runs the browser TUI until the dialog closes and returns its
// result. When prepare is set the dialog is loaded first and handed to it
// before the table opens.
func runBrowser(ctx context.Context, s *session, opts browser.Options, prepare func(*browser.Dialog) error) (string, bool, error) {
	rec := &notify.Recorder{}
	d := browser.New(ctx, s.deps(rec), opts)
	if prepare != nil {
		if err := d.Reload(ctx); err != nil {
			d.Close()
			return "", false, err
		}
		if err := prepare(d); err != nil {
			d.Close()
			return "", false, err
		}
	}
	m := tui.NewBrowserModel(ctx, d, rec)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	d.Close()
	if err != nil {
		return "", false, fmt.Errorf("running browser: %w", err)
	}
	for _, n := range rec.Drain() {
		if n.Level == notify.Error {
			logger.Print(n)
		}
	}
	id, ok := d.Wait(ctx)
	return id, ok, nil
}

// pickScope asks for the starting source and type before the table opens.
func pickScope(d *browser.Dialog) error {
	st := d.State()
	source, typ := st.Source, st.Type

	sourceOpts := make([]huh.Option[string], 0, len(d.Sources()))
	for _, src := range d.Sources() {
		sourceOpts = append(sourceOpts, huh.NewOption(src.Label, src.ID))
	}
	typeOpts := make([]huh.Option[string], 0, len(d.TypeOptions()))
	for _, o := range d.TypeOptions() {
		typeOpts = append(typeOpts, huh.NewOption(o.Label, o.Value))
	}

	l := d.Localizer()
	fields := []huh.Field{
		huh.NewSelect[string]().
			Title(l.T("ITEM_BROWSER.Source")).
			Options(sourceOpts...).
			Value(&source),
	}
	if len(typeOpts) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title(l.T("ITEM_BROWSER.Type")).
			Options(typeOpts...).
			Value(&typ))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errNoSelection
		}
		return err
	}
	d.SetSource(source)
	d.SetType(typ)
	return nil
}

func init() {
	browseScope.register(browseCmd)
	selectScope.register(selectCmd)
	selectCmd.Flags().BoolVar(&selectPick, "pick", false, "Choose the starting source and type before the table opens")
}
