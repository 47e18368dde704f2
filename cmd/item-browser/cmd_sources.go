package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/mcp"
	"github.com/ddbrown30/item-browser/internal/notify"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

var sourcesScope scopeFlags

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the source and type filter choices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		notes := notify.Logger(logger)
		opts, err := sourcesScope.options(s.l, notes, true)
		if err != nil {
			return err
		}
		in := mcp.ListSourcesInput{
			WorldItemsOnly:     opts.WorldItemsOnly,
			ValidFilterSources: opts.ValidFilterSources,
			ItemTypes:          opts.ItemTypes,
			InitialSource:      opts.InitialSourceFilter,
		}
		_, out, err := mcp.ListSourcesHandler(s.deps(notes))(cmd.Context(), nil, in)
		if err != nil {
			return err
		}
		writeSources(cmd.OutOrStdout(), s.l, out)
		return nil
	},
}

func writeSources(w io.Writer, l *i18n.Localizer, out mcp.ListSourcesResult) {
	fmt.Fprintf(w, "%s:\n", l.T("ITEM_BROWSER.Source"))
	for _, src := range out.Sources {
		marker := " "
		if src.ID == out.InitialSource {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-24s %s\n", marker, src.ID, src.Label)
	}
	if len(out.Types) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", l.T("ITEM_BROWSER.Type"))
	for _, t := range out.Types {
		marker := " "
		if t.ID == out.DefaultType {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-24s %s\n", marker, t.ID, t.Label)
	}
}

var rulesetsCmd = &cobra.Command{
	Use:   "rulesets",
	Short: "List the supported rulesets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Without a readable library there is no active ruleset to mark.
		l, active := i18n.Default(), ""
		if s, err := openSession(cmd.Context()); err == nil {
			l, active = s.l, s.handler.ID()
			s.Close()
		}
		writeRulesets(cmd.OutOrStdout(), l, active)
		return nil
	},
}

func writeRulesets(w io.Writer, l *i18n.Localizer, active string) {
	for _, id := range ruleset.DefaultRegistry.IDs() {
		marker := " "
		if id == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-10s %s\n", marker, id, ruleset.Lookup(id, l).Title())
	}
}

func init() {
	sourcesScope.register(sourcesCmd)
}
