package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/mcp"
	"github.com/ddbrown30/item-browser/internal/notify"
	"github.com/ddbrown30/item-browser/internal/row"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

var (
	listScope   scopeFlags
	listType    string
	listName    string
	listFilters []string
	listSearch  []string
	listSort    string
	listDesc    bool
	listLimit   int
	listFormat  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the rows the browser would show",
	Long: `Runs the browser's filter and sort pipeline without a terminal UI and prints
the visible rows. Structured filters and secondary searches take key=value
pairs using the ruleset's control keys.`,
	Example: `  item-browser list --type weapon --filter weaponType=martialM --sort damage --desc
  item-browser list --source dnd5e.items --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := parsePairs("filter", listFilters)
		if err != nil {
			return err
		}
		search, err := parsePairs("search", listSearch)
		if err != nil {
			return err
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		notes := notify.Logger(logger)
		opts, err := listScope.options(s.l, notes, true)
		if err != nil {
			return err
		}
		in := mcp.BrowseItemsInput{
			WorldItemsOnly:     opts.WorldItemsOnly,
			ValidFilterSources: opts.ValidFilterSources,
			ItemTypes:          opts.ItemTypes,
			Source:             opts.InitialSourceFilter,
			Type:               listType,
			Name:               listName,
			Filters:            filters,
			Search:             search,
			Sort:               listSort,
			Descending:         listDesc,
			Limit:              listLimit,
		}
		_, out, err := mcp.BrowseItemsHandler(s.deps(notes))(cmd.Context(), nil, in)
		if err != nil {
			return err
		}
		return writeRows(cmd.OutOrStdout(), listFormat, s.l, s.handler, out)
	},
}

// writeRows prints a browse result in one of the list formats.
func writeRows(w io.Writer, format string, l *i18n.Localizer, h ruleset.Handler, out mcp.BrowseItemsResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "tsv":
		fmt.Fprintln(w, strings.Join(append([]string{"id"}, headerLabels(l, h, out.Columns)...), "\t"))
		for _, r := range out.Rows {
			fmt.Fprintln(w, strings.Join(append([]string{r.ID}, cells(r, out.Columns)...), "\t"))
		}
		return nil
	case "table", "":
		if len(out.Rows) == 0 {
			fmt.Fprintln(w, l.T("ITEM_BROWSER.NoResults"))
			return nil
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers(headerLabels(l, h, out.Columns)...).
			StyleFunc(func(r, _ int) lipgloss.Style {
				if r == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
		for _, r := range out.Rows {
			t.Row(cells(r, out.Columns)...)
		}
		fmt.Fprintln(w, t.Render())
		fmt.Fprintln(w, l.T("ITEM_BROWSER.ItemCount", len(out.Rows), out.Total))
		return nil
	}
	return fmt.Errorf("unknown format %q (want table, tsv, yaml or json)", format)
}

// headerLabels returns the name header followed by the column headers.
func headerLabels(l *i18n.Localizer, h ruleset.Handler, columns []string) []string {
	labels := []string{l.T(h.Header(row.NameColumn).Label)}
	for _, c := range columns {
		labels = append(labels, l.T(h.Header(c).Label))
	}
	return labels
}

func cells(r mcp.RowResult, columns []string) []string {
	out := []string{r.Name}
	for _, c := range columns {
		v, ok := r.Columns[c]
		if !ok {
			v = row.Placeholder
		}
		out = append(out, v)
	}
	return out
}

func init() {
	listScope.register(listCmd)
	listCmd.Flags().StringVar(&listType, "type", "", "Item type filter")
	listCmd.Flags().StringVar(&listName, "name", "", "Case-insensitive name search")
	listCmd.Flags().StringArrayVar(&listFilters, "filter", nil, "Structured filter as key=value (repeatable)")
	listCmd.Flags().StringArrayVar(&listSearch, "search", nil, "Secondary search as key=value (repeatable)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Column to sort by (default name)")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort in descending order")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum rows to print (0 for all)")
	listCmd.Flags().StringVarP(&listFormat, "format", "o", "table", "Output format: table, tsv, yaml or json")
}
