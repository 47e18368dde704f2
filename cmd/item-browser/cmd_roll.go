package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/dice"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

var rollCmd = &cobra.Command{
	Use:   "roll <id> [column]",
	Short: "Roll the dice formula shown in an item's column",
	Long: `Projects the item the way the browser does and rolls the formula behind the
given column, or the first column that has one.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		column := ""
		if len(args) == 2 {
			column = args[1]
		}
		name, formula, err := itemFormula(ctx, s.handler, s.lib, args[0], column)
		if err != nil {
			return err
		}
		if formula == "" {
			return errors.New(s.l.T("ITEM_BROWSER.NothingToRoll"))
		}
		r, err := dice.RollFormula(formula)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.l.T("ITEM_BROWSER.RollResult", name, r.Total, r.Breakdown))
		return nil
	},
}

// itemFormula projects an item and returns its name and the dice formula
// of column. An empty column picks the first declared column with a
// formula.
func itemFormula(ctx context.Context, h ruleset.Handler, r host.Resolver, id, column string) (string, string, error) {
	e, err := r.Resolve(ctx, id)
	if err != nil {
		return "", "", err
	}
	projected := h.Project(ctx, host.NewMemo(r), e)
	if column != "" {
		c, ok := projected.Columns[column]
		if !ok {
			return "", "", apperr.New(apperr.CodeFormulaInvalid, fmt.Sprintf("%s has no %s column", e.Name, column))
		}
		return e.Name, c.Formula, nil
	}
	for _, key := range h.Columns(e.Type) {
		if c, ok := projected.Columns[key]; ok && c.Formula != "" {
			return e.Name, c.Formula, nil
		}
	}
	return e.Name, "", nil
}
