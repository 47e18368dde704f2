package pipeline

import (
	"sort"

	"golang.org/x/text/collate"

	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/row"
)

// Sort orders rows in place by column. The sort is stable.
func Sort(l *i18n.Localizer, rows []row.Row, column string, order filter.Order) {
	if order == 0 {
		order = filter.Ascending
	}
	c := l.Collator()
	sort.SliceStable(rows, func(i, j int) bool {
		return Compare(c, cellOf(rows[i], column), cellOf(rows[j], column), order) < 0
	})
}

func cellOf(r row.Row, column string) row.Cell {
	if c, ok := r.Cell(column); ok {
		return c
	}
	return row.Unused()
}

// Compare orders two cells of one column. Invalid cells go last in both
// directions; among them the placeholder goes after everything else.
func Compare(c *collate.Collator, a, b row.Cell, order filter.Order) int {
	if a.Display == b.Display {
		return 0
	}
	o := int(order)
	ak, bk := a.Key.Kind(), b.Key.Kind()

	switch {
	case ak == row.KindInvalid && bk == row.KindInvalid:
		switch {
		case a.Display == row.Placeholder:
			return 1
		case b.Display == row.Placeholder:
			return -1
		}
		return c.CompareString(a.Display, b.Display) * o
	case ak == row.KindInvalid:
		return 1
	case bk == row.KindInvalid:
		return -1
	case ak == row.KindText && bk == row.KindText:
		return c.CompareString(a.Key.Str(), b.Key.Str()) * o
	case ak == row.KindNumeric && bk == row.KindNumeric:
		return sign(a.Key.Num()-b.Key.Num()) * o
	case ak == row.KindNumeric && bk == row.KindText:
		return -o
	case ak == row.KindText && bk == row.KindNumeric:
		return o
	}
	return c.CompareString(a.Display, b.Display) * o
}

func sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
