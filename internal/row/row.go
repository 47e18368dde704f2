// Package row holds the display-ready projection of an entity: a fixed
// common prefix plus the per-ruleset columns, each carrying a display string
// and a typed sort key.
package row

import (
	"fmt"
	"strconv"
)

// Placeholder is the display used for a declared column with no value.
const Placeholder = "-"

// NameColumn is the column key of the always-present name cell.
const NameColumn = "name"

// Kind discriminates the variants of a sort Key.
type Kind int

const (
	KindUnset   Kind = iota // display-only column, not sortable
	KindNumeric             // ordered by numeric value
	KindText                // ordered by collated text
	KindInvalid             // no meaningful value, always ordered last
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	case KindInvalid:
		return "invalid"
	default:
		return "unset"
	}
}

// Key is a tagged sort value. The zero Key is unset.
type Key struct {
	kind Kind
	num  float64
	text string
}

// Numeric returns a numeric sort key.
func Numeric(v float64) Key { return Key{kind: KindNumeric, num: v} }

// Text returns a text sort key.
func Text(s string) Key { return Key{kind: KindText, text: s} }

// Invalid returns the shared sentinel key for values that could not be derived.
func Invalid() Key { return Key{kind: KindInvalid} }

// Kind reports which variant the key holds.
func (k Key) Kind() Kind { return k.kind }

// Num returns the numeric value; zero for non-numeric keys.
func (k Key) Num() float64 { return k.num }

// Str returns the text value; empty for non-text keys.
func (k Key) Str() string { return k.text }

// IsInvalid reports whether the key is the invalid sentinel.
func (k Key) IsInvalid() bool { return k.kind == KindInvalid }

func (k Key) String() string {
	switch k.kind {
	case KindNumeric:
		return strconv.FormatFloat(k.num, 'f', -1, 64)
	case KindText:
		return strconv.Quote(k.text)
	default:
		return k.kind.String()
	}
}

// Cell is one rendered value of a row.
type Cell struct {
	Display string
	Key     Key
	// Formula is the dice formula behind the display, when there is one.
	Formula string
}

// Unused is the cell every declared column starts from.
func Unused() Cell {
	return Cell{Display: Placeholder, Key: Invalid()}
}

// NumberCell builds a cell whose display is the plain number.
func NumberCell(v float64) Cell {
	return Cell{Display: FormatNumber(v), Key: Numeric(v)}
}

// TextCell builds a cell sorted by its own display.
func TextCell(s string) Cell {
	return Cell{Display: s, Key: Text(s)}
}

// DisplayCell builds an unsortable cell.
func DisplayCell(s string) Cell {
	return Cell{Display: s}
}

// Row is the projection of one entity. Rows are rebuilt on every refresh
// and never mutated afterwards.
type Row struct {
	ID      string
	Type    string
	Icon    string
	Name    Cell
	Tooltip string
	Columns map[string]Cell
}

// Cell returns the cell for a column key, including the name column.
func (r Row) Cell(column string) (Cell, bool) {
	if column == NameColumn {
		return r.Name, true
	}
	c, ok := r.Columns[column]
	return c, ok
}

// Derive runs fn and turns a returned error or a panic into an invalid cell.
// fallback is shown when the derivation fails before producing a display.
func Derive(fallback string, fn func() (Cell, error)) (c Cell) {
	if fallback == "" {
		fallback = Placeholder
	}
	defer func() {
		if r := recover(); r != nil {
			c = Cell{Display: fallback, Key: Invalid()}
		}
	}()
	c, err := fn()
	if err != nil {
		display := c.Display
		if display == "" {
			display = fallback
		}
		return Cell{Display: display, Key: Invalid(), Formula: c.Formula}
	}
	return c
}

// Columns returns a column map pre-filled with Unused cells for each key.
func Columns(keys []string) map[string]Cell {
	cols := make(map[string]Cell, len(keys))
	for _, k := range keys {
		cols[k] = Unused()
	}
	return cols
}

// Set stores c under column only if the column is declared in cols.
func Set(cols map[string]Cell, column string, c Cell) {
	if _, ok := cols[column]; ok {
		cols[column] = c
	}
}

// FormatNumber renders v without a trailing fraction when it is integral.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%g", v)
}
