package ruleset

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/row"
)

// DescriptionSearch is the secondary search key shared by the rulesets that
// search item descriptions.
const DescriptionSearch = "desc"

// defaultWidth is the column width used when a header is not configured.
const defaultWidth = 10

// Base holds the declarative half of a handler and implements the
// behaviour every ruleset shares. Concrete handlers embed it and override
// Project, Filter and FilterOptions as needed. Base on its own is the
// default handler.
type Base struct {
	L *i18n.Localizer

	RulesetID string
	Label     string
	Types     []string
	// ColumnSets maps an entity type to its ordered column keys.
	ColumnSets map[string][]string
	// EveryType is used for types missing from ColumnSets.
	EveryType []string
	Headers   map[string]Header
	Fields    []string
	Default   string
	Searchers []Search
}

// NewDefault returns the handler used for unknown rulesets: no types, no
// columns, no structured filters.
func NewDefault(l *i18n.Localizer) Handler {
	if l == nil {
		l = i18n.Default()
	}
	return Base{L: l, RulesetID: DefaultID, Label: "Generic"}
}

func (b Base) ID() string    { return b.RulesetID }
func (b Base) Title() string { return b.Label }

func (b Base) EntityTypes() []string {
	return append([]string(nil), b.Types...)
}

func (b Base) Columns(entityType string) []string {
	if cols, ok := b.ColumnSets[entityType]; ok {
		return append([]string(nil), cols...)
	}
	return append([]string(nil), b.EveryType...)
}

// Header returns the configured header, or a sortable one labelled
// ITEM_BROWSER.<Column>.
func (b Base) Header(column string) Header {
	if column == row.NameColumn {
		return Header{Key: row.NameColumn, Label: "ITEM_BROWSER.Name", Width: 30, Sortable: true}
	}
	if h, ok := b.Headers[column]; ok {
		h.Key = column
		if h.Width == 0 {
			h.Width = defaultWidth
		}
		return h
	}
	return Header{Key: column, Label: "ITEM_BROWSER." + upperFirst(column), Width: defaultWidth, Sortable: true}
}

func (b Base) IndexFields() []string {
	return append([]string(nil), b.Fields...)
}

func (b Base) DefaultType() string { return b.Default }

func (b Base) Searches() []Search {
	return append([]Search(nil), b.Searchers...)
}

// Project returns the common row with every declared column unused.
func (b Base) Project(_ context.Context, _ host.Resolver, e entity.Entity) row.Row {
	return b.NewRow(e)
}

// Filter applies the secondary searches.
func (b Base) Filter(entities []entity.Entity, st filter.State) []entity.Entity {
	return b.ApplySearches(entities, st)
}

func (b Base) FilterOptions([]entity.Entity) []Control { return nil }

// NewRow builds the common part of a row: identity, name, icon and
// tooltip, plus an Unused cell for every column declared for the type.
func (b Base) NewRow(e entity.Entity) row.Row {
	return row.Row{
		ID:      e.ID,
		Type:    e.Type,
		Icon:    e.Img,
		Name:    row.TextCell(e.Name),
		Tooltip: b.Tooltip(e),
		Columns: row.Columns(b.Columns(e.Type)),
	}
}

// Tooltip describes where an entity lives: the pack label and name for
// pack entities, the folder path for world entities.
func (b Base) Tooltip(e entity.Entity) string {
	if !e.Scope.IsWorld() {
		return b.L.T("ITEM_BROWSER.CompendiumTip", e.Scope.PackLabel, e.Scope.PackName)
	}
	path := ""
	if len(e.Folder) > 0 {
		path = strings.Join(e.Folder, "/") + "/"
	}
	return b.L.T("ITEM_BROWSER.WorldTip", path)
}

// ApplySearches keeps entities whose searched fields contain the search
// text, ignoring case. Empty searches pass everything.
func (b Base) ApplySearches(entities []entity.Entity, st filter.State) []entity.Entity {
	out := entities
	for _, s := range b.Searchers {
		text := st.SearchText(s.Key)
		if text == "" {
			continue
		}
		field := s.Field
		out = Keep(out, func(e entity.Entity) bool {
			return ContainsFold(e.Text(field), text)
		})
	}
	return out
}

// Deriver computes one column. ok is false when the entity has no value for
// the column, which leaves the Unused cell in place.
type Deriver func() (c row.Cell, ok bool, err error)

// Apply runs d for column if the column is declared in cols. Errors and
// panics produce an Invalid cell that keeps any partial display.
func Apply(cols map[string]row.Cell, column string, d Deriver) {
	if _, declared := cols[column]; !declared {
		return
	}
	present := true
	c := row.Derive("", func() (row.Cell, error) {
		c, ok, err := d()
		present = ok || err != nil
		return c, err
	})
	if present {
		cols[column] = c
	}
}

// Keep returns the entities for which pred holds, in order. The input is
// never modified.
func Keep(entities []entity.Entity, pred func(entity.Entity) bool) []entity.Entity {
	out := make([]entity.Entity, 0, len(entities))
	for _, e := range entities {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// ContainsFold reports whether sub is within s, ignoring case.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Choices builds a control's options from the values present among the
// candidates, sorted by label, behind a leading "all" option.
func Choices(l *i18n.Localizer, entities []entity.Entity, values func(entity.Entity) []string, label func(string) string, allLabel string) []Option {
	seen := map[string]bool{}
	var present []Option
	for _, e := range entities {
		for _, v := range values(e) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			present = append(present, Option{Value: v, Label: label(v)})
		}
	}
	SortOptions(l, present)
	return append([]Option{{Value: "", Label: allLabel}}, present...)
}

// SortOptions orders options by collated label, then value.
func SortOptions(l *i18n.Localizer, opts []Option) {
	c := l.Collator()
	sort.SliceStable(opts, func(i, j int) bool {
		if cmp := c.CompareString(opts[i].Label, opts[j].Label); cmp != 0 {
			return cmp < 0
		}
		return opts[i].Value < opts[j].Value
	})
}

// Ordinal returns the position of v in order, ignoring case.
func Ordinal(order []string, v string) (float64, bool) {
	for i, o := range order {
		if strings.EqualFold(o, v) {
			return float64(i), true
		}
	}
	return 0, false
}

// FieldKind fixes the sort key kind of a plain system field, so every row
// of its column sorts the same way.
type FieldKind int

const (
	// NumberField sorts by the value, or by the leading number of a string
	// such as "12/24/48". A string without one is Invalid.
	NumberField FieldKind = iota
	// TextField sorts by the collated display.
	TextField
)

var leadingNumber = regexp.MustCompile(`^[+-]?\d+(\.\d+)?`)

// SystemCell reads a plain system field as a cell of the given kind. Zero
// is treated as absent when ignoreZero is set.
func SystemCell(e entity.Entity, field string, kind FieldKind, ignoreZero bool) (row.Cell, bool) {
	v, ok := e.Field("system." + field)
	if !ok {
		return row.Cell{}, false
	}
	var display string
	f, numeric := entity.AsFloat(v)
	if s, isString := v.(string); isString {
		display = strings.TrimSpace(s)
		if display == "" {
			return row.Cell{}, false
		}
		f, numeric = 0, false
		if m := leadingNumber.FindString(display); m != "" {
			f, _ = strconv.ParseFloat(m, 64)
			numeric = true
		}
	} else {
		if !numeric {
			return row.Cell{}, false
		}
		display = row.FormatNumber(f)
	}
	if numeric && f == 0 && ignoreZero && display == leadingNumber.FindString(display) {
		return row.Cell{}, false
	}

	switch {
	case kind == TextField:
		return row.TextCell(display), true
	case numeric:
		return row.Cell{Display: display, Key: row.Numeric(f)}, true
	}
	return row.Cell{Display: display, Key: row.Invalid()}, true
}

// Label returns the catalog text for key, or the humanized id when the
// catalog has no entry.
func Label(l *i18n.Localizer, key, id string) string {
	return l.TOr(key, i18n.Humanize(id))
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
