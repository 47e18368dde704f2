package ruleset_test

import (
	"context"
	"testing"

	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/row"
	"github.com/ddbrown30/item-browser/internal/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gearBase() ruleset.Base {
	return ruleset.Base{
		L:          i18n.Default(),
		RulesetID:  "test",
		Label:      "Test",
		Types:      []string{"gear"},
		ColumnSets: map[string][]string{"gear": {"weight"}},
		Headers:    map[string]ruleset.Header{"weight": {Label: "ITEM_BROWSER.Weight", Width: 8, Sortable: true}},
		Searchers: []ruleset.Search{
			{Key: ruleset.DescriptionSearch, Label: "ITEM_BROWSER.SearchDesc", Field: "system.description"},
		},
	}
}

func TestRegistry(t *testing.T) {
	r := ruleset.NewRegistry()
	r.Register("test", func(l *i18n.Localizer) ruleset.Handler {
		b := gearBase()
		b.L = l
		return b
	})

	assert.True(t, r.Has("test"))
	assert.False(t, r.Has("nope"))
	assert.Equal(t, []string{"test"}, r.IDs())

	h := r.Lookup("test", nil)
	assert.Equal(t, "test", h.ID())

	fallback := r.Lookup("nope", nil)
	assert.Equal(t, ruleset.DefaultID, fallback.ID())
	assert.Empty(t, fallback.EntityTypes())
	assert.Empty(t, fallback.Columns("weapon"))

	assert.Panics(t, func() { r.Register("test", nil) })
	assert.Panics(t, func() { r.Register(" ", nil) })
}

func TestBaseHeaders(t *testing.T) {
	b := gearBase()

	h := b.Header("weight")
	assert.Equal(t, "weight", h.Key)
	assert.Equal(t, 8, h.Width)

	h = b.Header("shots")
	assert.Equal(t, "ITEM_BROWSER.Shots", h.Label)
	assert.True(t, h.Sortable)

	h = b.Header(row.NameColumn)
	assert.True(t, h.Sortable)
}

func TestBaseColumnsAreCopies(t *testing.T) {
	b := gearBase()
	cols := b.Columns("gear")
	cols[0] = "changed"
	assert.Equal(t, []string{"weight"}, b.Columns("gear"))
	assert.Empty(t, b.Columns("weapon"))

	b.EveryType = []string{"level"}
	assert.Equal(t, []string{"level"}, b.Columns("weapon"))
}

func TestTooltip(t *testing.T) {
	b := gearBase()

	world := entity.Entity{Scope: entity.WorldScope(), Folder: []string{"Loot", "Gems"}}
	assert.Equal(t, "World/Loot/Gems/", b.Tooltip(world))
	assert.Equal(t, "World/", b.Tooltip(entity.Entity{}))

	pack := entity.Entity{Scope: entity.PackScope("dnd5e.items", "Items (SRD)", "items")}
	assert.Equal(t, "Compendium: Items (SRD) (items)", b.Tooltip(pack))
}

func TestProjectAlignsColumns(t *testing.T) {
	b := gearBase()
	r := b.Project(context.Background(), nil, entity.Entity{ID: "Item.1", Type: "gear", Name: "Rope", Img: "rope.png"})

	assert.Equal(t, "Item.1", r.ID)
	assert.Equal(t, "Rope", r.Name.Display)
	assert.Equal(t, row.KindText, r.Name.Key.Kind())
	assert.Equal(t, "rope.png", r.Icon)
	require.Len(t, r.Columns, 1)
	assert.Equal(t, row.Unused(), r.Columns["weight"])
}

func TestApplySearches(t *testing.T) {
	b := gearBase()
	items := []entity.Entity{
		{ID: "1", System: map[string]any{"description": "A coil of ROPE"}},
		{ID: "2", System: map[string]any{"description": "A lantern"}},
		{ID: "3"},
	}

	all := b.Filter(items, filter.New())
	assert.Len(t, all, 3)

	st := filter.New().WithSearch(ruleset.DescriptionSearch, "rope")
	got := b.Filter(items, st)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Len(t, items, 3)
}

func TestChoices(t *testing.T) {
	l := i18n.Default()
	items := []entity.Entity{
		{System: map[string]any{"rarity": "rare"}},
		{System: map[string]any{"rarity": "common"}},
		{System: map[string]any{"rarity": "rare"}},
		{},
	}
	opts := ruleset.Choices(l, items,
		func(e entity.Entity) []string { return []string{e.Text("system.rarity")} },
		i18n.Humanize, "All")

	assert.Equal(t, []ruleset.Option{
		{Value: "", Label: "All"},
		{Value: "common", Label: "Common"},
		{Value: "rare", Label: "Rare"},
	}, opts)

	empty := ruleset.Choices(l, nil, func(entity.Entity) []string { return nil }, i18n.Humanize, "All")
	assert.Equal(t, []ruleset.Option{{Value: "", Label: "All"}}, empty)
}

func TestSystemCell(t *testing.T) {
	e := entity.Entity{System: map[string]any{
		"price":    0,
		"rof":      1,
		"pp":       "2",
		"range":    "12/24/48",
		"reach":    "Cone",
		"duration": 5,
		"blank":    "",
	}}

	_, ok := ruleset.SystemCell(e, "price", ruleset.NumberField, true)
	assert.False(t, ok)

	c, ok := ruleset.SystemCell(e, "price", ruleset.NumberField, false)
	require.True(t, ok)
	assert.Equal(t, row.NumberCell(0), c)

	c, ok = ruleset.SystemCell(e, "pp", ruleset.NumberField, false)
	require.True(t, ok)
	assert.Equal(t, row.Numeric(2), c.Key)

	c, ok = ruleset.SystemCell(e, "range", ruleset.NumberField, false)
	require.True(t, ok)
	assert.Equal(t, row.Cell{Display: "12/24/48", Key: row.Numeric(12)}, c)

	c, ok = ruleset.SystemCell(e, "reach", ruleset.NumberField, false)
	require.True(t, ok)
	assert.Equal(t, "Cone", c.Display)
	assert.True(t, c.Key.IsInvalid())

	c, ok = ruleset.SystemCell(e, "duration", ruleset.TextField, false)
	require.True(t, ok)
	assert.Equal(t, row.TextCell("5"), c)

	_, ok = ruleset.SystemCell(e, "blank", ruleset.NumberField, false)
	assert.False(t, ok)
	_, ok = ruleset.SystemCell(e, "missing", ruleset.TextField, false)
	assert.False(t, ok)
}

func TestOrdinal(t *testing.T) {
	order := []string{"novice", "seasoned"}
	v, ok := ruleset.Ordinal(order, "Seasoned")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = ruleset.Ordinal(order, "godlike")
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	cols := row.Columns([]string{"a", "b", "c", "d"})

	ruleset.Apply(cols, "a", func() (row.Cell, bool, error) { return row.NumberCell(1), true, nil })
	ruleset.Apply(cols, "b", func() (row.Cell, bool, error) { return row.Cell{}, false, nil })
	ruleset.Apply(cols, "c", func() (row.Cell, bool, error) {
		return row.Cell{Display: "2d"}, true, assert.AnError
	})
	ruleset.Apply(cols, "d", func() (row.Cell, bool, error) { panic("boom") })
	ruleset.Apply(cols, "undeclared", func() (row.Cell, bool, error) { return row.NumberCell(9), true, nil })

	assert.Equal(t, row.NumberCell(1), cols["a"])
	assert.Equal(t, row.Unused(), cols["b"])
	assert.Equal(t, "2d", cols["c"].Display)
	assert.True(t, cols["c"].Key.IsInvalid())
	assert.Equal(t, row.Placeholder, cols["d"].Display)
	assert.True(t, cols["d"].Key.IsInvalid())
	assert.Len(t, cols, 4)
}
