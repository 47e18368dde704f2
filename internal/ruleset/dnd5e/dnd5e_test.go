package dnd5e_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/row"
	"github.com/ddbrown30/item-browser/internal/ruleset"
	"github.com/ddbrown30/item-browser/internal/ruleset/dnd5e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handler() ruleset.Handler {
	return dnd5e.New(i18n.Default())
}

func srd() *host.Memory {
	return &host.Memory{PackList: []*host.MemoryPack{{
		Meta:   host.PackMetadata{ID: dnd5e.BaseItemPack, Name: "items", Title: "Items (SRD)", DocumentName: host.DocumentItem},
		Access: entity.PermissionObserver,
		Items: []entity.Entity{
			{ID: entity.PackItemID(dnd5e.BaseItemPack, "longsword"), Type: "weapon", Name: "Longsword"},
		},
	}}}
}

func longsword() entity.Entity {
	return entity.Entity{
		ID:   entity.WorldID("flametongue"),
		Type: "weapon",
		Name: "Flame Tongue",
		System: map[string]any{
			"price":        map[string]any{"value": 15, "denomination": "gp"},
			"weight":       map[string]any{"value": 3, "units": "lb"},
			"magicalBonus": 1,
			"rarity":       "rare",
			"attunement":   "required",
			"properties":   []any{"ver"},
			"type":         map[string]any{"value": "martialM", "baseItem": "longsword"},
			"damage": map[string]any{
				"base": map[string]any{"number": 1, "denomination": 8, "types": []any{"slashing"}},
			},
			"description": map[string]any{"value": "Bursts into flame."},
		},
	}
}

func cell(t *testing.T, r row.Row, column string) row.Cell {
	t.Helper()
	c, ok := r.Columns[column]
	require.True(t, ok, "column %s declared", column)
	return c
}

func TestColumnsMatchTypes(t *testing.T) {
	h := handler()
	ctx := context.Background()
	for _, typ := range h.EntityTypes() {
		t.Run(typ, func(t *testing.T) {
			e := longsword()
			e.Type = typ
			r := h.Project(ctx, srd(), e)

			got := make([]string, 0, len(r.Columns))
			for k := range r.Columns {
				got = append(got, k)
			}
			want := h.Columns(typ)
			sort.Strings(got)
			sort.Strings(want)
			if len(want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestWeaponRow(t *testing.T) {
	h := handler()
	r := h.Project(context.Background(), srd(), longsword())

	price := cell(t, r, "price")
	assert.Equal(t, "15 gp", price.Display)
	assert.Equal(t, row.Numeric(1500), price.Key)

	assert.Equal(t, row.Numeric(3), cell(t, r, "weight").Key)

	dmg := cell(t, r, "damage")
	assert.Equal(t, "1d8 + 1 Slashing / 1d10 + 1 Slashing", dmg.Display)
	assert.Equal(t, row.Numeric(11), dmg.Key)
	assert.Equal(t, "1d8 + 1", dmg.Formula)

	assert.Equal(t, "+1", cell(t, r, "toHit").Display)
	assert.Equal(t, row.TextCell("Longsword"), cell(t, r, "baseWeapon"))

	att := cell(t, r, "attunement")
	assert.Equal(t, "Yes", att.Display)
	assert.Equal(t, row.Numeric(1), att.Key)

	rarity := cell(t, r, "rarity")
	assert.Equal(t, "Rare", rarity.Display)
	assert.Equal(t, row.Numeric(2), rarity.Key)

	assert.Equal(t, row.Unused(), cell(t, r, "range"), "no range and no reach")
	assert.Equal(t, "World/", r.Tooltip)
}

func TestReachAndRange(t *testing.T) {
	h := handler()
	e := longsword()
	e.System["properties"] = []any{"rch"}
	r := h.Project(context.Background(), srd(), e)
	assert.Equal(t, row.Cell{Display: "Reach", Key: row.Numeric(1)}, cell(t, r, "range"))

	e = longsword()
	e.System["range"] = map[string]any{"value": 80, "long": 320, "units": "ft"}
	r = h.Project(context.Background(), srd(), e)
	assert.Equal(t, row.Cell{Display: "80/320", Key: row.Numeric(8000)}, cell(t, r, "range"))
}

func TestHealing(t *testing.T) {
	h := handler()
	potion := entity.Entity{
		ID:   "Item.potion",
		Type: "consumable",
		Name: "Potion of Healing",
		System: map[string]any{
			"damage": map[string]any{"base": map[string]any{"number": 2, "denomination": 4, "bonus": "2", "types": []any{"healing"}}},
		},
	}
	r := h.Project(context.Background(), nil, potion)
	assert.Equal(t, row.Unused(), cell(t, r, "damage"))
	heal := cell(t, r, "healing")
	assert.Equal(t, "2d4 + 2 Healing", heal.Display)
	assert.Equal(t, row.Numeric(10), heal.Key)

	potion.System["damage"] = map[string]any{"base": map[string]any{"number": 2, "denomination": 4, "types": []any{"temphp"}}}
	r = h.Project(context.Background(), nil, potion)
	assert.Equal(t, row.Numeric(-42), cell(t, r, "healing").Key)
}

func TestDerivationFailuresAreInvalid(t *testing.T) {
	h := handler()
	e := longsword()
	e.System["price"] = map[string]any{"value": 5, "denomination": "zz"}
	e.System["damage"] = map[string]any{"base": map[string]any{
		"types":  []any{"fire"},
		"custom": map[string]any{"enabled": true, "formula": "2d"},
	}}
	e.System["type"] = map[string]any{"baseItem": "flail"}

	r := h.Project(context.Background(), srd(), e)

	price := cell(t, r, "price")
	assert.Equal(t, "5 zz", price.Display)
	assert.True(t, price.Key.IsInvalid())

	dmg := cell(t, r, "damage")
	assert.Equal(t, "2d+1", dmg.Display)
	assert.True(t, dmg.Key.IsInvalid())

	base := cell(t, r, "baseWeapon")
	assert.Equal(t, "Flail", base.Display)
	assert.True(t, base.Key.IsInvalid())

	r = h.Project(context.Background(), nil, e)
	assert.True(t, cell(t, r, "baseWeapon").Key.IsInvalid())
}

func TestMultipliedCustomDamage(t *testing.T) {
	h := handler()
	e := longsword()
	e.System["properties"] = []any{}
	e.System["damage"] = map[string]any{"base": map[string]any{
		"types":  []any{"fire"},
		"custom": map[string]any{"enabled": true, "formula": "1d6*2"},
	}}

	dmg := cell(t, h.Project(context.Background(), nil, e), "damage")
	assert.True(t, strings.HasPrefix(dmg.Display, "1d6*2+1 "), dmg.Display)
	assert.Equal(t, "1d6*2+1", dmg.Formula)
	assert.Equal(t, row.Numeric(13), dmg.Key)
}

func TestArmorClass(t *testing.T) {
	h := handler()
	tests := []struct {
		name  string
		armor map[string]any
		kind  string
		want  string
		key   float64
	}{
		{"medium", map[string]any{"value": 14, "dex": 2}, "medium", "14 + Dex(2)", 14},
		{"light", map[string]any{"value": 11}, "light", "11 + Dex", 11},
		{"heavy", map[string]any{"value": 18, "dex": 0}, "heavy", "18", 18},
		{"shield", map[string]any{"value": 2, "magicalBonus": 1}, "shield", "+3", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entity.Entity{ID: "Item." + tt.name, Type: "equipment", System: map[string]any{
				"armor": tt.armor,
				"type":  map[string]any{"value": tt.kind},
			}}
			r := h.Project(context.Background(), nil, e)
			assert.Equal(t, row.Cell{Display: tt.want, Key: row.Numeric(tt.key)}, cell(t, r, "ac"))
			assert.NotEqual(t, row.Unused(), cell(t, r, "equipmentType"))
		})
	}

	ring := entity.Entity{ID: "Item.ring", Type: "equipment", System: map[string]any{"type": map[string]any{"value": "ring"}}}
	r := h.Project(context.Background(), nil, ring)
	assert.Equal(t, row.Unused(), cell(t, r, "ac"))
	assert.Equal(t, row.TextCell("Ring"), cell(t, r, "equipmentType"))
}

func TestSpellRow(t *testing.T) {
	h := handler()
	fireball := entity.Entity{
		ID:   "Item.fireball",
		Type: "spell",
		Name: "Fireball",
		System: map[string]any{
			"level":      3,
			"school":     "evo",
			"properties": []any{"vocal", "somatic", "material", "concentration"},
			"materials":  map[string]any{"consumed": true},
			"activation": map[string]any{"value": 1, "type": "action"},
			"duration":   map[string]any{"value": "1", "units": "minute"},
			"range":      map[string]any{"value": 150, "units": "ft"},
			"target":     map[string]any{"template": map[string]any{"type": "sphere", "size": 20, "units": "ft", "count": 1}},
		},
	}
	r := h.Project(context.Background(), nil, fireball)

	assert.Equal(t, row.Cell{Display: "3rd Level", Key: row.Numeric(3)}, cell(t, r, "spellLevel"))
	assert.Equal(t, row.TextCell("Evocation"), cell(t, r, "school"))
	assert.Equal(t, row.TextCell("V, S, M*"), cell(t, r, "components"))
	assert.Equal(t, row.TextCell("1 Action"), cell(t, r, "castTime"))
	assert.Equal(t, row.TextCell("Concentration, up to 1 minute"), cell(t, r, "duration"))
	assert.Equal(t, row.Cell{Display: "150 ft", Key: row.Numeric(15000)}, cell(t, r, "range"))
	assert.Equal(t, row.TextCell("20 ft Sphere"), cell(t, r, "target"))

	cantrip := entity.Entity{ID: "Item.light", Type: "spell", System: map[string]any{
		"level":  0,
		"target": map[string]any{"affects": map[string]any{"type": "object", "count": 1}},
	}}
	r = h.Project(context.Background(), nil, cantrip)
	assert.Equal(t, "Cantrip", cell(t, r, "spellLevel").Display)
	assert.Equal(t, row.TextCell("1 Object"), cell(t, r, "target"))
	assert.Equal(t, row.Unused(), cell(t, r, "school"))
}

func catalog() []entity.Entity {
	mundane := entity.Entity{ID: "Item.club", Type: "weapon", System: map[string]any{
		"rarity":      "common",
		"description": map[string]any{"value": "A simple club."},
	}}
	return []entity.Entity{longsword(), mundane}
}

func TestFilter(t *testing.T) {
	h := handler()
	items := catalog()

	tests := []struct {
		name  string
		state filter.State
		want  []string
	}{
		{"none", filter.New(), []string{"Item.flametongue", "Item.club"}},
		{"rarity", filter.New().WithValue(dnd5e.FilterRarity, "rare"), []string{"Item.flametongue"}},
		{"attuned", filter.New().WithValue(dnd5e.FilterAttunement, dnd5e.AttunementRequired), []string{"Item.flametongue"}},
		{"not attuned", filter.New().WithValue(dnd5e.FilterAttunement, dnd5e.AttunementNone), []string{"Item.club"}},
		{"magical", filter.New().WithValue(dnd5e.FilterMagical, dnd5e.Magical), []string{"Item.flametongue"}},
		{"mundane", filter.New().WithValue(dnd5e.FilterMagical, dnd5e.Mundane), []string{"Item.club"}},
		{"description", filter.New().WithSearch(ruleset.DescriptionSearch, "FLAME"), []string{"Item.flametongue"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range h.Filter(items, tt.state) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterOptionsOnlyOfferPresentValues(t *testing.T) {
	h := handler()
	controls := h.FilterOptions(catalog())
	require.Len(t, controls, 3)

	rarity := controls[0]
	assert.Equal(t, dnd5e.FilterRarity, rarity.Key)
	assert.Equal(t, []ruleset.Option{
		{Value: "", Label: "All"},
		{Value: "common", Label: "Common"},
		{Value: "rare", Label: "Rare"},
	}, rarity.Options)

	only := h.FilterOptions(catalog()[1:])
	assert.Len(t, only[0].Options, 2)
	assert.Equal(t, []ruleset.Option{{Value: "", Label: "All"}, {Value: dnd5e.Mundane, Label: "Mundane"}}, only[2].Options)
}

func TestRegistered(t *testing.T) {
	h := ruleset.Lookup(dnd5e.ID, nil)
	assert.Equal(t, dnd5e.ID, h.ID())
	assert.Equal(t, []string{"system", "labels"}, h.IndexFields())
}
