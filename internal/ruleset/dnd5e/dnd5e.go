// Package dnd5e is the handler for the Fifth Edition ruleset: priced and
// weighted equipment, weapon damage and spell details.
package dnd5e

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/ddbrown30/item-browser/internal/dice"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/row"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

// ID is the ruleset id.
const ID = "dnd5e"

// BaseItemPack is the pack base weapons are resolved from.
const BaseItemPack = "dnd5e.items"

// Structured filter keys.
const (
	FilterRarity     = "rarity"
	FilterAttunement = "attunement"
	FilterMagical    = "magical"
)

// Attunement and magical filter values.
const (
	AttunementRequired = "required"
	AttunementNone     = "none"
	Magical            = "magical"
	Mundane            = "mundane"
)

var itemTypes = []string{
	"background", "class", "consumable", "container", "equipment", "feat",
	"loot", "race", "spell", "subclass", "tool", "weapon",
}

var columns = map[string][]string{
	"background": nil,
	"class":      nil,
	"consumable": {"toHit", "attunement", "damage", "healing", "rarity", "price", "weight"},
	"container":  {"price", "weight"},
	"equipment":  {"equipmentType", "ac", "attunement", "rarity", "price", "weight"},
	"feat":       nil,
	"loot":       {"price", "weight"},
	"race":       nil,
	"spell":      {"spellLevel", "castTime", "range", "target", "duration", "components", "school"},
	"subclass":   nil,
	"tool":       {"price", "weight"},
	"weapon":     {"baseWeapon", "toHit", "damage", "range", "attunement", "rarity", "price", "weight"},
}

var headers = map[string]ruleset.Header{
	"damage":        {Label: "ITEM_BROWSER.Damage", Width: 22, Sortable: true},
	"healing":       {Label: "ITEM_BROWSER.Healing", Width: 16, Sortable: true},
	"toHit":         {Label: "ITEM_BROWSER.ToHit", Width: 7, Sortable: true},
	"range":         {Label: "ITEM_BROWSER.Range", Width: 12, Sortable: true},
	"attunement":    {Label: "ITEM_BROWSER.Attunement", Width: 10, Sortable: true},
	"ac":            {Label: "ITEM_BROWSER.AC", Width: 12, Sortable: true},
	"spellLevel":    {Label: "ITEM_BROWSER.Level", Width: 8, Sortable: true},
	"school":        {Label: "ITEM_BROWSER.School", Width: 13, Sortable: true},
	"castTime":      {Label: "ITEM_BROWSER.CastTime", Width: 14, Sortable: true},
	"target":        {Label: "ITEM_BROWSER.Target", Width: 16, Sortable: true},
	"components":    {Label: "ITEM_BROWSER.Components", Width: 11, Sortable: true},
	"duration":      {Label: "ITEM_BROWSER.Duration", Width: 18, Sortable: true},
	"baseWeapon":    {Label: "ITEM_BROWSER.BaseWeapon", Width: 14, Sortable: true},
	"equipmentType": {Label: "ITEM_BROWSER.EquipmentType", Width: 14, Sortable: true},
	"rarity":        {Label: "ITEM_BROWSER.Rarity", Width: 10, Sortable: true},
	"price":         {Label: "ITEM_BROWSER.Price", Width: 9, Sortable: true},
	"weight":        {Label: "ITEM_BROWSER.Weight", Width: 9, Sortable: true},
}

var (
	rarities     = []string{"common", "uncommon", "rare", "veryRare", "legendary", "artifact"}
	denomination = map[string]float64{"cp": 1, "sp": 10, "ep": 50, "gp": 100, "pp": 1000}
	weightUnits  = map[string]float64{"lb": 1, "tn": 2000, "kg": 2.2, "t": 2200}
	dieSteps     = []int{4, 6, 8, 10, 12, 20}
	armorTypes   = map[string]bool{"light": true, "medium": true, "heavy": true, "natural": true, "shield": true}
	healingTypes = map[string]bool{"healing": true, "temphp": true}
	scalarTime   = map[string]bool{"turn": true, "round": true, "minute": true, "hour": true, "day": true, "month": true, "year": true}
	lengthUnits  = map[string]bool{"ft": true, "mi": true, "m": true, "km": true}
)

func init() {
	ruleset.Register(ID, New)
	i18n.Register(language.English, messages)
}

// Handler implements ruleset.Handler for dnd5e.
type Handler struct {
	ruleset.Base
}

// New builds the handler.
func New(l *i18n.Localizer) ruleset.Handler {
	return Handler{Base: ruleset.Base{
		L:          l,
		RulesetID:  ID,
		Label:      "Dungeons & Dragons Fifth Edition",
		Types:      itemTypes,
		ColumnSets: columns,
		Headers:    headers,
		Fields:     []string{"system", "labels"},
		Searchers: []ruleset.Search{
			{Key: ruleset.DescriptionSearch, Label: "ITEM_BROWSER.SearchDesc", Field: "system.description.value"},
		},
	}}
}

// Project builds the row. Base weapon names are resolved through r.
func (h Handler) Project(ctx context.Context, r host.Resolver, e entity.Entity) row.Row {
	out := h.NewRow(e)
	cols := out.Columns

	ruleset.Apply(cols, "price", func() (row.Cell, bool, error) { return price(e) })
	ruleset.Apply(cols, "weight", func() (row.Cell, bool, error) { return weight(e) })

	dmg, healing, dmgErr := h.damage(e)
	ruleset.Apply(cols, "damage", func() (row.Cell, bool, error) {
		if healing {
			return row.Cell{}, false, nil
		}
		return dmg, dmg.Display != "", dmgErr
	})
	ruleset.Apply(cols, "healing", func() (row.Cell, bool, error) {
		if !healing {
			return row.Cell{}, false, nil
		}
		return dmg, dmg.Display != "", dmgErr
	})

	ruleset.Apply(cols, "toHit", func() (row.Cell, bool, error) { return toHit(e) })
	ruleset.Apply(cols, "attunement", func() (row.Cell, bool, error) { return h.attunement(e), true, nil })
	ruleset.Apply(cols, "rarity", func() (row.Cell, bool, error) { return h.rarity(e) })
	ruleset.Apply(cols, "range", func() (row.Cell, bool, error) { return h.rangeCell(e) })
	ruleset.Apply(cols, "target", func() (row.Cell, bool, error) { return h.target(e) })
	ruleset.Apply(cols, "duration", func() (row.Cell, bool, error) { return h.duration(e) })
	ruleset.Apply(cols, "baseWeapon", func() (row.Cell, bool, error) { return h.baseWeapon(ctx, r, e) })
	ruleset.Apply(cols, "ac", func() (row.Cell, bool, error) { return h.armorClass(e) })
	ruleset.Apply(cols, "equipmentType", func() (row.Cell, bool, error) { return h.equipmentType(e) })
	ruleset.Apply(cols, "spellLevel", func() (row.Cell, bool, error) { return h.spellLevel(e) })
	ruleset.Apply(cols, "school", func() (row.Cell, bool, error) { return h.school(e) })
	ruleset.Apply(cols, "components", func() (row.Cell, bool, error) { return h.components(e) })
	ruleset.Apply(cols, "castTime", func() (row.Cell, bool, error) { return h.castTime(e) })

	return out
}

// Filter applies the rarity, attunement and magical filters, then the
// description search.
func (h Handler) Filter(entities []entity.Entity, st filter.State) []entity.Entity {
	out := entities
	if v := st.Value(FilterRarity); v != "" {
		out = ruleset.Keep(out, func(e entity.Entity) bool { return e.Text("system.rarity") == v })
	}
	switch st.Value(FilterAttunement) {
	case AttunementRequired:
		out = ruleset.Keep(out, attuned)
	case AttunementNone:
		out = ruleset.Keep(out, func(e entity.Entity) bool { return !attuned(e) })
	}
	switch st.Value(FilterMagical) {
	case Magical:
		out = ruleset.Keep(out, magical)
	case Mundane:
		out = ruleset.Keep(out, func(e entity.Entity) bool { return !magical(e) })
	}
	return h.ApplySearches(out, st)
}

// FilterOptions offers the rarities, attunement states and magical states
// present among the candidates.
func (h Handler) FilterOptions(entities []entity.Entity) []ruleset.Control {
	all := h.L.T("ITEM_BROWSER.FilterAll")
	return []ruleset.Control{
		{
			Key:   FilterRarity,
			Label: h.L.T("ITEM_BROWSER.Rarity"),
			Options: ruleset.Choices(h.L, entities,
				func(e entity.Entity) []string { return []string{e.Text("system.rarity")} },
				h.rarityLabel, all),
		},
		{
			Key:   FilterAttunement,
			Label: h.L.T("ITEM_BROWSER.Attunement"),
			Options: ruleset.Choices(h.L, entities,
				func(e entity.Entity) []string {
					if attuned(e) {
						return []string{AttunementRequired}
					}
					return []string{AttunementNone}
				},
				func(v string) string {
					if v == AttunementRequired {
						return h.L.T("ITEM_BROWSER.AttunementRequired")
					}
					return h.L.T("ITEM_BROWSER.AttunementNone")
				}, all),
		},
		{
			Key:   FilterMagical,
			Label: h.L.T("ITEM_BROWSER.Magical"),
			Options: ruleset.Choices(h.L, entities,
				func(e entity.Entity) []string {
					if magical(e) {
						return []string{Magical}
					}
					return []string{Mundane}
				},
				func(v string) string {
					if v == Magical {
						return h.L.T("ITEM_BROWSER.MagicalOnly")
					}
					return h.L.T("ITEM_BROWSER.Mundane")
				}, all),
		},
	}
}

func attuned(e entity.Entity) bool {
	return e.Bool("system.attunement")
}

func magical(e entity.Entity) bool {
	v, _ := e.Float("system.magicalBonus")
	return v > 0
}

func price(e entity.Entity) (row.Cell, bool, error) {
	value, _ := e.Float("system.price.value")
	if value == 0 {
		return row.Cell{}, false, nil
	}
	denom := e.Text("system.price.denomination")
	display := strings.TrimSpace(row.FormatNumber(value) + " " + denom)
	mult, ok := denomination[denom]
	if !ok {
		return row.Cell{Display: display}, true, fmt.Errorf("unknown denomination %q", denom)
	}
	return row.Cell{Display: display, Key: row.Numeric(value * mult)}, true, nil
}

func weight(e entity.Entity) (row.Cell, bool, error) {
	value, units := 0.0, "lb"
	if v, ok := e.Float("system.weight"); ok {
		value = v
	} else {
		value, _ = e.Float("system.weight.value")
		if u := e.Text("system.weight.units"); u != "" {
			units = u
		}
	}
	if value == 0 {
		return row.Cell{}, false, nil
	}
	display := row.FormatNumber(value) + " " + units
	mult, ok := weightUnits[units]
	if !ok {
		return row.Cell{Display: display}, true, fmt.Errorf("unknown weight unit %q", units)
	}
	return row.Cell{Display: display, Key: row.Numeric(value * mult)}, true, nil
}

// damage builds the damage or healing cell. Versatile weapons get a second
// entry one die step larger. The sort key is the highest maximized total.
func (h Handler) damage(e entity.Entity) (row.Cell, bool, error) {
	base := e.Map("system.damage.base")
	if base == nil {
		return row.Cell{}, false, nil
	}
	parts := []map[string]any{base}
	if e.Has("system.properties", "ver") {
		parts = append(parts, versatile(base, e.Map("system.damage.versatile")))
	}

	bonus := num(e.System, "damageBonus") + num(e.System, "magicalBonus")
	healing := false
	var lines []string
	var formula string
	best := 0.0
	for _, part := range parts {
		types := entity.AsStrings(part["types"])
		if len(types) == 0 {
			continue
		}
		f, total := partFormula(part, bonus), 0.0
		if f != "" {
			raw := f
			var err error
			if f, err = dice.Simplify(raw); err != nil {
				return row.Cell{Display: raw, Formula: raw}, healing, err
			}
			if total, err = dice.Max(f); err != nil {
				return row.Cell{Display: f, Formula: f}, healing, err
			}
		}
		var labels []string
		for _, t := range types {
			if healingTypes[t] {
				healing = true
				if t == "temphp" {
					total -= 50
				}
			}
			labels = append(labels, ruleset.Label(h.L, "ITEM_BROWSER.DnD5e.Damage."+t, t))
		}
		if formula == "" {
			formula = f
		}
		if len(lines) == 0 || total > best {
			best = total
		}
		lines = append(lines, strings.TrimSpace(f+" "+strings.Join(labels, ", ")))
	}
	if len(lines) == 0 {
		return row.Cell{}, false, nil
	}
	return row.Cell{Display: strings.Join(lines, " / "), Key: row.Numeric(best), Formula: formula}, healing, nil
}

func versatile(base, v map[string]any) map[string]any {
	out := map[string]any{}
	for k, val := range v {
		out[k] = val
	}
	if num(out, "denomination") == 0 {
		step := len(dieSteps) - 1
		for i, d := range dieSteps {
			if float64(d) == num(base, "denomination") {
				step = min(i+1, len(dieSteps)-1)
				break
			}
		}
		out["denomination"] = dieSteps[step]
	}
	if num(out, "number") == 0 {
		out["number"] = base["number"]
	}
	if entity.AsString(out["bonus"]) == "" {
		out["bonus"] = base["bonus"]
	}
	out["types"] = base["types"]
	return out
}

func partFormula(part map[string]any, bonus float64) string {
	var terms []string
	if n, d := num(part, "number"), num(part, "denomination"); n > 0 && d > 0 {
		terms = append(terms, fmt.Sprintf("%sd%s", row.FormatNumber(n), row.FormatNumber(d)))
	}
	if custom, ok := part["custom"].(map[string]any); ok {
		if enabled, _ := custom["enabled"].(bool); enabled {
			if f := strings.TrimSpace(entity.AsString(custom["formula"])); f != "" {
				terms = append(terms, f)
			}
		}
	}
	if b := strings.TrimSpace(entity.AsString(part["bonus"])); b != "" && b != "0" {
		terms = append(terms, b)
	}
	if bonus != 0 {
		terms = append(terms, row.FormatNumber(bonus))
	}
	return strings.Join(terms, "+")
}

func toHit(e entity.Entity) (row.Cell, bool, error) {
	bonus, _ := e.Float("system.magicalBonus")
	if bonus == 0 && e.Type != "weapon" {
		return row.Cell{}, false, nil
	}
	display := row.FormatNumber(bonus)
	if bonus >= 0 {
		display = "+" + display
	}
	return row.Cell{Display: display, Key: row.Numeric(bonus)}, true, nil
}

func (h Handler) attunement(e entity.Entity) row.Cell {
	if attuned(e) {
		return row.Cell{Display: h.L.T("ITEM_BROWSER.Yes"), Key: row.Numeric(1)}
	}
	return row.Cell{Display: h.L.T("ITEM_BROWSER.No"), Key: row.Numeric(0)}
}

func (h Handler) rarityLabel(r string) string {
	return ruleset.Label(h.L, "ITEM_BROWSER.DnD5e.Rarity."+r, r)
}

func (h Handler) rarity(e entity.Entity) (row.Cell, bool, error) {
	r := e.Text("system.rarity")
	if r == "" {
		return row.Cell{}, false, nil
	}
	display := h.rarityLabel(r)
	pos, ok := ruleset.Ordinal(rarities, r)
	if !ok {
		return row.Cell{Display: display}, true, fmt.Errorf("unknown rarity %q", r)
	}
	return row.Cell{Display: display, Key: row.Numeric(pos)}, true, nil
}

func (h Handler) rangeCell(e entity.Entity) (row.Cell, bool, error) {
	if value, _ := e.Float("system.range.value"); value != 0 {
		display := row.FormatNumber(value)
		if long, _ := e.Float("system.range.long"); long != 0 {
			display += "/" + row.FormatNumber(long)
		}
		if e.Type == "spell" {
			display = strings.TrimSpace(display + " " + e.Text("system.range.units"))
		}
		return row.Cell{Display: display, Key: row.Numeric(value * 100)}, true, nil
	}
	if e.Has("system.properties", "rch") {
		return row.Cell{Display: h.L.T("ITEM_BROWSER.DnD5e.Reach"), Key: row.Numeric(1)}, true, nil
	}
	return row.Cell{}, false, nil
}

func (h Handler) target(e entity.Entity) (row.Cell, bool, error) {
	template := e.Map("system.target.template")
	affects := e.Map("system.target.affects")
	if template == nil && affects == nil {
		return row.Cell{}, false, nil
	}

	var display string
	if shape := entity.AsString(template["type"]); shape != "" {
		var parts []string
		if count := num(template, "count"); count > 1 {
			parts = append(parts, row.FormatNumber(count)+" ×")
		}
		if units := entity.AsString(template["units"]); lengthUnits[units] {
			parts = append(parts, entity.AsString(template["size"])+" "+units)
		}
		parts = append(parts, ruleset.Label(h.L, "ITEM_BROWSER.DnD5e.Area."+shape, shape))
		display = strings.Join(parts, " ")
	} else if kind := entity.AsString(affects["type"]); kind != "" {
		label := ruleset.Label(h.L, "ITEM_BROWSER.DnD5e.Affects."+kind, kind)
		if count := num(affects, "count"); count > 0 {
			display = row.FormatNumber(count) + " " + label
		} else {
			display = h.L.T("ITEM_BROWSER.DnD5e.AnyTarget", label)
		}
	}
	if display == "" {
		return row.Cell{}, false, nil
	}
	return row.TextCell(display), true, nil
}

func (h Handler) duration(e entity.Entity) (row.Cell, bool, error) {
	units := e.Text("system.duration.units")
	if units == "" {
		return row.Cell{}, false, nil
	}
	display := ruleset.Label(h.L, "ITEM_BROWSER.DnD5e.Time."+units, units)
	if scalarTime[units] {
		value := strings.ReplaceAll(e.Text("system.duration.value"), "@item.level", e.Text("system.level"))
		if simplified, err := dice.Simplify(value); err == nil {
			value = simplified
		}
		if value != "" {
			display = value + " " + strings.ToLower(display)
		}
	}
	if e.Has("system.properties", "concentration") {
		display = h.L.T("ITEM_BROWSER.DnD5e.Concentration", display)
	}
	return row.TextCell(display), true, nil
}

func (h Handler) castTime(e entity.Entity) (row.Cell, bool, error) {
	var parts []string
	if v, _ := e.Float("system.activation.value"); v != 0 {
		parts = append(parts, row.FormatNumber(v))
	}
	if kind := e.Text("system.activation.type"); kind != "" {
		parts = append(parts, ruleset.Label(h.L, "ITEM_BROWSER.DnD5e.Activation."+kind, kind))
	}
	if len(parts) == 0 {
		return row.Cell{}, false, nil
	}
	return row.TextCell(strings.Join(parts, " ")), true, nil
}

// baseWeapon resolves the base item for its name. A reference that cannot
// be resolved shows the humanized key and sorts last.
func (h Handler) baseWeapon(ctx context.Context, r host.Resolver, e entity.Entity) (row.Cell, bool, error) {
	key := e.Text("system.type.baseItem")
	if key == "" {
		return row.Cell{}, false, nil
	}
	display := i18n.Humanize(key)
	if r == nil {
		return row.Cell{Display: display}, true, fmt.Errorf("no resolver for base weapon %q", key)
	}
	base, err := r.Resolve(ctx, entity.PackItemID(BaseItemPack, key))
	if err != nil {
		return row.Cell{Display: display}, true, fmt.Errorf("resolving base weapon %q: %w", key, err)
	}
	return row.TextCell(base.Name), true, nil
}

func (h Handler) armorClass(e entity.Entity) (row.Cell, bool, error) {
	kind := e.Text("system.type.value")
	if !armorTypes[kind] {
		return row.Cell{}, false, nil
	}
	value, _ := e.Float("system.armor.value")
	bonus, _ := e.Float("system.armor.magicalBonus")
	ac := value + bonus

	display := row.FormatNumber(ac)
	if kind == "shield" {
		display = "+" + display
	} else {
		dex, capped := e.Float("system.armor.dex")
		if !capped || dex != 0 {
			display += " + " + h.L.T("ITEM_BROWSER.DnD5e.Dex")
			if dex > 0 {
				display += "(" + row.FormatNumber(dex) + ")"
			}
		}
	}
	return row.Cell{Display: display, Key: row.Numeric(ac)}, true, nil
}

func (h Handler) equipmentType(e entity.Entity) (row.Cell, bool, error) {
	kind := e.Text("system.type.value")
	if kind == "" {
		return row.Cell{}, false, nil
	}
	return row.TextCell(ruleset.Label(h.L, "ITEM_BROWSER.DnD5e.Equipment."+kind, kind)), true, nil
}

func (h Handler) spellLevel(e entity.Entity) (row.Cell, bool, error) {
	level, ok := e.Float("system.level")
	if !ok {
		return row.Cell{}, false, nil
	}
	key := fmt.Sprintf("ITEM_BROWSER.DnD5e.SpellLevel.%s", row.FormatNumber(level))
	return row.Cell{Display: h.L.TOr(key, row.FormatNumber(level)), Key: row.Numeric(level)}, true, nil
}

func (h Handler) school(e entity.Entity) (row.Cell, bool, error) {
	key := "ITEM_BROWSER.DnD5e.School." + e.Text("system.school")
	if !h.L.Has(key) {
		return row.Cell{}, false, nil
	}
	return row.TextCell(h.L.T(key)), true, nil
}

func (h Handler) components(e entity.Entity) (row.Cell, bool, error) {
	var parts []string
	if e.Has("system.properties", "vocal") {
		parts = append(parts, "V")
	}
	if e.Has("system.properties", "somatic") {
		parts = append(parts, "S")
	}
	if e.Has("system.properties", "material") {
		m := "M"
		if e.Bool("system.materials.consumed") {
			m += "*"
		}
		parts = append(parts, m)
	}
	if len(parts) == 0 {
		return row.Cell{}, false, nil
	}
	return row.TextCell(strings.Join(parts, ", ")), true, nil
}

func num(m map[string]any, key string) float64 {
	f, _ := entity.AsFloat(m[key])
	return f
}
