// Package swade is the handler for the Savage Worlds Adventure Edition
// ruleset.
package swade

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
const ID = "swade"

// Structured filter keys.
const (
	FilterRank     = "rank"
	FilterCategory = "category"
)

var itemTypes = []string{
	"ability", "ancestry", "armor", "consumable", "edge", "gear",
	"hindrance", "power", "shield", "skill", "weapon",
}

var columns = map[string][]string{
	"ability":    nil,
	"ancestry":   nil,
	"armor":      {"armor", "toughness", "minStr", "locations", "price", "weight"},
	"consumable": {"price", "weight"},
	"edge":       {"rank", "requirements"},
	"gear":       {"price", "weight"},
	"hindrance":  nil,
	"power":      {"damage", "ap", "range", "rank", "pp", "duration"},
	"shield":     {"parry", "cover", "minStr", "price", "weight"},
	"skill":      nil,
	"weapon":     {"damage", "ap", "range", "shots", "parry", "rof", "minStr", "price", "weight"},
}

var headers = map[string]ruleset.Header{
	"damage":       {Label: "ITEM_BROWSER.Damage", Width: 14, Sortable: true},
	"ap":           {Label: "ITEM_BROWSER.AP", Width: 5, Sortable: true},
	"range":        {Label: "ITEM_BROWSER.Range", Width: 12, Sortable: true},
	"shots":        {Label: "ITEM_BROWSER.Shots", Width: 6, Sortable: true},
	"parry":        {Label: "ITEM_BROWSER.Parry", Width: 6, Sortable: true},
	"rof":          {Label: "ITEM_BROWSER.ROF", Width: 5, Sortable: true},
	"minStr":       {Label: "ITEM_BROWSER.MinStr", Width: 8, Sortable: true},
	"armor":        {Label: "ITEM_BROWSER.Armor", Width: 6, Sortable: true},
	"toughness":    {Label: "ITEM_BROWSER.Toughness", Width: 10, Sortable: true},
	"locations":    {Label: "ITEM_BROWSER.Locations", Width: 24},
	"cover":        {Label: "ITEM_BROWSER.Cover", Width: 6, Sortable: true},
	"rank":         {Label: "ITEM_BROWSER.Rank", Width: 10, Sortable: true},
	"requirements": {Label: "ITEM_BROWSER.Requirements", Width: 30},
	"pp":           {Label: "ITEM_BROWSER.PP", Width: 5, Sortable: true},
	"duration":     {Label: "ITEM_BROWSER.Duration", Width: 12, Sortable: true},
	"price":        {Label: "ITEM_BROWSER.Cost", Width: 8, Sortable: true},
	"weight":       {Label: "ITEM_BROWSER.Weight", Width: 8, Sortable: true},
}

// plainFields are copied from system data as-is, each column with one sort
// kind. The flag drops zero values.
var plainFields = []struct {
	name       string
	kind       ruleset.FieldKind
	ignoreZero bool
}{
	{"price", ruleset.NumberField, true},
	{"weight", ruleset.NumberField, true},
	{"ap", ruleset.NumberField, true},
	{"range", ruleset.NumberField, false},
	{"parry", ruleset.NumberField, true},
	{"rof", ruleset.NumberField, false},
	{"shots", ruleset.NumberField, true},
	{"armor", ruleset.NumberField, true},
	{"toughness", ruleset.NumberField, true},
	{"cover", ruleset.NumberField, true},
	{"pp", ruleset.NumberField, false},
	{"duration", ruleset.TextField, false},
}

var (
	ranks     = []string{"novice", "seasoned", "veteran", "heroic", "legendary"}
	strengths = []string{"d4", "d6", "d8", "d10", "d12"}
	locations = []string{"head", "torso", "arms", "legs"}
)

func init() {
	ruleset.Register(ID, New)
	i18n.Register(language.English, messages)
}

// Handler implements ruleset.Handler for swade.
type Handler struct {
	ruleset.Base
}

// New builds the handler.
func New(l *i18n.Localizer) ruleset.Handler {
	return Handler{Base: ruleset.Base{
		L:          l,
		RulesetID:  ID,
		Label:      "Savage Worlds Adventure Edition",
		Types:      itemTypes,
		ColumnSets: columns,
		Headers:    headers,
		Fields:     []string{"system"},
		Default:    "weapon",
		Searchers: []ruleset.Search{
			{Key: ruleset.DescriptionSearch, Label: "ITEM_BROWSER.SearchDesc", Field: "system.description"},
		},
	}}
}

// Project builds the row. No sub-entities are resolved.
func (h Handler) Project(_ context.Context, _ host.Resolver, e entity.Entity) row.Row {
	out := h.NewRow(e)
	cols := out.Columns

	for _, f := range plainFields {
		ruleset.Apply(cols, f.name, func() (row.Cell, bool, error) {
			c, ok := ruleset.SystemCell(e, f.name, f.kind, f.ignoreZero)
			return c, ok, nil
		})
	}
	ruleset.Apply(cols, "damage", func() (row.Cell, bool, error) { return damage(e) })
	ruleset.Apply(cols, "rank", func() (row.Cell, bool, error) { return h.rank(e) })
	ruleset.Apply(cols, "minStr", func() (row.Cell, bool, error) { return minStr(e) })
	ruleset.Apply(cols, "locations", func() (row.Cell, bool, error) { return h.locations(e) })
	ruleset.Apply(cols, "requirements", func() (row.Cell, bool, error) { return h.requirements(e) })
	return out
}

// Filter applies the rank and category filters, then the description
// search.
func (h Handler) Filter(entities []entity.Entity, st filter.State) []entity.Entity {
	out := entities
	if v := st.Value(FilterRank); v != "" {
		out = ruleset.Keep(out, func(e entity.Entity) bool { return rankID(e) == v })
	}
	if v := st.Value(FilterCategory); v != "" {
		out = ruleset.Keep(out, func(e entity.Entity) bool { return e.Text("system.category") == v })
	}
	return h.ApplySearches(out, st)
}

// FilterOptions offers the ranks and categories present among the
// candidates.
func (h Handler) FilterOptions(entities []entity.Entity) []ruleset.Control {
	all := h.L.T("ITEM_BROWSER.FilterAll")
	return []ruleset.Control{
		{
			Key:   FilterRank,
			Label: h.L.T("ITEM_BROWSER.Rank"),
			Options: ruleset.Choices(h.L, entities,
				func(e entity.Entity) []string { return []string{rankID(e)} },
				h.rankLabel, all),
		},
		{
			Key:   FilterCategory,
			Label: h.L.T("ITEM_BROWSER.Category"),
			Options: ruleset.Choices(h.L, entities,
				func(e entity.Entity) []string { return []string{e.Text("system.category")} },
				func(v string) string { return v }, all),
		},
	}
}

// damage sorts a formula by a rough size: dice count their maximum,
// numbers their value and anything else one point. A zero usually stands
// in for an attribute, so it counts as a d5 to clump above a d4.
func damage(e entity.Entity) (row.Cell, bool, error) {
	formula := e.Text("system.damage")
	if formula == "" {
		return row.Cell{}, false, nil
	}
	terms, err := dice.Parse(formula)
	if err != nil {
		return row.Cell{Display: formula, Formula: formula}, true, err
	}
	total := 0.0
	for _, t := range terms {
		sign := float64(t.Sign)
		switch t.Kind {
		case dice.TermDie:
			total += sign * float64(t.Number*t.Faces)
		case dice.TermProduct:
			total += sign * t.Value
		case dice.TermNumber:
			if t.Value == 0 {
				total += 5 * sign
			} else {
				total += t.Value * sign
			}
		default:
			total += sign
		}
	}
	return row.Cell{Display: formula, Key: row.Numeric(total), Formula: formula}, true, nil
}

// rankID returns the lower-case rank of an entity, from system.rank or a
// rank requirement.
func rankID(e entity.Entity) string {
	if r := e.Text("system.rank"); r != "" {
		return strings.ToLower(r)
	}
	for _, req := range e.List("system.requirements") {
		m, ok := req.(map[string]any)
		if !ok || entity.AsString(m["type"]) != "rank" {
			continue
		}
		if n, ok := m["value"].(string); ok {
			return strings.ToLower(n)
		}
		if n, ok := entity.AsFloat(m["value"]); ok && n >= 0 && int(n) < len(ranks) {
			return ranks[int(n)]
		}
		return entity.AsString(m["value"])
	}
	return ""
}

func (h Handler) rankLabel(id string) string {
	return ruleset.Label(h.L, "ITEM_BROWSER.Swade.Rank."+id, id)
}

func (h Handler) rank(e entity.Entity) (row.Cell, bool, error) {
	id := rankID(e)
	if id == "" {
		return row.Cell{}, false, nil
	}
	display := h.rankLabel(id)
	if r := e.Text("system.rank"); r != "" {
		display = r
	}
	pos, ok := ruleset.Ordinal(ranks, id)
	if !ok {
		return row.Cell{Display: display}, true, fmt.Errorf("unknown rank %q", id)
	}
	return row.Cell{Display: display, Key: row.Numeric(pos)}, true, nil
}

func minStr(e entity.Entity) (row.Cell, bool, error) {
	s := strings.TrimSpace(e.Text("system.minStr"))
	if s == "" {
		return row.Cell{}, false, nil
	}
	pos, ok := ruleset.Ordinal(strengths, s)
	if !ok {
		return row.Cell{Display: s}, true, fmt.Errorf("unknown strength die %q", s)
	}
	return row.Cell{Display: s, Key: row.Numeric(pos)}, true, nil
}

func (h Handler) locations(e entity.Entity) (row.Cell, bool, error) {
	covered := e.Map("system.locations")
	if covered == nil {
		return row.Cell{}, false, nil
	}
	var names []string
	for _, loc := range locations {
		if b, _ := covered[loc].(bool); b {
			names = append(names, h.L.T("ITEM_BROWSER.Swade.Location."+loc))
		}
	}
	if len(names) == 0 {
		return row.Cell{}, false, nil
	}
	return row.DisplayCell(h.L.List(names)), true, nil
}

func (h Handler) requirements(e entity.Entity) (row.Cell, bool, error) {
	reqs := e.List("system.requirements")
	if len(reqs) == 0 {
		return row.Cell{}, false, nil
	}
	if s := e.Text("system.requirementString"); s != "" {
		return row.DisplayCell(s), true, nil
	}
	var b strings.Builder
	for i, r := range reqs {
		m, _ := r.(map[string]any)
		b.WriteString(h.requirement(m))
		if i == len(reqs)-1 {
			break
		}
		switch entity.AsString(m["combinator"]) {
		case "or":
			b.WriteString(" " + h.L.T("ITEM_BROWSER.Swade.Or") + " ")
		case "and":
			b.WriteString(", ")
		}
	}
	return row.DisplayCell(b.String()), true, nil
}

func (h Handler) requirement(m map[string]any) string {
	label := entity.AsString(m["label"])
	switch entity.AsString(m["type"]) {
	case "wildCard":
		if b, _ := m["value"].(bool); b {
			return h.L.T("ITEM_BROWSER.Swade.WildCard")
		}
		return h.L.T("ITEM_BROWSER.Swade.Extra")
	case "rank":
		if n, ok := entity.AsFloat(m["value"]); ok && n >= 0 && int(n) < len(ranks) {
			return h.rankLabel(ranks[int(n)])
		}
		return h.rankLabel(strings.ToLower(entity.AsString(m["value"])))
	case "attribute":
		attr := entity.AsString(m["selector"])
		return fmt.Sprintf("%s d%s+", ruleset.Label(h.L, "ITEM_BROWSER.Swade.Attribute."+attr, attr), entity.AsString(m["value"]))
	case "skill":
		return fmt.Sprintf("%s d%s+", label, entity.AsString(m["value"]))
	default:
		return label
	}
}
