// Package pf2e is the handler for the Pathfinder Second Edition ruleset.
// Every item type shares one column set.
package pf2e

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/row"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

// ID is the ruleset id.
const ID = "pf2e"

// Structured filter keys.
const (
	FilterRarity = "rarity"
	FilterTrait  = "trait"
)

var (
	rarities = []string{"common", "uncommon", "rare", "unique"}
	sizes    = []string{"tiny", "sm", "med", "lg", "huge", "grg"}
)

func init() {
	ruleset.Register(ID, New)
	i18n.Register(language.English, messages)
}

// Handler implements ruleset.Handler for pf2e.
type Handler struct {
	ruleset.Base
}

// New builds the handler.
func New(l *i18n.Localizer) ruleset.Handler {
	return Handler{Base: ruleset.Base{
		L:         l,
		RulesetID: ID,
		Label:     "Pathfinder Second Edition",
		EveryType: []string{"level", "rarity", "traits", "size"},
		Headers: map[string]ruleset.Header{
			"level":  {Label: "ITEM_BROWSER.Level", Width: 6, Sortable: true},
			"rarity": {Label: "ITEM_BROWSER.Rarity", Width: 10, Sortable: true},
			"traits": {Label: "ITEM_BROWSER.Traits", Width: 30, Sortable: true},
			"size":   {Label: "ITEM_BROWSER.Size", Width: 11, Sortable: true},
		},
		Fields: []string{"system"},
		Searchers: []ruleset.Search{
			{Key: ruleset.DescriptionSearch, Label: "ITEM_BROWSER.SearchDesc", Field: "system.description.value"},
		},
	}}
}

func (h Handler) Project(_ context.Context, _ host.Resolver, e entity.Entity) row.Row {
	out := h.NewRow(e)
	cols := out.Columns

	ruleset.Apply(cols, "level", func() (row.Cell, bool, error) {
		level, _ := e.Float("system.level.value")
		return row.NumberCell(level), true, nil
	})
	ruleset.Apply(cols, "rarity", func() (row.Cell, bool, error) { return h.rarity(e) })
	ruleset.Apply(cols, "traits", func() (row.Cell, bool, error) { return h.traits(e), true, nil })
	ruleset.Apply(cols, "size", func() (row.Cell, bool, error) { return h.size(e) })
	return out
}

// Filter applies the rarity and trait filters, then the description search.
func (h Handler) Filter(entities []entity.Entity, st filter.State) []entity.Entity {
	out := entities
	if v := st.Value(FilterRarity); v != "" {
		out = ruleset.Keep(out, func(e entity.Entity) bool { return e.Text("system.traits.rarity") == v })
	}
	if v := st.Value(FilterTrait); v != "" {
		out = ruleset.Keep(out, func(e entity.Entity) bool { return e.Has("system.traits.value", v) })
	}
	return h.ApplySearches(out, st)
}

func (h Handler) FilterOptions(entities []entity.Entity) []ruleset.Control {
	all := h.L.T("ITEM_BROWSER.FilterAll")
	return []ruleset.Control{
		{
			Key:   FilterRarity,
			Label: h.L.T("ITEM_BROWSER.Rarity"),
			Options: ruleset.Choices(h.L, entities,
				func(e entity.Entity) []string { return []string{e.Text("system.traits.rarity")} },
				h.rarityLabel, all),
		},
		{
			Key:   FilterTrait,
			Label: h.L.T("ITEM_BROWSER.Trait"),
			Options: ruleset.Choices(h.L, entities,
				func(e entity.Entity) []string { return e.Strings("system.traits.value") },
				h.traitLabel, all),
		},
	}
}

func (h Handler) rarityLabel(r string) string {
	return ruleset.Label(h.L, "ITEM_BROWSER.PF2e.Rarity."+r, r)
}

func (h Handler) traitLabel(t string) string {
	return ruleset.Label(h.L, "ITEM_BROWSER.PF2e.Trait."+t, t)
}

func (h Handler) rarity(e entity.Entity) (row.Cell, bool, error) {
	r := e.Text("system.traits.rarity")
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

// traits lists the trait labels; the sort key is the trait count.
func (h Handler) traits(e entity.Entity) row.Cell {
	traits := e.Strings("system.traits.value")
	labels := make([]string, 0, len(traits))
	for _, t := range traits {
		if t != "" {
			labels = append(labels, h.traitLabel(t))
		}
	}
	display := strings.Join(labels, ", ")
	if display == "" {
		display = h.L.T("ITEM_BROWSER.None")
	}
	return row.Cell{Display: display, Key: row.Numeric(float64(len(labels)))}
}

func (h Handler) size(e entity.Entity) (row.Cell, bool, error) {
	s := e.Text("system.traits.size.value")
	if s == "" {
		if v, ok := e.Field("system.size"); ok {
			s, _ = v.(string)
		}
	}
	if s == "" {
		return row.Cell{Display: h.L.T("ITEM_BROWSER.None")}, true, fmt.Errorf("no size")
	}
	display := ruleset.Label(h.L, "ITEM_BROWSER.PF2e.Size."+s, s)
	pos, ok := ruleset.Ordinal(sizes, s)
	if !ok {
		return row.Cell{Display: display}, true, fmt.Errorf("unknown size %q", s)
	}
	return row.Cell{Display: display, Key: row.Numeric(pos)}, true, nil
}
