package pipeline

import (
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

// TypeOptions lists the type filter choices for the candidates. A ruleset
// with declared types offers the ones present, or a single "no items"
// option; a ruleset without types offers every present type after an
// "all types" entry.
func TypeOptions(l *i18n.Localizer, h ruleset.Handler, candidates []entity.Entity) []ruleset.Option {
	if l == nil {
		l = i18n.Default()
	}
	declared := h.EntityTypes()
	allowed := make(map[string]bool, len(declared))
	for _, t := range declared {
		allowed[t] = true
	}

	seen := map[string]bool{}
	var opts []ruleset.Option
	for _, e := range candidates {
		if e.Type == "" || seen[e.Type] {
			continue
		}
		if len(declared) > 0 && !allowed[e.Type] {
			continue
		}
		seen[e.Type] = true
		opts = append(opts, ruleset.Option{Value: e.Type, Label: TypeLabel(l, e.Type)})
	}
	ruleset.SortOptions(l, opts)

	if len(declared) == 0 {
		all := ruleset.Option{Value: "", Label: l.T("ITEM_BROWSER.TypeFilters.AllTypes")}
		return append([]ruleset.Option{all}, opts...)
	}
	if len(opts) == 0 {
		return []ruleset.Option{{Value: "", Label: l.T("ITEM_BROWSER.TypeFilters.NoItems")}}
	}
	return opts
}

// TypeLabel is the localized label of an entity type.
func TypeLabel(l *i18n.Localizer, typ string) string {
	return ruleset.Label(l, "ITEM_BROWSER.TypeFilters."+typ, typ)
}

// DefaultType picks the starting type filter: the ruleset's preference
// when it is offered, otherwise the last option. A ruleset without a
// preference starts on "all types" when that entry exists.
func DefaultType(h ruleset.Handler, opts []ruleset.Option) string {
	if len(opts) == 0 {
		return ""
	}
	if want := h.DefaultType(); HasType(opts, want) {
		return want
	}
	return opts[len(opts)-1].Value
}

// HasType reports whether typ is one of the options.
func HasType(opts []ruleset.Option, typ string) bool {
	for _, o := range opts {
		if o.Value == typ {
			return true
		}
	}
	return false
}
