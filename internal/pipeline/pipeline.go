// Package pipeline turns the aggregated candidates and the current filter
// state into the ordered rows a dialog shows. Everything here is a pure
// function of its inputs.
package pipeline

import (
	"context"
	"strings"

	"github.com/ddbrown30/item-browser/internal/aggregate"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/row"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

// Input is everything the pipeline reads besides the filter state.
type Input struct {
	Candidates []entity.Entity
	Handler    ruleset.Handler
	// Resolver serves sub-entity lookups made during projection.
	Resolver host.Resolver
	// ItemTypes is the caller's type allow-list.
	ItemTypes []string
	L         *i18n.Localizer
}

// View is the derived output of one pipeline run.
type View struct {
	Rows []row.Row
	// State is the input state after sort normalization.
	State    filter.State
	Columns  []string
	Controls []ruleset.Control
}

// Derive runs the whole pipeline: scope, ruleset filter, projection, name
// search and sort.
func Derive(ctx context.Context, in Input, st filter.State) View {
	st = NormalizeSort(in.Handler, st)
	scoped := Scope(in, st)
	controls := in.Handler.FilterOptions(scoped)
	st = DropStaleValues(st, controls)
	rows := Filter(ctx, in, st, scoped)
	Sort(in.localizer(), rows, st.SortColumn, st.SortOrder)
	return View{
		Rows:     rows,
		State:    st,
		Columns:  in.Handler.Columns(st.Type),
		Controls: controls,
	}
}

// DropStaleValues clears structured values the controls no longer offer.
func DropStaleValues(st filter.State, controls []ruleset.Control) filter.State {
	offered := make(map[string]map[string]bool, len(controls))
	for _, c := range controls {
		values := make(map[string]bool, len(c.Options))
		for _, o := range c.Options {
			values[o.Value] = true
		}
		offered[c.Key] = values
	}
	for key, value := range st.Structured {
		if value == "" || offered[key][value] {
			continue
		}
		st = st.WithValue(key, "")
	}
	return st
}

// Scope applies the type and source filters. Its output is also what the
// structured filter options are computed from.
func Scope(in Input, st filter.State) []entity.Entity {
	types := aggregate.Types(in.Handler.EntityTypes(), in.ItemTypes)
	var out []entity.Entity
	for _, e := range in.Candidates {
		if st.Type != "" && e.Type != st.Type {
			continue
		}
		if !aggregate.Accepts(types, e.Type) {
			continue
		}
		if !InSource(e, st.Source) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// InSource reports whether e belongs to the source id.
func InSource(e entity.Entity, source string) bool {
	switch source {
	case "", filter.AllSources:
		return true
	case filter.WorldItems:
		return e.Scope.IsWorld()
	default:
		return !e.Scope.IsWorld() && e.Scope.PackID == source
	}
}

// Filter runs the ruleset filter over scoped entities, projects the
// survivors and applies the name search.
func Filter(ctx context.Context, in Input, st filter.State, scoped []entity.Entity) []row.Row {
	kept := in.Handler.Filter(scoped, st)
	needle := strings.ToLower(strings.TrimSpace(st.Name))
	rows := make([]row.Row, 0, len(kept))
	for _, e := range kept {
		r := in.Handler.Project(ctx, in.Resolver, e)
		if needle != "" && !strings.Contains(strings.ToLower(r.Name.Display), needle) {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

// NormalizeSort resets the sort to name when the active column is not a
// sortable column of the current type filter.
func NormalizeSort(h ruleset.Handler, st filter.State) filter.State {
	if st.SortOrder == 0 {
		st.SortOrder = filter.Ascending
	}
	if st.SortColumn == "" || st.SortColumn == row.NameColumn {
		return st.ResetSort()
	}
	if !Sortable(h, st.Type, st.SortColumn) {
		return st.ResetSort()
	}
	return st
}

// Sortable reports whether column is declared for typ and can be sorted.
func Sortable(h ruleset.Handler, typ, column string) bool {
	if column == row.NameColumn {
		return true
	}
	for _, c := range h.Columns(typ) {
		if c == column {
			return h.Header(c).Sortable
		}
	}
	return false
}

func (in Input) localizer() *i18n.Localizer {
	if in.L == nil {
		return i18n.Default()
	}
	return in.L
}
