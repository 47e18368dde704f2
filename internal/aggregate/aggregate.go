// Package aggregate collects the candidate entities of one browser dialog
// from the world and the content packs, and computes the source list.
package aggregate

import (
	"context"
	"fmt"

	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

// Source is one entry of the source filter.
type Source struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Options are the caller-controlled inputs of an aggregation.
type Options struct {
	WorldItemsOnly bool
	// ValidSources restricts the source list when at least one entry
	// matches a computed source.
	ValidSources []string
	// InitialSource is the requested starting source.
	InitialSource string
	// ItemTypes is the caller's type allow-list.
	ItemTypes []string
}

// Result is the output of one aggregation cycle.
type Result struct {
	Sources       []Source
	Items         []entity.Entity
	InitialSource string
	// Resolver memoizes sub-entity lookups for this cycle.
	Resolver *host.Memo
	// Generation is set by Runner.Do.
	Generation uint64
}

// Types combines the ruleset's types with the caller's allow-list. A nil
// result accepts every type.
func Types(rulesetTypes, callerTypes []string) []string {
	switch {
	case len(rulesetTypes) == 0 && len(callerTypes) == 0:
		return nil
	case len(rulesetTypes) == 0:
		return append([]string(nil), callerTypes...)
	case len(callerTypes) == 0:
		return append([]string(nil), rulesetTypes...)
	}
	allowed := make(map[string]bool, len(callerTypes))
	for _, t := range callerTypes {
		allowed[t] = true
	}
	out := []string{}
	for _, t := range rulesetTypes {
		if allowed[t] {
			out = append(out, t)
		}
	}
	return out
}

// Accepts reports whether typ passes a restriction returned by Types.
func Accepts(types []string, typ string) bool {
	if types == nil {
		return true
	}
	for _, t := range types {
		if t == typ {
			return true
		}
	}
	return false
}

// Run gathers world and pack items for the handler. Entities and packs the
// user cannot observe are skipped silently. Host failures are returned.
func Run(ctx context.Context, h host.Host, rs ruleset.Handler, l *i18n.Localizer, opts Options) (Result, error) {
	if l == nil {
		l = i18n.Default()
	}
	types := Types(rs.EntityTypes(), opts.ItemTypes)
	seen := map[string]bool{}
	var items []entity.Entity
	add := func(e entity.Entity) {
		if seen[e.ID] || !Accepts(types, e.Type) {
			return
		}
		seen[e.ID] = true
		items = append(items, e)
	}

	var sources []Source
	if opts.WorldItemsOnly {
		sources = append(sources, Source{ID: filter.WorldItems, Label: l.T("ITEM_BROWSER.FilterWorldItems")})
	} else {
		sources = append(sources,
			Source{ID: filter.AllSources, Label: l.T("ITEM_BROWSER.FilterAllItems")},
			Source{ID: filter.WorldItems, Label: l.T("ITEM_BROWSER.FilterWorldItems")},
		)
	}

	world, err := h.WorldItems(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("reading world items: %w", err)
	}
	for _, e := range world {
		if !e.Permission.CanObserve() {
			continue
		}
		e.Scope = entity.WorldScope()
		add(e)
	}

	if !opts.WorldItemsOnly {
		packSources, err := packItems(ctx, h, rs, l, types, add)
		if err != nil {
			return Result{}, err
		}
		sources = append(sources, packSources...)
	}

	sources = restrictSources(sources, opts.ValidSources)
	items = restrictItems(items, sources)
	initial := sources[0].ID
	for _, s := range sources {
		if opts.InitialSource != "" && s.ID == opts.InitialSource {
			initial = s.ID
			break
		}
	}

	return Result{
		Sources:       sources,
		Items:         items,
		InitialSource: initial,
		Resolver:      host.NewMemo(h),
	}, nil
}

func packItems(ctx context.Context, h host.Host, rs ruleset.Handler, l *i18n.Localizer, types []string, add func(entity.Entity)) ([]Source, error) {
	packs, err := h.Packs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing packs: %w", err)
	}
	var sources []Source
	for _, pack := range packs {
		meta := pack.Metadata()
		if meta.DocumentName != host.DocumentItem || !pack.Permission().CanObserve() {
			continue
		}
		index, err := pack.Index(ctx, rs.IndexFields())
		if err != nil {
			return nil, fmt.Errorf("indexing pack %s: %w", meta.ID, err)
		}
		kept := 0
		for _, e := range index {
			if !Accepts(types, e.Type) {
				continue
			}
			e.Scope = entity.PackScope(meta.ID, meta.Title, meta.Name)
			add(e)
			kept++
		}
		if kept == 0 {
			continue
		}
		sources = append(sources, Source{ID: meta.ID, Label: packLabel(l, meta)})
	}
	return sources, nil
}

func packLabel(l *i18n.Localizer, meta host.PackMetadata) string {
	if meta.PackageType == host.PackageWorld {
		return meta.Title + " (" + l.T("ITEM_BROWSER.WorldCompendium") + ")"
	}
	return meta.Title + " (" + meta.PackageName + ")"
}

// restrictSources keeps the listed sources when at least one of them
// exists; otherwise the full list is kept.
func restrictSources(sources []Source, valid []string) []Source {
	if len(valid) == 0 {
		return sources
	}
	listed := make(map[string]bool, len(valid))
	for _, v := range valid {
		listed[v] = true
	}
	var kept []Source
	for _, s := range sources {
		if listed[s.ID] {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return sources
	}
	return kept
}

// restrictItems drops items whose source is no longer listed. Nothing is
// dropped while the "all" source remains.
func restrictItems(items []entity.Entity, sources []Source) []entity.Entity {
	listed := make(map[string]bool, len(sources))
	for _, s := range sources {
		listed[s.ID] = true
	}
	if listed[filter.AllSources] {
		return items
	}
	var kept []entity.Entity
	for _, e := range items {
		id := e.Scope.PackID
		if e.Scope.IsWorld() {
			id = filter.WorldItems
		}
		if listed[id] {
			kept = append(kept, e)
		}
	}
	return kept
}
