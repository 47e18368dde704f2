// Package ruleset defines the capability interface every supported game
// system implements, the registry that selects one by id, and the shared
// helpers the concrete handlers build on.
package ruleset

import (
	"context"

	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/row"
)

// Header describes how a column is presented.
type Header struct {
	Key      string
	Label    string // message catalog key
	Width    int
	Sortable bool
}

// Option is one choice of a structured filter control.
type Option struct {
	Value string
	Label string
}

// Control is a structured filter dropdown. Its first option always has an
// empty value and means "no restriction".
type Control struct {
	Key     string
	Label   string
	Options []Option
}

// Search is a secondary free-text search over one entity field.
type Search struct {
	Key   string
	Label string
	Field string
}

// Handler is implemented once per supported ruleset.
type Handler interface {
	// ID is the ruleset identifier the handler is registered under.
	ID() string
	// Title is a human-readable ruleset name.
	Title() string
	// EntityTypes lists the browsable entity types. Empty accepts all.
	EntityTypes() []string
	// Columns lists the column keys declared for an entity type, in order.
	Columns(entityType string) []string
	// Header describes a column.
	Header(column string) Header
	// IndexFields lists the field paths requested from pack indexes.
	IndexFields() []string
	// DefaultType is the preferred initial type filter, or "".
	DefaultType() string
	// Project builds the row for an entity. Sub-entity lookups go through r.
	Project(ctx context.Context, r host.Resolver, e entity.Entity) row.Row
	// Filter applies structured filters and secondary searches.
	Filter(entities []entity.Entity, st filter.State) []entity.Entity
	// FilterOptions builds the structured filter controls for the candidates.
	FilterOptions(entities []entity.Entity) []Control
	// Searches lists the secondary searches.
	Searches() []Search
}
