// Package filter defines the FilterState value owned by one browser dialog.
// Every With* method returns a modified copy; the receiver is never changed.
package filter

import "github.com/ddbrown30/item-browser/internal/row"

// Well-known source ids.
const (
	AllSources = "all"
	WorldItems = "worldItems"
)

// Order is a sort direction.
type Order int

const (
	Ascending  Order = 1
	Descending Order = -1
)

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// State is the complete set of user-chosen filter and sort inputs.
type State struct {
	Source string
	Type   string
	Name   string
	// Structured holds ruleset filter dropdown values by control key.
	Structured map[string]string
	// Search holds ruleset secondary free-text searches by control key.
	Search     map[string]string
	SortColumn string
	SortOrder  Order
}

// New returns the initial state: everything unfiltered, sorted by name.
func New() State {
	return State{
		SortColumn: row.NameColumn,
		SortOrder:  Ascending,
	}
}

// Value returns the structured filter value for key, "" when unset.
func (s State) Value(key string) string {
	return s.Structured[key]
}

// SearchText returns the secondary search text for key.
func (s State) SearchText(key string) string {
	return s.Search[key]
}

// WithSource returns a copy with the source filter set.
func (s State) WithSource(id string) State {
	s.Source = id
	return s
}

// WithType returns a copy with the type filter set.
func (s State) WithType(t string) State {
	s.Type = t
	return s
}

// WithName returns a copy with the name search set.
func (s State) WithName(name string) State {
	s.Name = name
	return s
}

// WithValue returns a copy with one structured filter set. An empty value
// clears the filter.
func (s State) WithValue(key, value string) State {
	s.Structured = with(s.Structured, key, value)
	return s
}

// WithSearch returns a copy with one secondary search set.
func (s State) WithSearch(key, text string) State {
	s.Search = with(s.Search, key, text)
	return s
}

// WithSort applies a header click: the same column flips the order, a new
// column sorts ascending.
func (s State) WithSort(column string) State {
	if s.SortColumn == column {
		s.SortOrder = -s.SortOrder
		if s.SortOrder == 0 {
			s.SortOrder = Ascending
		}
		return s
	}
	s.SortColumn = column
	s.SortOrder = Ascending
	return s
}

// ResetSort returns a copy sorted ascending by name, keeping the order
// when the column is already name.
func (s State) ResetSort() State {
	if s.SortColumn != row.NameColumn {
		s.SortColumn = row.NameColumn
		s.SortOrder = Ascending
	}
	if s.SortOrder == 0 {
		s.SortOrder = Ascending
	}
	return s
}

func with(m map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	if value == "" {
		delete(out, key)
	} else {
		out[key] = value
	}
	return out
}
