// Package selection tracks the highlighted row of a browser dialog.
package selection

import "github.com/ddbrown30/item-browser/internal/row"

// State is either no selection or one selected row id. The zero State
// selects nothing.
type State struct {
	id string
}

// None is the empty selection.
func None() State { return State{} }

// Select returns a selection of id. An empty id selects nothing.
func Select(id string) State { return State{id: id} }

// ID returns the selected row id.
func (s State) ID() (string, bool) {
	return s.id, s.id != ""
}

// IsSelected reports whether id is the selected row.
func (s State) IsSelected(id string) bool {
	return s.id != "" && s.id == id
}

func (s State) String() string {
	if s.id == "" {
		return "none"
	}
	return "selected(" + s.id + ")"
}

// Revalidate clears the selection when its row is no longer visible.
func (s State) Revalidate(rows []row.Row) State {
	if s.id == "" {
		return s
	}
	for _, r := range rows {
		if r.ID == s.id {
			return s
		}
	}
	return None()
}

// Index returns the position of the selected row, or -1.
func (s State) Index(rows []row.Row) int {
	if s.id == "" {
		return -1
	}
	for i, r := range rows {
		if r.ID == s.id {
			return i
		}
	}
	return -1
}

// Step moves the selection by delta rows, clamped to the list. With
// nothing selected it starts from the first row.
func (s State) Step(rows []row.Row, delta int) State {
	if len(rows) == 0 {
		return None()
	}
	i := s.Index(rows)
	if i < 0 {
		return Select(rows[0].ID)
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(rows) {
		i = len(rows) - 1
	}
	return Select(rows[i].ID)
}
