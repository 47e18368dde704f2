package tui

import (
	"github.com/ddbrown30/item-browser/internal/aggregate"
	"github.com/ddbrown30/item-browser/internal/dice"
	"github.com/ddbrown30/item-browser/internal/entity"
)

// FocusZone identifies which component currently has keyboard focus.
type FocusZone int

const (
	FocusTable  FocusZone = iota
	FocusSearch           // Name search input
	FocusButton           // Directory entry point
)

// --- Inter-component messages ---

// ResultsMsg carries one finished aggregation.
type ResultsMsg struct {
	Result aggregate.Result
	OK     bool // false when the run was superseded or the dialog closed
	Err    error
}

// SheetMsg carries the resolved entity for the sheet overlay.
type SheetMsg struct {
	Entity entity.Entity
	Err    error
}

// RollMsg carries the result of rolling a row's formula.
type RollMsg struct {
	Name string
	Roll dice.Roll
	Err  error
}

// OverlayCloseMsg is emitted when any overlay is dismissed.
type OverlayCloseMsg struct {
	Result    string // chosen value, empty on cancel
	Confirmed bool
}

// BrowserClosedMsg is sent by the directory when its embedded browser
// closes.
type BrowserClosedMsg struct{}
