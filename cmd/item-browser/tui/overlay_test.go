package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/i18n"
)

func TestComposite(t *testing.T) {
	bg := "AAAA\nBBBB\nCCCC\nDDDD"
	overlay := "XX\nXX"
	result := Composite(bg, overlay, 4, 4)
	lines := strings.Split(result, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "AAAA", lines[0])
	assert.Equal(t, "BXXB", lines[1])
	assert.Equal(t, "CXXC", lines[2])
	assert.Equal(t, "DDDD", lines[3])
}

func TestCompositeEmpty(t *testing.T) {
	assert.Equal(t, "hello", Composite("hello", "", 5, 1))
}

func TestCompositeShortBackground(t *testing.T) {
	result := Composite("A", "XX", 6, 3)
	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "A", lines[0])
	assert.Equal(t, "  XX", lines[1])
}

func TestCompositeOversizedOverlay(t *testing.T) {
	result := Composite("A\nB", "XXXX\nXXXX\nXXXX\nXXXX", 2, 2)
	assert.NotEmpty(t, result)
}

func TestChoiceOverlay(t *testing.T) {
	o := NewChoiceOverlay("Pick", []Choice{{Value: "a", Label: "Alpha"}, {Value: "b", Label: "Beta"}}, "b")
	assert.Equal(t, 1, o.cursor)

	o, _ = o.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, o.cursor, "cursor stops at the last choice")
	o, _ = o.Update(tea.KeyMsg{Type: tea.KeyUp})
	o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, o.Active())
	require.NotNil(t, cmd)
	assert.Equal(t, OverlayCloseMsg{Result: "a", Confirmed: true}, cmd())
	assert.Empty(t, o.View())
}

func TestSheetOverlay(t *testing.T) {
	e := entity.Entity{
		ID:     "Compendium.srd.items.Item.x",
		Name:   "Longsword",
		Type:   "weapon",
		Scope:  entity.PackScope("srd.items", "Items (SRD)", "items"),
		System: map[string]any{"weight": 3, "damage": "1d8"},
	}
	lines := SheetLines(e, i18n.Default())
	text := strings.Join(lines, "\n")
	assert.Contains(t, text, "Compendium: Items (SRD) (items)")
	assert.Contains(t, text, "damage: 1d8")
	assert.Contains(t, text, "weight: 3")

	o := NewSheetOverlay(e, i18n.Default())
	o.SetHeight(3)
	assert.Contains(t, o.View(), "↓ more")
	o, _ = o.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, o.View(), "↑ more")

	o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, o.Active())
	assert.Equal(t, OverlayCloseMsg{}, cmd())
}

func TestSheetLinesWorldItem(t *testing.T) {
	e := entity.Entity{ID: "Item.1", Name: "Rope", Type: "gear", Folder: []string{"Camp", "Tools"}}
	lines := SheetLines(e, i18n.Default())
	assert.Contains(t, strings.Join(lines, "\n"), "World/Camp/Tools/")
	assert.Len(t, lines, 3)
}
