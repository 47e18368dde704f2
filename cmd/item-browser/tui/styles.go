package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Title and filter bar styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	// FilterLabelStyle names a filter in the filter bar.
	FilterLabelStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0)

	// FilterValueStyle shows the active value of a filter.
	FilterValueStyle = lipgloss.NewStyle().
				Foreground(colorMauve).
				Bold(true)

	// SearchFocusedStyle frames the name search while it has focus.
	SearchFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBlue).
				Padding(0, 1)

	// SearchBlurredStyle frames the name search otherwise.
	SearchBlurredStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSurface1).
				Padding(0, 1)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Italic(true).
			PaddingLeft(1)
)

// Button styles for the select button and the directory entry point.
var (
	ButtonActiveStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorBlue).
				Padding(0, 2)

	ButtonInactiveStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorSurface1).
				Padding(0, 2)

	// CompactButtonActiveStyle is the focused icon button beside the
	// directory search.
	CompactButtonActiveStyle = lipgloss.NewStyle().
					Foreground(colorBase).
					Background(colorBlue).
					Padding(0, 1)

	CompactButtonInactiveStyle = lipgloss.NewStyle().
					Foreground(colorText).
					Background(colorSurface1).
					Padding(0, 1)
)

// Directory list styles.
var (
	ActiveItemStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Background(colorSurface1).
			Bold(true).
			PaddingLeft(1)

	InactiveItemStyle = lipgloss.NewStyle().
				Foreground(colorText).
				PaddingLeft(1)

	FolderStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Italic(true)
)

// Status bar styles.
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)

	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Background(colorSurface0)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Background(colorSurface0).
				Bold(true)
)

// Overlay styles.
var (
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	OverlayChoiceCursorStyle = lipgloss.NewStyle().
					Foreground(colorBlue).
					Bold(true)

	// OverlayFieldStyle labels a field on an item sheet.
	OverlayFieldStyle = lipgloss.NewStyle().
				Foreground(colorMauve)

	OverlayScrollHintStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0)
)

// tableStyles returns the row table styles. Without a selection the
// cursor row is drawn like any other row.
func tableStyles(selected bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSurface1).
		BorderBottom(true).
		Foreground(colorMauve).
		Bold(true)
	s.Cell = s.Cell.Foreground(colorText)
	if selected {
		s.Selected = s.Selected.
			Foreground(colorBase).
			Background(colorBlue).
			Bold(false)
	} else {
		s.Selected = lipgloss.NewStyle().Foreground(colorText)
	}
	return s
}
