package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/ddbrown30/item-browser/internal/notify"
)

// StatusBar renders the bottom row with the item count, the latest
// notification and keyboard shortcuts.
type StatusBar struct {
	count     string
	note      string
	noteLevel notify.Level
	shortcuts []key.Binding
	width     int
}

// NewStatusBar creates a status bar showing the given shortcuts.
func NewStatusBar(shortcuts ...key.Binding) StatusBar {
	return StatusBar{shortcuts: shortcuts}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetCount replaces the item count text.
func (s *StatusBar) SetCount(text string) {
	s.count = text
}

// Notify shows a notification until the next one replaces it.
func (s *StatusBar) Notify(n notify.Notification) {
	s.note = n.String()
	s.noteLevel = n.Level
}

// Note returns the notification currently shown.
func (s StatusBar) Note() string {
	return s.note
}

// View renders the status bar.
func (s StatusBar) View() string {
	leftPart := s.count
	if s.note != "" {
		style := StatusInfoStyle
		if s.noteLevel != notify.Info {
			style = StatusErrorStyle
		}
		if leftPart != "" {
			leftPart += " · "
		}
		leftPart += style.Render(s.note)
	}

	var shortcuts []string
	for _, b := range s.shortcuts {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		shortcuts = append(shortcuts, StatusBarKeyStyle.Render(h.Key)+": "+h.Desc)
	}
	rightPart := strings.Join(shortcuts, " · ")

	availableWidth := s.width - 2 // account for StatusBarStyle padding
	leftWidth := ansi.StringWidth(leftPart)
	rightWidth := ansi.StringWidth(rightPart)
	if leftWidth+rightWidth+1 > availableWidth {
		rightPart = ""
		rightWidth = 0
		if availableWidth > 0 && leftWidth > availableWidth {
			leftPart = ansi.Truncate(leftPart, availableWidth, "…")
			leftWidth = ansi.StringWidth(leftPart)
		}
	}
	gap := availableWidth - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	content := leftPart + strings.Repeat(" ", gap) + rightPart
	if s.width <= 0 {
		return StatusBarStyle.Render(content)
	}
	return StatusBarStyle.Width(s.width).Render(content)
}
