package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/config"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/notify"
)

// compactIcon is the label of the compact entry point.
const compactIcon = "▤"

// BrowserFactory opens a new browse-mode browser.
type BrowserFactory func() BrowserModel

// DirectoryModel is the item directory: the world's items with a name
// filter and the entry point that opens the item browser.
type DirectoryModel struct {
	ctx      context.Context
	l        *i18n.Localizer
	resolver host.Resolver
	items    []entity.Entity
	settings config.Settings
	open     BrowserFactory

	keys    DirectoryKeyMap
	search  textinput.Model
	status  StatusBar
	overlay Overlay
	browser *BrowserModel

	cursor int
	focus  FocusZone
	width  int
	height int

	Quitting bool
}

// NewDirectoryModel creates the directory view over the world items.
func NewDirectoryModel(ctx context.Context, l *i18n.Localizer, resolver host.Resolver, items []entity.Entity, settings config.Settings, open BrowserFactory) DirectoryModel {
	if l == nil {
		l = i18n.Default()
	}
	keys := DefaultDirectoryKeys()
	if !settings.ShowEntryPointButton || open == nil {
		settings.ShowEntryPointButton = false
		keys.Browser.SetEnabled(false)
		keys.Focus.SetEnabled(false)
	}

	ti := textinput.New()
	ti.Placeholder = l.T("ITEM_BROWSER.SearchName")
	ti.Prompt = "⌕ "
	ti.CharLimit = 64
	ti.Width = 30

	return DirectoryModel{
		ctx:      ctx,
		l:        l,
		resolver: resolver,
		items:    items,
		settings: settings,
		open:     open,
		keys:     keys,
		search:   ti,
		status:   NewStatusBar(keys.Search, keys.Browser, keys.Open, keys.Quit),
	}
}

func (m DirectoryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Browsing reports whether the item browser is open.
func (m DirectoryModel) Browsing() bool { return m.browser != nil }

// Visible returns the items matching the name filter.
func (m DirectoryModel) Visible() []entity.Entity {
	q := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if q == "" {
		return m.items
	}
	var out []entity.Entity
	for _, e := range m.items {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}

func (m DirectoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.browser != nil {
		switch msg := msg.(type) {
		case BrowserClosedMsg:
			m.browser = nil
			return m, nil
		case tea.WindowSizeMsg:
			m.resize(msg.Width, msg.Height)
		}
		b, cmd := m.browser.update(msg)
		m.browser = &b
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case SheetMsg:
		if msg.Err != nil {
			m.status.Notify(notify.Notification{Level: notify.Error, Message: m.l.T(apperr.KeyFor(apperr.CodeOf(msg.Err)))})
			return m, nil
		}
		m.overlay = NewSheetOverlay(msg.Entity, m.l)
		m.overlay.SetHeight(m.height - 10)
		return m, nil

	case OverlayCloseMsg:
		return m, nil

	case tea.KeyMsg:
		if m.overlay.Active() {
			var cmd tea.Cmd
			m.overlay, cmd = m.overlay.Update(msg)
			return m, cmd
		}
		if m.focus == FocusSearch {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m DirectoryModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "esc", "enter", "tab":
		m.focus = FocusTable
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m DirectoryModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.Visible()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Focus):
		if m.focus == FocusButton {
			m.focus = FocusTable
		} else {
			m.focus = FocusButton
		}

	case key.Matches(msg, m.keys.Browser):
		return m.openBrowser()

	case key.Matches(msg, m.keys.Open):
		if m.focus == FocusButton {
			return m.openBrowser()
		}
		if m.cursor >= len(visible) || m.resolver == nil {
			return m, nil
		}
		id := visible[m.cursor].ID
		ctx, resolver := m.ctx, m.resolver
		return m, func() tea.Msg {
			e, err := resolver.Resolve(ctx, id)
			return SheetMsg{Entity: e, Err: err}
		}
	}
	return m, nil
}

func (m DirectoryModel) openBrowser() (tea.Model, tea.Cmd) {
	if !m.settings.ShowEntryPointButton {
		return m, nil
	}
	b := m.open()
	b.Embedded = true
	if m.width > 0 {
		b.resize(m.width, m.height)
	}
	m.browser = &b
	m.focus = FocusTable
	return m, b.Init()
}

func (m *DirectoryModel) resize(w, h int) {
	m.width, m.height = w, h
	m.status.SetWidth(w)
	m.search.Width = max(w-12, 10)
	m.overlay.SetHeight(h - 10)
}

func (m DirectoryModel) View() string {
	if m.Quitting {
		return ""
	}
	if m.browser != nil {
		return m.browser.View()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.l.T("ITEM_BROWSER.ItemDirectory")))
	b.WriteString("\n")

	full, compact := EntryPoint(m.l, m.settings, m.focus == FocusButton, m.width)
	if full != "" {
		b.WriteString(full)
		b.WriteString("\n")
	}
	searchStyle := SearchBlurredStyle
	if m.focus == FocusSearch {
		searchStyle = SearchFocusedStyle
	}
	searchBox := searchStyle.Render(m.search.View())
	if compact != "" {
		searchBox = lipgloss.JoinHorizontal(lipgloss.Center, searchBox, " ", compact)
	}
	b.WriteString(searchBox)
	b.WriteString("\n")

	visible := m.Visible()
	if len(visible) == 0 {
		b.WriteString(EmptyStyle.Render(m.l.T("ITEM_BROWSER.NoResults")))
		b.WriteString("\n")
	}
	for i, e := range visible {
		line := e.Name
		if len(e.Folder) > 0 {
			line = FolderStyle.Render(strings.Join(e.Folder, "/")+"/") + line
		}
		if i == m.cursor && m.focus == FocusTable {
			b.WriteString(ActiveItemStyle.Render(line))
		} else {
			b.WriteString(InactiveItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.status.View())

	frame := b.String()
	if m.overlay.Active() {
		return Composite(frame, m.overlay.View(), m.width, m.height)
	}
	return frame
}

// EntryPoint renders the item browser trigger: a full-width button above
// the search field, or a compact icon to place beside it. At most one of
// the two is non-empty; both are empty when the button is turned off.
func EntryPoint(l *i18n.Localizer, settings config.Settings, focused bool, width int) (full, compact string) {
	if !settings.ShowEntryPointButton {
		return "", ""
	}
	if settings.UseCompactButton {
		style := CompactButtonInactiveStyle
		if focused {
			style = CompactButtonActiveStyle
		}
		return "", style.Render(compactIcon)
	}
	style := ButtonInactiveStyle
	if focused {
		style = ButtonActiveStyle
	}
	if width > 0 {
		style = style.Width(width).Align(lipgloss.Center)
	}
	return style.Render(l.T("ITEM_BROWSER.OpenItemBrowser")), ""
}
