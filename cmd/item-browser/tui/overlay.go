package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"go.yaml.in/yaml/v3"

	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

// OverlayType identifies the kind of modal overlay.
type OverlayType int

const (
	OverlayChoice OverlayType = iota // List of choices with cursor
	OverlaySheet                     // Read-only item sheet
)

// Choice is one entry of a choice overlay.
type Choice struct {
	Value string
	Label string
}

// Overlay renders a centered modal box on top of existing content.
type Overlay struct {
	overlayType OverlayType
	title       string
	choices     []Choice
	lines       []string // sheet body
	cursor      int      // choice index, or first visible sheet line
	height      int      // visible sheet lines
	active      bool
}

// NewChoiceOverlay creates a list-of-choices dialog with the cursor on
// the choice whose value is current.
func NewChoiceOverlay(title string, choices []Choice, current string) Overlay {
	o := Overlay{
		overlayType: OverlayChoice,
		title:       title,
		choices:     choices,
		active:      true,
	}
	for i, c := range choices {
		if c.Value == current {
			o.cursor = i
			break
		}
	}
	return o
}

// NewSheetOverlay creates the detail sheet of an item.
func NewSheetOverlay(e entity.Entity, l *i18n.Localizer) Overlay {
	return Overlay{
		overlayType: OverlaySheet,
		title:       e.Name,
		lines:       SheetLines(e, l),
		height:      12,
		active:      true,
	}
}

// SheetLines renders an entity as labelled lines followed by its system
// data as YAML.
func SheetLines(e entity.Entity, l *i18n.Localizer) []string {
	if l == nil {
		l = i18n.Default()
	}
	lines := []string{
		OverlayFieldStyle.Render(l.T("ITEM_BROWSER.Type")+": ") + e.Type,
		OverlayFieldStyle.Render("ID: ") + e.ID,
	}
	if e.Scope.IsWorld() {
		lines = append(lines, OverlayFieldStyle.Render(l.T("ITEM_BROWSER.Source")+": ")+
			l.T("ITEM_BROWSER.WorldTip", folderPath(e.Folder)))
	} else {
		lines = append(lines, OverlayFieldStyle.Render(l.T("ITEM_BROWSER.Source")+": ")+
			l.T("ITEM_BROWSER.CompendiumTip", e.Scope.PackLabel, e.Scope.PackName))
	}
	if len(e.System) == 0 {
		return lines
	}
	data, err := yaml.Marshal(e.System)
	if err != nil {
		return lines
	}
	lines = append(lines, "")
	return append(lines, strings.Split(strings.TrimRight(string(data), "\n"), "\n")...)
}

func folderPath(folder []string) string {
	if len(folder) == 0 {
		return ""
	}
	return strings.Join(folder, "/") + "/"
}

func optionChoices(opts []ruleset.Option) []Choice {
	out := make([]Choice, 0, len(opts))
	for _, o := range opts {
		out = append(out, Choice{Value: o.Value, Label: o.Label})
	}
	return out
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// SetHeight sets how many sheet lines fit on screen.
func (o *Overlay) SetHeight(h int) {
	if h < 3 {
		h = 3
	}
	o.height = h
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}
	switch o.overlayType {
	case OverlayChoice:
		return o.updateChoice(msg)
	case OverlaySheet:
		return o.updateSheet(msg)
	}
	return o, nil
}

func (o Overlay) updateChoice(msg tea.Msg) (Overlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: false}
			}
		case "up", "k":
			if o.cursor > 0 {
				o.cursor--
			}
		case "down", "j":
			if o.cursor < len(o.choices)-1 {
				o.cursor++
			}
		case "enter":
			o.active = false
			if o.cursor < 0 || o.cursor >= len(o.choices) {
				return o, func() tea.Msg { return OverlayCloseMsg{Confirmed: false} }
			}
			result := o.choices[o.cursor].Value
			return o, func() tea.Msg {
				return OverlayCloseMsg{Result: result, Confirmed: true}
			}
		}
	}
	return o, nil
}

func (o Overlay) updateSheet(msg tea.Msg) (Overlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: false}
			}
		case "up", "k":
			if o.cursor > 0 {
				o.cursor--
			}
		case "down", "j":
			if o.cursor < o.maxScroll() {
				o.cursor++
			}
		}
	}
	return o, nil
}

func (o Overlay) maxScroll() int {
	if n := len(o.lines) - o.height; n > 0 {
		return n
	}
	return 0
}

// View renders the overlay box. It does not composite over a background;
// that is the caller's responsibility using Composite().
func (o Overlay) View() string {
	if !o.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	switch o.overlayType {
	case OverlayChoice:
		for i, c := range o.choices {
			if i == o.cursor {
				b.WriteString(OverlayChoiceCursorStyle.Render("> " + c.Label))
			} else {
				b.WriteString("  " + c.Label)
			}
			if i < len(o.choices)-1 {
				b.WriteString("\n")
			}
		}
	case OverlaySheet:
		end := o.cursor + o.height
		if end > len(o.lines) {
			end = len(o.lines)
		}
		if o.cursor > 0 {
			b.WriteString(OverlayScrollHintStyle.Render("  ↑ more") + "\n")
		}
		b.WriteString(strings.Join(o.lines[o.cursor:end], "\n"))
		if end < len(o.lines) {
			b.WriteString("\n" + OverlayScrollHintStyle.Render("  ↓ more"))
		}
	}
	return OverlayStyle.Render(b.String())
}

// Composite places the overlay box centered on top of the background string.
// The background is expected to be a fully rendered terminal frame.
func Composite(background string, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		if w := ansi.StringWidth(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := max((totalHeight-len(overlayLines))/2, 0)
	startCol := max((totalWidth-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)

		left := ansi.Truncate(bgLine, startCol, "")
		if bgWidth < startCol {
			left += strings.Repeat(" ", startCol-bgWidth)
		}
		right := ""
		if end := startCol + ansi.StringWidth(overlayLine); end < bgWidth {
			right = ansi.Cut(bgLine, end, bgWidth)
		}
		bgLines[row] = left + overlayLine + right
	}

	if totalHeight > 0 && len(bgLines) > totalHeight {
		bgLines = bgLines[:totalHeight]
	}
	return strings.Join(bgLines, "\n")
}
