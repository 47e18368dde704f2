package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/browser"
	"github.com/ddbrown30/item-browser/internal/dice"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/notify"
	"github.com/ddbrown30/item-browser/internal/row"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

// browserChrome is the number of lines around the row table.
const browserChrome = 9

type pickKind int

const (
	pickNone pickKind = iota
	pickSource
	pickType
	pickControl
	pickFilterValue
	pickSort
)

const (
	choiceFilter = "filter:"
	choiceSearch = "search:"
)

// BrowserModel is the Bubble Tea surface of one item browser dialog.
type BrowserModel struct {
	ctx    context.Context
	dialog *browser.Dialog
	notes  *notify.Recorder
	l      *i18n.Localizer

	keys   BrowserKeyMap
	help   help.Model
	table  table.Model
	search textinput.Model
	status StatusBar

	overlay   Overlay
	picking   pickKind
	filterKey string
	searchKey string // "" while the input edits the name search

	focus   FocusZone
	loading bool
	width   int
	height  int

	// Embedded browsers report closing with BrowserClosedMsg instead of
	// quitting the program.
	Embedded bool
	Quitting bool
}

// NewBrowserModel wraps a dialog that has not been loaded yet. notes
// must be the Notifier the dialog was created with.
func NewBrowserModel(ctx context.Context, d *browser.Dialog, notes *notify.Recorder) BrowserModel {
	l := d.Localizer()
	keys := DefaultBrowserKeys()
	if d.Options().Browse {
		keys.Confirm.SetEnabled(false)
	}

	ti := textinput.New()
	ti.Placeholder = l.T("ITEM_BROWSER.SearchName")
	ti.Prompt = "⌕ "
	ti.CharLimit = 64
	ti.Width = 40

	t := table.New(table.WithFocused(true), table.WithHeight(10))
	t.SetStyles(tableStyles(false))

	m := BrowserModel{
		ctx:     ctx,
		dialog:  d,
		notes:   notes,
		l:       l,
		keys:    keys,
		help:    help.New(),
		table:   t,
		search:  ti,
		status:  NewStatusBar(keys.Search, keys.Activate, keys.Help, keys.Quit),
		loading: true,
	}
	m.sync()
	return m
}

// Dialog returns the wrapped dialog.
func (m BrowserModel) Dialog() *browser.Dialog { return m.dialog }

// Status returns the status bar.
func (m BrowserModel) Status() StatusBar { return m.status }

func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, fetchCmd(m.ctx, m.dialog))
}

func fetchCmd(ctx context.Context, d *browser.Dialog) tea.Cmd {
	return func() tea.Msg {
		res, ok, err := d.Fetch(ctx)
		return ResultsMsg{Result: res, OK: ok, Err: err}
	}
}

func sheetCmd(ctx context.Context, d *browser.Dialog) tea.Cmd {
	return func() tea.Msg {
		e, err := d.OpenSheet(ctx)
		return SheetMsg{Entity: e, Err: err}
	}
}

func rollCmd(name, formula string) tea.Cmd {
	return func() tea.Msg {
		r, err := dice.RollFormula(formula)
		return RollMsg{Name: name, Roll: r, Err: err}
	}
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m BrowserModel) update(msg tea.Msg) (BrowserModel, tea.Cmd) {
	m, cmd := m.handle(msg)
	if m.notes != nil {
		for _, n := range m.notes.Drain() {
			m.status.Notify(n)
		}
	}
	return m, cmd
}

func (m BrowserModel) handle(msg tea.Msg) (BrowserModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case ResultsMsg:
		if !msg.OK {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.notify(notify.Error, m.l.T("ITEM_BROWSER.Errors.AggregationFailed", msg.Err.Error()))
			return m, nil
		}
		if m.dialog.Apply(msg.Result) {
			m.sync()
		}
		return m, nil

	case SheetMsg:
		if msg.Err != nil {
			m.notify(notify.Error, m.l.T(apperr.KeyFor(apperr.CodeOf(msg.Err))))
			return m, nil
		}
		m.overlay = NewSheetOverlay(msg.Entity, m.l)
		m.overlay.SetHeight(m.height - 10)
		return m, nil

	case RollMsg:
		if msg.Err != nil {
			m.notify(notify.Warn, m.l.T(apperr.KeyFor(apperr.CodeOf(msg.Err))))
			return m, nil
		}
		m.notify(notify.Info, m.l.T("ITEM_BROWSER.RollResult", msg.Name, msg.Roll.Total, msg.Roll.Breakdown))
		return m, nil

	case OverlayCloseMsg:
		return m.closePick(msg)

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

func (m BrowserModel) updateSearch(msg tea.KeyMsg) (BrowserModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.close()
	case "esc", "enter", "tab":
		m.focus = FocusTable
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.searchKey == "" {
		m.dialog.SetName(m.search.Value())
	} else {
		m.dialog.SetSearch(m.searchKey, m.search.Value())
	}
	m.sync()
	return m, cmd
}

func (m BrowserModel) updateKeys(msg tea.KeyMsg) (BrowserModel, tea.Cmd) {
	st := m.dialog.State()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.close()

	case key.Matches(msg, m.keys.Up):
		m.dialog.MoveSelection(-1)
		m.sync()

	case key.Matches(msg, m.keys.Down):
		m.dialog.MoveSelection(1)
		m.sync()

	case key.Matches(msg, m.keys.Search):
		return m.focusSearch("")

	case key.Matches(msg, m.keys.Source):
		var choices []Choice
		for _, s := range m.dialog.Sources() {
			choices = append(choices, Choice{Value: s.ID, Label: s.Label})
		}
		m.pick(pickSource, m.l.T("ITEM_BROWSER.Source"), choices, st.Source)

	case key.Matches(msg, m.keys.Type):
		m.pick(pickType, m.l.T("ITEM_BROWSER.Type"), optionChoices(m.dialog.TypeOptions()), st.Type)

	case key.Matches(msg, m.keys.Filter):
		var choices []Choice
		for _, c := range m.dialog.Controls() {
			choices = append(choices, Choice{Value: choiceFilter + c.Key, Label: c.Label + ": " + optionLabel(c.Options, st.Value(c.Key))})
		}
		for _, s := range m.dialog.Searches() {
			choices = append(choices, Choice{Value: choiceSearch + s.Key, Label: m.l.T(s.Label)})
		}
		if len(choices) > 0 {
			m.pick(pickControl, m.l.T("ITEM_BROWSER.Filters"), choices, "")
		}

	case key.Matches(msg, m.keys.Sort):
		var choices []Choice
		for _, h := range m.dialog.Headers() {
			if h.Sortable {
				choices = append(choices, Choice{Value: h.Key, Label: m.l.T(h.Label)})
			}
		}
		m.pick(pickSort, m.l.T("ITEM_BROWSER.SortBy"), choices, st.SortColumn)

	case key.Matches(msg, m.keys.Activate):
		r, ok := m.dialog.Selected()
		if !ok {
			return m, nil
		}
		switch m.dialog.DoubleClickRow(r.ID) {
		case browser.ActionResolved:
			return m.finish()
		case browser.ActionOpenSheet:
			return m, sheetCmd(m.ctx, m.dialog)
		}

	case key.Matches(msg, m.keys.Confirm):
		_ = m.dialog.Confirm()
		if m.dialog.Closed() {
			return m.finish()
		}

	case key.Matches(msg, m.keys.Drag):
		if data, ok := m.dialog.DragData(); ok {
			m.notify(notify.Info, m.l.T("ITEM_BROWSER.DragData", string(data)))
		}

	case key.Matches(msg, m.keys.Roll):
		r, ok := m.dialog.Selected()
		if !ok {
			return m, nil
		}
		formula := m.formulaOf(r)
		if formula == "" {
			m.notify(notify.Warn, m.l.T("ITEM_BROWSER.NothingToRoll"))
			return m, nil
		}
		return m, rollCmd(r.Name.Display, formula)

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, fetchCmd(m.ctx, m.dialog)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// formulaOf returns the first dice formula among the row's visible
// columns, preferring the sorted column.
func (m BrowserModel) formulaOf(r row.Row) string {
	if c, ok := r.Columns[m.dialog.State().SortColumn]; ok && c.Formula != "" {
		return c.Formula
	}
	for _, h := range m.dialog.Headers() {
		if c, ok := r.Columns[h.Key]; ok && c.Formula != "" {
			return c.Formula
		}
	}
	return ""
}

func (m *BrowserModel) pick(kind pickKind, title string, choices []Choice, current string) {
	if len(choices) == 0 {
		return
	}
	m.picking = kind
	m.overlay = NewChoiceOverlay(title, choices, current)
}

func (m BrowserModel) closePick(msg OverlayCloseMsg) (BrowserModel, tea.Cmd) {
	kind := m.picking
	m.picking = pickNone
	if !msg.Confirmed {
		return m, nil
	}
	switch kind {
	case pickSource:
		m.dialog.SetSource(msg.Result)
	case pickType:
		m.dialog.SetType(msg.Result)
	case pickSort:
		m.dialog.ClickHeader(msg.Result)
	case pickFilterValue:
		m.dialog.SetFilter(m.filterKey, msg.Result)
	case pickControl:
		if k, ok := strings.CutPrefix(msg.Result, choiceSearch); ok {
			return m.focusSearch(k)
		}
		k := strings.TrimPrefix(msg.Result, choiceFilter)
		for _, c := range m.dialog.Controls() {
			if c.Key == k {
				m.filterKey = k
				m.pick(pickFilterValue, c.Label, optionChoices(c.Options), m.dialog.State().Value(k))
				return m, nil
			}
		}
		return m, nil
	default:
		return m, nil
	}
	m.sync()
	return m, nil
}

func (m BrowserModel) focusSearch(searchKey string) (BrowserModel, tea.Cmd) {
	m.searchKey = searchKey
	m.focus = FocusSearch
	if searchKey == "" {
		m.search.Placeholder = m.l.T("ITEM_BROWSER.SearchName")
		m.search.SetValue(m.dialog.State().Name)
	} else {
		for _, s := range m.dialog.Searches() {
			if s.Key == searchKey {
				m.search.Placeholder = m.l.T(s.Label)
			}
		}
		m.search.SetValue(m.dialog.State().SearchText(searchKey))
	}
	m.search.CursorEnd()
	return m, m.search.Focus()
}

func (m BrowserModel) close() (BrowserModel, tea.Cmd) {
	m.dialog.Dismiss()
	return m.finish()
}

func (m BrowserModel) finish() (BrowserModel, tea.Cmd) {
	m.Quitting = true
	if m.Embedded {
		return m, func() tea.Msg { return BrowserClosedMsg{} }
	}
	return m, tea.Quit
}

func (m *BrowserModel) notify(level notify.Level, message string) {
	m.status.Notify(notify.Notification{Level: level, Message: message})
}

func (m *BrowserModel) resize(w, h int) {
	m.width, m.height = w, h
	m.status.SetWidth(w)
	m.help.Width = w
	m.table.SetWidth(w)
	m.table.SetHeight(max(h-browserChrome, 3))
	m.search.Width = max(w-10, 10)
	m.overlay.SetHeight(h - 10)
}

// sync rebuilds the table from the dialog's current view.
func (m *BrowserModel) sync() {
	headers := m.dialog.Headers()
	st := m.dialog.State()

	cols := make([]table.Column, 0, len(headers))
	for _, h := range headers {
		title := m.l.T(h.Label)
		if h.Key == st.SortColumn {
			title += sortMarker(st.SortOrder)
		}
		cols = append(cols, table.Column{Title: title, Width: h.Width})
	}

	rows := m.dialog.Rows()
	trs := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tr := table.Row{r.Name.Display}
		for _, h := range headers[1:] {
			c, ok := r.Columns[h.Key]
			if !ok {
				c = row.Unused()
			}
			tr = append(tr, c.Display)
		}
		trs = append(trs, tr)
	}

	// Rows must never carry more cells than there are columns.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(trs)

	i := m.dialog.Selection().Index(rows)
	m.table.SetStyles(tableStyles(i >= 0))
	m.table.SetCursor(max(i, 0))
	m.status.SetCount(m.l.T("ITEM_BROWSER.ItemCount", len(rows), m.dialog.Total()))
}

func sortMarker(o filter.Order) string {
	if o == filter.Descending {
		return " ▼"
	}
	return " ▲"
}

func optionLabel(opts []ruleset.Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func (m BrowserModel) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.l.T("ITEM_BROWSER.ItemBrowser")))
	if title := m.dialog.Ruleset().Title(); title != "" {
		b.WriteString(" " + SubtitleStyle.Render(title))
	}
	b.WriteString("\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n")
	b.WriteString(m.searchView())
	b.WriteString("\n")

	switch {
	case m.loading && !m.dialog.Loaded():
		b.WriteString(EmptyStyle.Render(m.l.T("ITEM_BROWSER.Loading")))
	case len(m.dialog.Rows()) == 0:
		b.WriteString(EmptyStyle.Render(m.l.T("ITEM_BROWSER.NoResults")))
	default:
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	b.WriteString(m.buttons())
	b.WriteString("\n")
	b.WriteString(m.status.View())
	if m.help.ShowAll {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}

	frame := b.String()
	if m.overlay.Active() {
		return Composite(frame, m.overlay.View(), m.width, m.height)
	}
	return frame
}

func (m BrowserModel) filterBar() string {
	st := m.dialog.State()
	parts := []string{
		FilterLabelStyle.Render(m.l.T("ITEM_BROWSER.Source")+": ") + FilterValueStyle.Render(m.sourceLabel(st.Source)),
		FilterLabelStyle.Render(m.l.T("ITEM_BROWSER.Type")+": ") + FilterValueStyle.Render(optionLabel(m.dialog.TypeOptions(), st.Type)),
	}
	for _, c := range m.dialog.Controls() {
		if v := st.Value(c.Key); v != "" {
			parts = append(parts, FilterLabelStyle.Render(c.Label+": ")+FilterValueStyle.Render(optionLabel(c.Options, v)))
		}
	}
	for _, s := range m.dialog.Searches() {
		if v := st.SearchText(s.Key); v != "" {
			parts = append(parts, FilterLabelStyle.Render(m.l.T(s.Label)+": ")+FilterValueStyle.Render(v))
		}
	}
	return strings.Join(parts, "  ")
}

func (m BrowserModel) sourceLabel(id string) string {
	for _, s := range m.dialog.Sources() {
		if s.ID == id {
			return s.Label
		}
	}
	return id
}

func (m BrowserModel) searchView() string {
	if m.focus == FocusSearch {
		return SearchFocusedStyle.Render(m.search.View())
	}
	return SearchBlurredStyle.Render(m.search.View())
}

func (m BrowserModel) buttons() string {
	selectBtn := ButtonInactiveStyle.Render(m.dialog.SelectLabel())
	if _, ok := m.dialog.Selected(); ok {
		selectBtn = ButtonActiveStyle.Render(m.dialog.SelectLabel())
	}
	return selectBtn + "  " + ButtonInactiveStyle.Render(m.l.T("ITEM_BROWSER.Close"))
}
