package tui

import "github.com/charmbracelet/bubbles/key"

// BrowserKeyMap holds the item browser key bindings.
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	Source   key.Binding
	Type     key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Activate key.Binding
	Confirm  key.Binding
	Drag     key.Binding
	Roll     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultBrowserKeys returns the default bindings. The confirm binding is
// labelled with the dialog's select button text.
func DefaultBrowserKeys() BrowserKeyMap {
	return BrowserKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Source:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "source")),
		Type:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Sort:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Confirm:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "select")),
		Drag:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drag data")),
		Roll:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "roll")),
		Reload:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp implements help.KeyMap.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Source, k.Type, k.Activate, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Activate, k.Confirm},
		{k.Search, k.Source, k.Type, k.Filter, k.Sort},
		{k.Drag, k.Roll, k.Reload, k.Help, k.Quit},
	}
}

// DirectoryKeyMap holds the item directory key bindings.
type DirectoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Search  key.Binding
	Focus   key.Binding
	Open    key.Binding
	Browser key.Binding
	Quit    key.Binding
}

// DefaultDirectoryKeys returns the default bindings.
func DefaultDirectoryKeys() DirectoryKeyMap {
	return DirectoryKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Browser: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "item browser")),
		Quit:    key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
