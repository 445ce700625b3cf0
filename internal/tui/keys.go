package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the grid screen bindings. It implements help.KeyMap.
type keyMap struct {
	NextCollection key.Binding
	PrevCollection key.Binding
	Search         key.Binding
	Left           key.Binding
	Right          key.Binding
	Up             key.Binding
	Down           key.Binding
	Sort           key.Binding
	NextPage       key.Binding
	PrevPage       key.Binding
	Bigger         key.Binding
	Smaller        key.Binding
	Reload         key.Binding
	Lookup         key.Binding
	Details        key.Binding
	Functions      key.Binding
	Help           key.Binding
	Quit           key.Binding
}

var defaultKeys = keyMap{
	NextCollection: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next list")),
	PrevCollection: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev list")),
	Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Left:           key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
	Right:          key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
	Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row")),
	Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row")),
	Sort:           key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "sort")),
	NextPage:       key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
	PrevPage:       key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
	Bigger:         key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
	Smaller:        key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rows")),
	Reload:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Lookup:         key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "ticket by id")),
	Details:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "details")),
	Functions:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "functions")),
	Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.NextPage, k.PrevPage, k.Lookup, k.Functions, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextCollection, k.PrevCollection, k.Search, k.Reload},
		{k.Left, k.Right, k.Up, k.Down, k.Sort},
		{k.NextPage, k.PrevPage, k.Bigger, k.Smaller},
		{k.Lookup, k.Details, k.Functions, k.Help, k.Quit},
	}
}
