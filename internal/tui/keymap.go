package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open      key.Binding
	Up        key.Binding
	SelectAll key.Binding
	Copy      key.Binding
	Paste     key.Binding
	Delete    key.Binding
	Rename    key.Binding
	NewNote   key.Binding
	NewFolder key.Binding
	NewCase   key.Binding
	Upload    key.Binding
	Arrange   key.Binding
	Find      key.Binding
	CasePanel key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Up:        key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "up")),
	SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("^a", "all")),
	Copy:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "copy")),
	Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("^v", "paste")),
	Delete:    key.NewBinding(key.WithKeys("delete", "x"), key.WithHelp("x", "delete")),
	Rename:    key.NewBinding(key.WithKeys("f2", "r"), key.WithHelp("r", "rename")),
	NewNote:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),
	NewFolder: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "folder")),
	NewCase:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "case")),
	Upload:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
	Arrange:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "arrange")),
	Find:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
	CasePanel: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "case")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+q"), key.WithHelp("q", "quit")),
}

func (k keyMap) footer() []key.Binding {
	return []key.Binding{
		k.Open, k.Up, k.NewNote, k.NewFolder, k.NewCase, k.Upload, k.Rename, k.Delete,
		k.Copy, k.Paste, k.Arrange, k.Find, k.CasePanel, k.Quit,
	}
}
