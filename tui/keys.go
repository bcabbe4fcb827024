package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the help line.
type keyMap struct {
	Dataset1 key.Binding
	Dataset2 key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Info     key.Binding
	Focus    key.Binding
	Scroll   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dataset1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dataset 1")),
		Dataset2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "dataset 2")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Info:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		Scroll:   key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑↓", "scroll log")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dataset1, k.Dataset2, k.Pause, k.Restart, k.Info, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dataset1, k.Dataset2, k.Pause, k.Restart, k.Info},
		{k.Focus, k.Scroll, k.Help, k.Quit},
	}
}
