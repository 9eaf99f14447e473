package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines global key bindings used across the TUI.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Next       key.Binding
	Prev       key.Binding
	Increase   key.Binding
	Decrease   key.Binding
	NextPreset key.Binding
	PrevPreset key.Binding
	Reset      key.Binding
	Theme      key.Binding
	Edit       key.Binding
	Commit     key.Binding
	Cancel     key.Binding
	ForceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "toggle help"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "=", "right"),
			key.WithHelp("+/→", "step up"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-", "_", "left"),
			key.WithHelp("-/←", "step down"),
		),
		NextPreset: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "next preset"),
		),
		PrevPreset: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "previous preset"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset panel"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle theme"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("0-9/enter", "edit"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Edit, k.Increase, k.NextPreset, k.Reset, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Edit, k.Commit, k.Cancel},
		{k.Increase, k.Decrease, k.NextPreset, k.PrevPreset},
		{k.Reset, k.Theme, k.Help, k.Quit},
	}
}
