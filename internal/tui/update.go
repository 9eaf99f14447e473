package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.help.Width = x.Width
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.editing {
			m, cmd = m.handleEditKey(x)
			return m, cmd
		}
		m, cmd = m.handleKey(x)
		return m, cmd

	case clearStatusMsg:
		// A newer status replaced this one; leave it alone.
		if x.Seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}
