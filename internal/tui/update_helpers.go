package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/brew-math/internal/brew"
	"github.com/ensigniasec/brew-math/internal/theme"
)

// handleKey processes key bindings while no field is being edited.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn,cyclop
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.focus = brew.Fields[(int(m.focus)+1)%len(brew.Fields)]
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		n := len(brew.Fields)
		m.focus = brew.Fields[(int(m.focus)-1+n)%n]
		return m, nil

	case key.Matches(msg, m.keys.Increase):
		return m.apply(m.calc.Step(m.focus, 1))

	case key.Matches(msg, m.keys.Decrease):
		return m.apply(m.calc.Step(m.focus, -1))

	case key.Matches(msg, m.keys.NextPreset):
		return m.apply(m.calc.CyclePreset(m.focus, 1))

	case key.Matches(msg, m.keys.PrevPreset):
		return m.apply(m.calc.CyclePreset(m.focus, -1))

	case key.Matches(msg, m.keys.Reset):
		return m.apply(m.calc.Reset(m.focus.Panel()))

	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit(formatValue(m.calc.View().Display().Value(m.focus)))
	}

	// Typing a number starts editing the focused field with that character.
	if msg.Type == tea.KeyRunes && isNumeric(msg.Runes) {
		return m.startEdit(string(msg.Runes))
	}
	return m, nil
}

// handleEditKey routes keys to the text input until the edit is committed or cancelled.
func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Commit):
		return m.commitEdit()

	case key.Matches(msg, m.keys.Cancel):
		m.stopEdit()
		return m, nil
	}

	// Only digits and a decimal point reach the input; letters would never parse.
	if msg.Type == tea.KeyRunes && !isNumeric(msg.Runes) {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startEdit(initial string) (Model, tea.Cmd) {
	m.editing = true
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) stopEdit() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

// commitEdit parses the typed value and writes it through the calculator.
// Text that is not a number is discarded.
func (m Model) commitEdit() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	field := m.focus
	m.stopEdit()

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logrus.Debugf("Discarding %s input %q: %v", field, raw, err)
		return m.setStatus(fmt.Sprintf("%q is not a number", raw))
	}

	if err := m.calc.Set(field, v); err != nil {
		return m.apply(err)
	}
	if r := field.Range(); !r.Contains(v) {
		return m.setStatus(fmt.Sprintf("%s limited to %s %s", field, r, field.Unit()))
	}
	return m, nil
}

// apply reports a calculator error on the status line. A failed write leaves the previous value in place.
func (m Model) apply(err error) (Model, tea.Cmd) {
	if err == nil {
		return m, nil
	}
	logrus.Warnf("Update failed: %v", err)
	return m.setStatus(err.Error())
}

func (m Model) cycleTheme() (Model, tea.Cmd) {
	m.theme = m.theme.Next()
	m.styles = newStyles(m.theme.Palette())
	m.applyHelpStyles()
	if err := theme.Save(m.prefs, m.theme); err != nil {
		return m.apply(err)
	}
	return m, nil
}

// setStatus shows text on the status line and schedules its expiry.
func (m Model) setStatus(text string) (Model, tea.Cmd) {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{Seq: seq}
	})
}

func (m *Model) applyHelpStyles() {
	m.help.Styles.ShortKey = m.styles.key
	m.help.Styles.FullKey = m.styles.key
	m.help.Styles.ShortDesc = m.styles.muted
	m.help.Styles.FullDesc = m.styles.muted
	m.help.Styles.ShortSeparator = m.styles.muted
	m.help.Styles.FullSeparator = m.styles.muted
}

func isNumeric(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
