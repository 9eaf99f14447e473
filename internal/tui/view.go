package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ensigniasec/brew-math/internal/brew"
)

const strengthHelpText = "Strength can be written two ways. g/L is grams of coffee per litre of water; " +
	"60 g/L is a good place to start. The coffee to water ratio 1:N means one gram of coffee " +
	"for every N grams of water, so 1:15 is 1 g of coffee to 15 g of water. Both describe the same brew."

func (m Model) View() string {
	if m.quitting {
		return "Enjoy your coffee.\n"
	}

	v := m.calc.View()
	d := v.Display()

	var b strings.Builder
	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	coffee := m.renderPanel(brew.PanelCoffee, v.StrengthChanged, d, brew.FieldStrength, brew.FieldRatio)
	water := m.renderPanel(brew.PanelWater, v.WaterChanged, d, brew.FieldWater, brew.FieldOunces)
	if m.width == 0 || m.width >= horizontalMinWidth {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, coffee, strings.Repeat(" ", panelGap), water))
	} else {
		// Fall back to vertical stacking on narrow terminals.
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, coffee, water))
	}
	b.WriteString("\n\n")

	b.WriteString(renderRecipe(m, d))
	b.WriteString("\n\n")
	b.WriteString(renderSplits(m, d.Splits))
	b.WriteString("\n")

	if m.helpVisible {
		b.WriteString("\n")
		b.WriteString(renderHelp(m))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.warning.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderHeader(m Model) string {
	title := m.styles.title.Render("Brew Math")
	subtitle := m.styles.subtitle.Render("A simple tool to help you brew coffee")
	badge := m.styles.muted.Render(fmt.Sprintf("theme: %s", m.theme))
	return lipgloss.JoinVertical(lipgloss.Left, title+"  "+badge, subtitle)
}

// renderPanel draws one bordered panel holding two fields of the same canonical value.
func (m Model) renderPanel(p brew.Panel, changed bool, d brew.View, fields ...brew.Field) string {
	header := m.styles.heading.Render(p.String())
	if changed {
		header += "  " + m.styles.warning.Render("r: reset")
	}

	lines := []string{header}
	for _, f := range fields {
		lines = append(lines, m.renderField(f, d.Value(f)), m.renderPresets(f, d.Value(f)))
	}
	return m.styles.panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderField(f brew.Field, value float64) string {
	prefix := "  "
	valueStyle := m.styles.text
	if f == m.focus {
		prefix = m.styles.focused.Render("> ")
		valueStyle = m.styles.focused
	}

	shown := valueStyle.Render(formatValue(value))
	if f == m.focus && m.editing {
		shown = m.input.View()
	}
	return fmt.Sprintf("%s%s %s", prefix, shown, m.styles.muted.Render(f.Unit()))
}

// renderPresets lists the field's presets, highlighting the one matching the current value.
func (m Model) renderPresets(f brew.Field, value float64) string {
	active := f.PresetIndex(value)
	labels := make([]string, 0, len(f.Presets()))
	for i, p := range f.Presets() {
		label := f.PresetLabel(p)
		if i == active {
			labels = append(labels, m.styles.selected.Render("["+label+"]"))
			continue
		}
		labels = append(labels, m.styles.muted.Render(" "+label+" "))
	}
	return "  " + strings.Join(labels, "")
}

func renderRecipe(m Model, d brew.View) string {
	coffee := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.big.Render(fmt.Sprintf("%sg", formatValue(d.Coffee))),
		m.styles.heading.Render("Coffee"),
	)
	water := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.big.Render(fmt.Sprintf("%sg", formatValue(d.Water))),
		m.styles.heading.Render("Water"),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, coffee, "    ", water)
}

func renderSplits(m Model, splits []brew.Split) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.styles.border).
		Headers("Percent", "Water (g)").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return m.styles.heading.Padding(0, 1).Align(lipgloss.Center)
			}
			return m.styles.text.Padding(0, 1).Align(lipgloss.Center)
		})
	for _, s := range splits {
		t.Row(s.Percent, formatValue(s.Water))
	}
	return t.Render()
}

func renderHelp(m Model) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Palette().Accent).
		Padding(0, 1).
		Width(2*panelWidth + panelGap)
	content := []string{
		m.styles.heading.Render("Coffee strength?"),
		m.styles.text.Render(strengthHelpText),
	}
	return border.Render(strings.Join(content, "\n"))
}
