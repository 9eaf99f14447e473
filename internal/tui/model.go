package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/brew-math/internal/brew"
	"github.com/ensigniasec/brew-math/internal/storage"
	"github.com/ensigniasec/brew-math/internal/theme"
)

// Model is the root Bubble Tea model.
type Model struct {
	calc  *brew.Calculator
	prefs storage.Store

	focus   brew.Field
	editing bool
	input   textinput.Model

	// status is a transient one-line notice, e.g. a clamped input.
	status    string
	statusSeq int

	theme  theme.Theme
	styles styles

	width       int
	height      int
	quitting    bool
	helpVisible bool

	help help.Model
	keys keyMap
}

// NewModel constructs a Model over calc. prefs stores the theme selection.
func NewModel(calc *brew.Calculator, prefs storage.Store) Model {
	th := theme.Load(prefs)

	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = inputCharLimit
	in.Width = inputWidth

	m := Model{
		calc:   calc,
		prefs:  prefs,
		focus:  brew.FieldStrength,
		input:  in,
		theme:  th,
		styles: newStyles(th.Palette()),
		help:   help.New(),
		keys:   newKeyMap(),
	}
	m.applyHelpStyles()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}
