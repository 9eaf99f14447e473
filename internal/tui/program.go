package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/brew-math/internal/brew"
	"github.com/ensigniasec/brew-math/internal/storage"
)

// Run starts the Bubble Tea TUI program and blocks until the user quits.
func Run(ctx context.Context, calc *brew.Calculator, prefs storage.Store) error {
	model := NewModel(calc, prefs)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Silence external logs (WARN/ERRO) during TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	// Run TUI blocking in this goroutine.
	_, err := p.Run()
	return err
}
