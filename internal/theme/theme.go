// Package theme holds the colour scheme selector. It is purely cosmetic.
package theme

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/brew-math/internal/storage"
	"github.com/ensigniasec/brew-math/internal/validate"
)

// Key is the preference key the theme is stored under.
const Key = "theme"

type Theme string

const (
	Light        Theme = "light"
	Dark         Theme = "dark"
	HighContrast Theme = "high-contrast"

	Default = Dark
)

// validTag accepts exactly the known theme names.
const validTag = "oneof=light dark high-contrast"

// ErrUnknownTheme is returned by Parse for names outside All.
var ErrUnknownTheme = errors.New("unknown theme")

// All lists the themes in cycling order.
var All = []Theme{Light, Dark, HighContrast} //nolint:gochecknoglobals // Fixed selector order.

func Parse(s string) (Theme, error) {
	if err := validate.Var(s, validTag); err != nil {
		return "", fmt.Errorf("%w: %q (expected light, dark or high-contrast)", ErrUnknownTheme, s)
	}
	return Theme(s), nil
}

// Next returns the theme after t in All, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range All {
		if th == t {
			return All[(i+1)%len(All)]
		}
	}
	return Default
}

// Load reads the stored theme, falling back to Default when absent or invalid.
func Load(s storage.Store) Theme {
	name := storage.Get(s, Key, string(Default))
	t, err := Parse(name)
	if err != nil {
		logrus.Warnf("Ignoring stored theme: %v", err)
		return Default
	}
	return t
}

// Save persists t.
func Save(s storage.Store, t Theme) error {
	logrus.Debugf("Saving theme %s", t)
	return s.Set(Key, string(t))
}

// Palette is the set of colours a theme renders with.
type Palette struct {
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Selected lipgloss.Color
	Border   lipgloss.Color
	Warning  lipgloss.Color
}

// Palette returns the colours for t.
func (t Theme) Palette() Palette {
	switch t {
	case Light:
		return Palette{
			Text:     lipgloss.Color("235"),
			Muted:    lipgloss.Color("244"),
			Accent:   lipgloss.Color("25"),
			Selected: lipgloss.Color("130"),
			Border:   lipgloss.Color("250"),
			Warning:  lipgloss.Color("160"),
		}
	case HighContrast:
		return Palette{
			Text:     lipgloss.Color("15"),
			Muted:    lipgloss.Color("15"),
			Accent:   lipgloss.Color("11"),
			Selected: lipgloss.Color("14"),
			Border:   lipgloss.Color("15"),
			Warning:  lipgloss.Color("9"),
		}
	default:
		return Palette{
			Text:     lipgloss.Color("252"),
			Muted:    lipgloss.Color("241"),
			Accent:   lipgloss.Color("69"),
			Selected: lipgloss.Color("214"),
			Border:   lipgloss.Color("238"),
			Warning:  lipgloss.Color("208"),
		}
	}
}
