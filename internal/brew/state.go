package brew

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/brew-math/internal/storage"
	"github.com/ensigniasec/brew-math/internal/validate"
)

// Preference keys.
const (
	KeyStrength = "strength"
	KeyWater    = "water"
)

// Defaults used on first run and by reset.
const (
	DefaultStrength = 60.0
	DefaultWater    = 250.0
)

// ErrNotFinite is returned when an input is NaN or infinite.
var ErrNotFinite = errors.New("value is not a finite number")

// State is the canonical brew: everything else is derived from it.
type State struct {
	// Strength in grams of coffee per litre of water.
	Strength float64 `json:"strength" validate:"finite,gt=0"`
	// Water in grams.
	Water float64 `json:"water" validate:"finite,gt=0"`
}

// DefaultState returns the first-run state.
func DefaultState() State {
	return State{Strength: DefaultStrength, Water: DefaultWater}
}

// CanonicalWaterRange is every water amount reachable through an input: grams or ounces.
func CanonicalWaterRange() Range {
	return Range{Min: FieldWater.Range().Min, Max: OuncesToGrams(FieldOunces.Range().Max)}
}

// Calculator binds a State to a preference store. Every write is clamped at
// the input boundary, converted to canonical units, and persisted before returning.
type Calculator struct {
	store storage.Store
	state State
}

// NewCalculator loads the state from s, replacing unusable values.
// Non-finite or non-positive values fall back to defaults; out-of-range values are clamped.
func NewCalculator(s storage.Store) (*Calculator, error) {
	c := &Calculator{
		store: s,
		state: State{
			Strength: storage.Get(s, KeyStrength, DefaultStrength),
			Water:    storage.Get(s, KeyWater, DefaultWater),
		},
	}

	healed := c.state
	if err := validate.Struct(healed); err != nil {
		for _, field := range validate.FailedFields(err) {
			switch field {
			case "Strength":
				logrus.Warnf("Invalid stored strength %v; using default.", healed.Strength)
				healed.Strength = DefaultStrength
			case "Water":
				logrus.Warnf("Invalid stored water %v; using default.", healed.Water)
				healed.Water = DefaultWater
			}
		}
	}
	healed.Strength = FieldStrength.Range().Clamp(healed.Strength)
	healed.Water = CanonicalWaterRange().Clamp(healed.Water)

	if healed.Strength != c.state.Strength {
		c.state.Strength = healed.Strength
		if err := c.persist(PanelCoffee); err != nil {
			return nil, err
		}
	}
	if healed.Water != c.state.Water {
		c.state.Water = healed.Water
		if err := c.persist(PanelWater); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// State returns a copy of the current canonical state.
func (c *Calculator) State() State { return c.state }

// View derives the display values from the current state.
func (c *Calculator) View() View { return Derive(c.state) }

// Value returns the current value of f in f's units.
func (c *Calculator) Value(f Field) float64 { return c.View().Value(f) }

func (c *Calculator) SetStrength(v float64) error { return c.Set(FieldStrength, v) }
func (c *Calculator) SetRatio(v float64) error    { return c.Set(FieldRatio, v) }
func (c *Calculator) SetWater(v float64) error    { return c.Set(FieldWater, v) }
func (c *Calculator) SetOunces(v float64) error   { return c.Set(FieldOunces, v) }

// Set writes v, expressed in f's units, clamped to f's range.
// If the write cannot be persisted the previous state is kept.
func (c *Calculator) Set(f Field, v float64) error {
	if err := validate.Var(v, "finite"); err != nil {
		return fmt.Errorf("%s: %w", f, ErrNotFinite)
	}
	in := f.Range().Clamp(v)
	if in != v {
		logrus.Debugf("Clamped %s %v to %v (range %s)", f, v, in, f.Range())
	}

	prev := c.state
	switch f {
	case FieldStrength:
		c.state.Strength = in
	case FieldRatio:
		c.state.Strength = RatioToStrength(in)
	case FieldWater:
		c.state.Water = in
	case FieldOunces:
		c.state.Water = OuncesToGrams(in)
	default:
		return fmt.Errorf("unknown field %s", f)
	}
	return c.commit(prev, f.Panel())
}

// Step nudges f by one step in the sign of dir, starting from the displayed value.
func (c *Calculator) Step(f Field, dir int) error {
	current := Round(c.Value(f), f.Places())
	switch {
	case dir > 0:
		return c.Set(f, current+f.Step())
	case dir < 0:
		return c.Set(f, current-f.Step())
	default:
		return nil
	}
}

// CyclePreset moves f to its next (dir > 0) or previous (dir < 0) preset.
func (c *Calculator) CyclePreset(f Field, dir int) error {
	return c.Set(f, f.NextPreset(c.Value(f), dir))
}

func (c *Calculator) ResetStrength() error { return c.Reset(PanelCoffee) }
func (c *Calculator) ResetWater() error    { return c.Reset(PanelWater) }

// Reset restores the default of the panel's canonical value.
func (c *Calculator) Reset(p Panel) error {
	logrus.Debugf("Resetting %s panel", p)
	prev := c.state
	if p == PanelWater {
		c.state.Water = DefaultWater
	} else {
		c.state.Strength = DefaultStrength
	}
	return c.commit(prev, p)
}

// commit persists the panel's value, restoring prev when the store rejects it.
func (c *Calculator) commit(prev State, p Panel) error {
	if err := c.persist(p); err != nil {
		c.state = prev
		return err
	}
	return nil
}

func (c *Calculator) persist(p Panel) error {
	key, value := KeyStrength, c.state.Strength
	if p == PanelWater {
		key, value = KeyWater, c.state.Water
	}
	if err := c.store.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
