package brew

import "fmt"

// Range is an inclusive numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Clamp returns v limited to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// Field identifies one editable input of the calculator.
type Field int

const (
	FieldStrength Field = iota
	FieldRatio
	FieldWater
	FieldOunces
)

// Fields lists every input in display order.
var Fields = []Field{FieldStrength, FieldRatio, FieldWater, FieldOunces} //nolint:gochecknoglobals // Fixed input order.

// Panel groups fields that share a canonical value and a reset action.
type Panel int

const (
	PanelCoffee Panel = iota
	PanelWater
)

func (p Panel) String() string {
	if p == PanelWater {
		return "Water"
	}
	return "Coffee"
}

func (f Field) String() string {
	switch f {
	case FieldStrength:
		return "strength"
	case FieldRatio:
		return "ratio"
	case FieldWater:
		return "water"
	case FieldOunces:
		return "ounces"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Unit is the short unit label shown next to the input.
func (f Field) Unit() string {
	switch f {
	case FieldStrength:
		return "g/L"
	case FieldRatio:
		return "c:w"
	case FieldWater:
		return "g"
	case FieldOunces:
		return "oz"
	default:
		return ""
	}
}

// Panel returns the panel the field belongs to.
func (f Field) Panel() Panel {
	if f == FieldWater || f == FieldOunces {
		return PanelWater
	}
	return PanelCoffee
}

// Range is the accepted input interval. Values outside it are clamped.
func (f Field) Range() Range {
	switch f {
	case FieldStrength:
		return Range{Min: 40, Max: 100}
	case FieldRatio:
		return Range{Min: 10, Max: 25}
	case FieldWater:
		return Range{Min: 10, Max: 1000}
	case FieldOunces:
		return Range{Min: 1, Max: 45}
	default:
		return Range{}
	}
}

// Step is the increment applied by a single nudge.
func (f Field) Step() float64 {
	switch f {
	case FieldStrength, FieldOunces:
		return 1
	case FieldRatio:
		return 0.1
	case FieldWater:
		return 50
	default:
		return 0
	}
}

// Places is the display precision for the field.
func (f Field) Places() int {
	if f == FieldWater {
		return 1
	}
	return DefaultPlaces
}

// Presets returns the one-tap values offered for the field.
func (f Field) Presets() []float64 {
	switch f {
	case FieldStrength:
		return []float64{55, 57, 60, 63, 65}
	case FieldRatio:
		return []float64{15, 16, 17, 18}
	case FieldWater:
		return []float64{200, 250, 300, 500}
	case FieldOunces:
		return []float64{6, 8, 10, 12, 16}
	default:
		return nil
	}
}

// PresetLabel formats a preset the way it is shown on its button.
func (f Field) PresetLabel(v float64) string {
	switch f {
	case FieldStrength, FieldWater:
		return fmt.Sprintf("%gg", v)
	case FieldRatio:
		return fmt.Sprintf("1:%g", v)
	case FieldOunces:
		return fmt.Sprintf("%goz", v)
	default:
		return fmt.Sprintf("%g", v)
	}
}

// PresetIndex returns the index of the preset equal to current at display precision, or -1.
func (f Field) PresetIndex(current float64) int {
	rounded := Round(current, f.Places())
	for i, p := range f.Presets() {
		if p == rounded {
			return i
		}
	}
	return -1
}

// NextPreset returns the preset after (dir > 0) or before (dir < 0) current, wrapping around.
// When current is not a preset, it returns the nearest preset in that direction.
func (f Field) NextPreset(current float64, dir int) float64 {
	presets := f.Presets()
	if len(presets) == 0 {
		return current
	}
	if i := f.PresetIndex(current); i >= 0 {
		n := len(presets)
		if dir < 0 {
			return presets[(i-1+n)%n]
		}
		return presets[(i+1)%n]
	}
	if dir < 0 {
		for i := len(presets) - 1; i >= 0; i-- {
			if presets[i] < current {
				return presets[i]
			}
		}
		return presets[len(presets)-1]
	}
	for _, p := range presets {
		if p > current {
			return p
		}
	}
	return presets[0]
}
