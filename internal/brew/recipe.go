package brew

import "fmt"

// SplitPercents are the fractions of total water listed in the split table, ascending.
var SplitPercents = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9} //nolint:gochecknoglobals // Fixed table rows.

// Split is one row of the water split table.
type Split struct {
	Percent string  `json:"percent"`
	Water   float64 `json:"water"`
}

// View is everything derived from a State for display.
type View struct {
	Strength        float64 `json:"strength"`
	Ratio           float64 `json:"ratio"`
	Water           float64 `json:"water"`
	WaterOunces     float64 `json:"water_ounces"`
	Coffee          float64 `json:"coffee"`
	Splits          []Split `json:"splits"`
	StrengthChanged bool    `json:"-"`
	WaterChanged    bool    `json:"-"`
}

// CoffeeGrams returns the coffee dose for the given strength (g/L) and water (g).
func CoffeeGrams(strength, water float64) float64 {
	return water * strength / GramsPerLitre
}

// WaterSplits returns the water amount at each of SplitPercents, rounded to 0.1 g.
func WaterSplits(water float64) []Split {
	splits := make([]Split, 0, len(SplitPercents))
	for _, p := range SplitPercents {
		splits = append(splits, Split{
			Percent: fmt.Sprintf("%d%%", int(Round(p*100, 0))),
			Water:   Round(water*p, 1),
		})
	}
	return splits
}

// Derive computes every displayed value from s. Values are unrounded except the split table.
func Derive(s State) View {
	return View{
		Strength:        s.Strength,
		Ratio:           StrengthToRatio(s.Strength),
		Water:           s.Water,
		WaterOunces:     GramsToOunces(s.Water),
		Coffee:          CoffeeGrams(s.Strength, s.Water),
		Splits:          WaterSplits(s.Water),
		StrengthChanged: s.Strength != DefaultStrength,
		WaterChanged:    s.Water != DefaultWater,
	}
}

// Display returns a copy rounded to the precision each value is shown at.
func (v View) Display() View {
	d := v
	d.Strength = Round(v.Strength, FieldStrength.Places())
	d.Ratio = Round(v.Ratio, FieldRatio.Places())
	d.Water = Round(v.Water, FieldWater.Places())
	d.WaterOunces = Round(v.WaterOunces, FieldOunces.Places())
	d.Coffee = Round(v.Coffee, 1)
	return d
}

// Value returns the view's value for an input field.
func (v View) Value(f Field) float64 {
	switch f {
	case FieldStrength:
		return v.Strength
	case FieldRatio:
		return v.Ratio
	case FieldWater:
		return v.Water
	case FieldOunces:
		return v.WaterOunces
	default:
		return 0
	}
}
