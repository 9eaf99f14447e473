// Package brew holds the brewing arithmetic: strength/ratio and grams/ounces
// conversions, recipe derivation, and the calculator state that keeps the
// interdependent fields consistent.
package brew

import "math"

const (
	// GramsPerLitre is the mass of one litre of water.
	GramsPerLitre = 1000.0
	// OuncesPerGram converts grams to avoirdupois ounces.
	OuncesPerGram = 0.035274
	// DefaultPlaces is the rounding precision used when none is specified.
	DefaultPlaces = 2
)

// StrengthToRatio converts a strength in g/L to the N of a 1:N coffee:water ratio.
// 60 g/L is 1:16.67. Callers keep strength away from zero by clamping input.
func StrengthToRatio(strength float64) float64 {
	return GramsPerLitre / strength
}

// RatioToStrength converts the N of a 1:N ratio back to g/L.
func RatioToStrength(ratio float64) float64 {
	return GramsPerLitre / ratio
}

func GramsToOunces(grams float64) float64 {
	return grams * OuncesPerGram
}

func OuncesToGrams(ounces float64) float64 {
	return ounces / OuncesPerGram
}

// Round rounds half up to the given number of decimal places.
func Round(v float64, places int) float64 {
	if places == 0 {
		return math.Floor(v + 0.5)
	}
	factor := math.Pow(10, float64(places))
	return math.Floor(v*factor+0.5) / factor
}
