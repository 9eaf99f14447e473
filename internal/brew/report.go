package brew

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const reportWidth = 32

// PrintRecipe writes the recipe for v to w.
// If jsonOutput is true, it writes the display-rounded view as JSON.
func PrintRecipe(w io.Writer, v View, jsonOutput bool) error {
	d := v.Display()
	if jsonOutput {
		output, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	}

	var b strings.Builder
	fmt.Fprintln(&b, strings.Repeat("=", reportWidth))
	fmt.Fprintln(&b, "BREW MATH")
	fmt.Fprintln(&b, strings.Repeat("=", reportWidth))
	fmt.Fprintf(&b, "Strength : %g g/L (1:%g)\n", d.Strength, d.Ratio)
	fmt.Fprintf(&b, "Water    : %g g (%g oz)\n", d.Water, d.WaterOunces)
	fmt.Fprintf(&b, "Coffee   : %g g\n", d.Coffee)

	fmt.Fprintf(&b, "\nWATER SPLITS\n")
	fmt.Fprintln(&b, strings.Repeat("=", reportWidth))
	fmt.Fprintf(&b, "%-8s %s\n", "Percent", "Water (g)")
	for _, s := range d.Splits {
		fmt.Fprintf(&b, "%-8s %g\n", s.Percent, s.Water)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
