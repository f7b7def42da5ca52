package render

import (
	"fmt"
	"strings"

	"github.com/qbanex/basq/basis"
)

// turbomoleRenderer writes the $basis data group expected by Turbomole.
// Turbomole labels each element block with the basis set name.
type turbomoleRenderer struct{}

func (turbomoleRenderer) Tag() FormatTag    { return Turbomole }
func (turbomoleRenderer) Extension() string { return "turbomole" }

func (turbomoleRenderer) Render(set *basis.Set) (string, error) {
	if err := validateAtoms(set); err != nil {
		return "", err
	}

	name := set.Name
	if name == "" {
		name = "basq"
	}

	lines := []string{"$basis"}
	for _, atom := range set.Atoms {
		lines = append(lines, "*")
		lines = append(lines, fmt.Sprintf("%s %s", strings.ToLower(atom.Element), name))
		lines = append(lines, "*")

		for _, fun := range atom.Functions {
			for col := 0; col < fun.Columns(); col++ {
				lines = append(lines, fmt.Sprintf("  %3d  %s", len(fun.Exponents), fun.L.String()))
				for i, coeff := range column(fun, col) {
					lines = append(lines, fmt.Sprintf("     %15.7f    % #11.8G", fun.Exponents[i], coeff))
				}
			}
		}
	}
	lines = append(lines, "*", "$end")
	return strings.Join(lines, "\n"), nil
}
