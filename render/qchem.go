package render

import (
	"fmt"
	"strings"

	"github.com/qbanex/basq/basis"
)

// qchemRenderer writes the $basis section expected by Q-Chem.
type qchemRenderer struct{}

func (qchemRenderer) Tag() FormatTag    { return QChem }
func (qchemRenderer) Extension() string { return "bas" }

func (qchemRenderer) Render(set *basis.Set) (string, error) {
	if err := validateAtoms(set); err != nil {
		return "", err
	}

	lines := []string{"$basis"}
	for n, atom := range set.Atoms {
		if n > 0 {
			lines = append(lines, "****")
		}
		lines = append(lines, fmt.Sprintf("%2s  0", atom.Element))

		for _, fun := range atom.Functions {
			for col := 0; col < fun.Columns(); col++ {
				lines = append(lines, fmt.Sprintf("%s%4d  1.00", fun.L.Upper(), len(fun.Exponents)))
				for i, coeff := range column(fun, col) {
					lines = append(lines, fmt.Sprintf("%16.7f % #16.8G", fun.Exponents[i], coeff))
				}
			}
		}
	}
	lines = append(lines, "$end")
	return strings.Join(lines, "\n"), nil
}
