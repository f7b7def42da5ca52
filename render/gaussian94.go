package render

import (
	"fmt"
	"strings"

	"github.com/qbanex/basq/basis"
)

// gaussian94Renderer writes the Gaussian94 interchange format, the inverse
// of basis.ParseGaussian94. General contractions are emitted as one block
// per contraction column, sharing the exponent list.
type gaussian94Renderer struct{}

func (gaussian94Renderer) Tag() FormatTag    { return Gaussian94 }
func (gaussian94Renderer) Extension() string { return "g94" }

func (gaussian94Renderer) Render(set *basis.Set) (string, error) {
	if err := validateAtoms(set); err != nil {
		return "", err
	}

	lines := []string{"****"}
	for _, atom := range set.Atoms {
		lines = append(lines, fmt.Sprintf("%s     0", atom.Element))
		for _, fun := range atom.Functions {
			for col := 0; col < fun.Columns(); col++ {
				lines = append(lines, fmt.Sprintf("%s   %d   1.00", fun.L.Upper(), len(fun.Exponents)))
				for i, coeff := range column(fun, col) {
					lines = append(lines, fmt.Sprintf("     %15.7f    % #11.9G", fun.Exponents[i], coeff))
				}
			}
		}
		lines = append(lines, "****")
	}
	return strings.Join(lines, "\n") + "\n", nil
}
