package render

import (
	"fmt"
	"strings"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/errors"
)

// orcaRenderer writes the %basis block expected by the Orca program.
// Orca addresses elements by atomic number and takes one contraction per
// shell block, so general contractions split into per-column blocks.
type orcaRenderer struct{}

func (orcaRenderer) Tag() FormatTag    { return Orca }
func (orcaRenderer) Extension() string { return "orca" }

func (orcaRenderer) Render(set *basis.Set) (string, error) {
	if err := validateAtoms(set); err != nil {
		return "", err
	}

	lines := []string{"%basis"}
	for _, atom := range set.Atoms {
		atnum, err := atom.AtomicNumber()
		if err != nil {
			return "", errors.Wrap(err, "orca output")
		}
		lines = append(lines, fmt.Sprintf("NewGTO %d", atnum))

		for _, fun := range atom.Functions {
			for col := 0; col < fun.Columns(); col++ {
				lines = append(lines, fmt.Sprintf(" %s    %d", fun.L.Upper(), len(fun.Exponents)))
				for i, coeff := range column(fun, col) {
					lines = append(lines, fmt.Sprintf(" %2d %15.7f    % #11.9G", i+1, fun.Exponents[i], coeff))
				}
			}
		}
		lines = append(lines, "end")
	}
	lines = append(lines, "end")
	return strings.Join(lines, "\n"), nil
}
