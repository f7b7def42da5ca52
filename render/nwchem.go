package render

import (
	"fmt"
	"strings"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/element"
	"github.com/qbanex/basq/errors"
)

// nwchemRenderer writes the basis block expected by NWChem. NWChem supports
// general contractions natively, so coefficient matrices keep their columns.
type nwchemRenderer struct{}

func (nwchemRenderer) Tag() FormatTag    { return NWChem }
func (nwchemRenderer) Extension() string { return "nw" }

func (nwchemRenderer) Render(set *basis.Set) (string, error) {
	if err := validateAtoms(set); err != nil {
		return "", err
	}

	lines := []string{"basis"}
	for _, atom := range set.Atoms {
		elem, ok := element.BySymbol(atom.Element)
		if !ok {
			return "", errors.Newf("unknown element symbol %q", atom.Element)
		}
		lines = append(lines, fmt.Sprintf("# %s", elem.Name))

		for _, fun := range atom.Functions {
			lines = append(lines, fmt.Sprintf("  %s  %s", elem.Symbol, fun.L.Upper()))
			for i, exp := range fun.Exponents {
				var row strings.Builder
				row.WriteString(fmt.Sprintf("    %15.7f", exp))
				for _, coeff := range fun.Coefficients[i] {
					row.WriteString(fmt.Sprintf("    % #11.9G", coeff))
				}
				lines = append(lines, row.String())
			}
		}
	}
	lines = append(lines, "end", "")
	return strings.Join(lines, "\n"), nil
}
