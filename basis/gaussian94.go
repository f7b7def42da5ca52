package basis

import (
	"strconv"
	"strings"

	"github.com/qbanex/basq/element"
	"github.com/qbanex/basq/errors"
)

// ParseGaussian94 parses a basis set in the Gaussian94 interchange format,
// the lingua franca of the basis set repositories.
//
// The format is roughly:
//
//	****
//	Element_symbol
//	AM   n_contr   1.00
//	   exp1     coeff1
//	   exp2     coeff2
//	****
//	Element_symbol
//	...
//
// Element blocks are separated by '****' lines. Text before the first and
// after the last separator may only contain '!' comments or blank lines.
// Fused "sp" shells are split into an s and a p function sharing exponents.
// Floats may use the Fortran convention ('D' instead of 'E').
func ParseGaussian94(text string) ([]AtomBasis, error) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	blocks := strings.Split(text, "****\n")
	if len(blocks) < 2 {
		return nil, errors.New("at least one '****' sequence in the input is expected")
	}
	if hasContent(blocks[0]) {
		return nil, errors.New("found valid content before initial '****' sequence")
	}
	if hasContent(blocks[len(blocks)-1]) {
		return nil, errors.New("found valid content after final '****' sequence")
	}

	atoms := make([]AtomBasis, 0, len(blocks)-2)
	for _, block := range blocks[1 : len(blocks)-1] {
		atom, err := parseElementBlock(block)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
	return atoms, nil
}

// stripComment collapses a raw line to its content: comments and blank
// lines become empty strings.
func stripComment(line string) string {
	if line == "" || line[0] == '!' {
		return ""
	}
	return strings.TrimSpace(line)
}

func hasContent(block string) bool {
	for _, line := range strings.Split(block, "\n") {
		if stripComment(line) != "" {
			return true
		}
	}
	return false
}

func parseElementBlock(block string) (AtomBasis, error) {
	var lines []string
	for _, raw := range strings.Split(block, "\n") {
		if l := stripComment(raw); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return AtomBasis{}, errors.New("empty element block")
	}

	symbol := strings.Fields(lines[0])[0]
	elem, ok := element.BySymbol(symbol)
	if !ok {
		return AtomBasis{}, errors.Newf("element block starting with invalid element symbol %q", symbol)
	}
	atom := AtomBasis{Element: elem.Symbol}

	idx := 1
	for idx < len(lines) {
		// New function definition starts with the angular momentum letter
		// and the number of contracted primitives
		header := strings.Fields(lines[idx])
		if len(header) < 2 {
			return AtomBasis{}, errors.Newf("malformed shell header %q", lines[idx])
		}
		amstr := strings.ToLower(header[0])

		nContr, err := strconv.Atoi(header[1])
		if err != nil {
			return AtomBasis{}, errors.Newf(
				"expect number of contracted functions (following AM letter) to be an integer, not %q", header[1])
		}
		if nContr <= 0 {
			return AtomBasis{}, errors.Newf("number of contracted functions must be positive, got %d", nContr)
		}
		if idx+nContr >= len(lines) {
			return AtomBasis{}, errors.Newf("contraction block for %q ends prematurely", header[0])
		}

		if amstr == "sp" {
			// Fused shell defining an s and a p function at the same time
			sFun, pFun, err := parseFusedSP(lines[idx+1 : idx+1+nContr])
			if err != nil {
				return AtomBasis{}, err
			}
			atom.Functions = append(atom.Functions, sFun, pFun)
			idx += nContr + 1
			continue
		}

		am, err := ParseAngularMomentum(amstr)
		if err != nil {
			return AtomBasis{}, err
		}

		fun := ContractedFunction{L: am}
		for _, line := range lines[idx+1 : idx+1+nContr] {
			cols := strings.Fields(line)
			if len(cols) != 2 {
				return AtomBasis{}, errors.Newf(
					"expect exactly two columns in contraction block, culprit line is %q", line)
			}
			exp, coeff, err := parseFloatPair(cols[0], cols[1], line)
			if err != nil {
				return AtomBasis{}, err
			}
			fun.Exponents = append(fun.Exponents, exp)
			fun.Coefficients = append(fun.Coefficients, []float64{coeff})
		}
		atom.Functions = append(atom.Functions, fun)
		idx += nContr + 1
	}
	return atom, nil
}

func parseFusedSP(rows []string) (ContractedFunction, ContractedFunction, error) {
	sFun := ContractedFunction{L: S}
	pFun := ContractedFunction{L: P}
	for _, line := range rows {
		cols := strings.Fields(line)
		if len(cols) != 3 {
			return sFun, pFun, errors.Newf(
				"expect exactly three columns in sp contraction block, culprit line is %q", line)
		}
		exp, err := parseFortranFloat(cols[0])
		if err != nil {
			return sFun, pFun, errors.Newf("could not convert to float: %q, culprit line is %q", cols[0], line)
		}
		sc, err := parseFortranFloat(cols[1])
		if err != nil {
			return sFun, pFun, errors.Newf("could not convert to float: %q, culprit line is %q", cols[1], line)
		}
		pc, err := parseFortranFloat(cols[2])
		if err != nil {
			return sFun, pFun, errors.Newf("could not convert to float: %q, culprit line is %q", cols[2], line)
		}
		sFun.Exponents = append(sFun.Exponents, exp)
		pFun.Exponents = append(pFun.Exponents, exp)
		sFun.Coefficients = append(sFun.Coefficients, []float64{sc})
		pFun.Coefficients = append(pFun.Coefficients, []float64{pc})
	}
	return sFun, pFun, nil
}

func parseFloatPair(expStr, coeffStr, line string) (float64, float64, error) {
	exp, err := parseFortranFloat(expStr)
	if err != nil {
		return 0, 0, errors.Newf("could not convert to float: %q, culprit line is %q", expStr, line)
	}
	coeff, err := parseFortranFloat(coeffStr)
	if err != nil {
		return 0, 0, errors.Newf("could not convert to float: %q, culprit line is %q", coeffStr, line)
	}
	return exp, coeff, nil
}

var fortranExponent = strings.NewReplacer("d", "e", "D", "E")

func parseFortranFloat(s string) (float64, error) {
	return strconv.ParseFloat(fortranExponent.Replace(s), 64)
}
