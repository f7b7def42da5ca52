package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/version"
)

// cfourRenderer writes GENBAS entries for CFOUR. CFOUR wants one matrix per
// angular momentum over the union of its exponents, so functions are merged
// and missing primitives get zero coefficients.
type cfourRenderer struct{}

func (cfourRenderer) Tag() FormatTag    { return CFour }
func (cfourRenderer) Extension() string { return "GENBAS" }

func (cfourRenderer) Render(set *basis.Set) (string, error) {
	if err := validateAtoms(set); err != nil {
		return "", err
	}

	name := set.Name
	if name == "" {
		name = "basq"
	}
	description := set.Description
	if description == "" {
		description = fmt.Sprintf("Created by basq version %s", version.Version)
	}

	var lines []string
	for _, atom := range set.Atoms {
		ams := momentaPresent(atom)
		contractions := contractionsPerMomentum(atom)
		exponents := uniqueExponentsPerMomentum(atom, ams)

		lines = append(lines, fmt.Sprintf("%s:%s", strings.ToUpper(atom.Element), strings.ToUpper(name)))
		lines = append(lines, description)
		lines = append(lines, "")

		lines = append(lines, fmt.Sprintf("%3d", len(ams)))
		lines = append(lines, joinCounts(ams, func(am basis.AngularMomentum) int { return int(am) }))
		lines = append(lines, joinCounts(ams, func(am basis.AngularMomentum) int { return contractions[am] }))
		lines = append(lines, joinCounts(ams, func(am basis.AngularMomentum) int { return len(exponents[am]) }))

		for _, am := range ams {
			lines = appendExponentBlock(lines, exponents[am])
			lines = appendCoefficientMatrix(lines, atom, am, exponents[am])
		}
		lines = append(lines, "")
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n"), nil
}

// momentaPresent lists the angular momenta of an atom block in ascending order.
func momentaPresent(atom basis.AtomBasis) []basis.AngularMomentum {
	seen := make(map[basis.AngularMomentum]bool)
	var ams []basis.AngularMomentum
	for _, fun := range atom.Functions {
		if !seen[fun.L] {
			seen[fun.L] = true
			ams = append(ams, fun.L)
		}
	}
	sort.Slice(ams, func(i, j int) bool { return ams[i] < ams[j] })
	return ams
}

// contractionsPerMomentum counts contraction columns per angular momentum.
func contractionsPerMomentum(atom basis.AtomBasis) map[basis.AngularMomentum]int {
	counts := make(map[basis.AngularMomentum]int)
	for _, fun := range atom.Functions {
		counts[fun.L] += fun.Columns()
	}
	return counts
}

// uniqueExponentsPerMomentum collects the union of exponents per angular
// momentum, sorted descending.
func uniqueExponentsPerMomentum(atom basis.AtomBasis, ams []basis.AngularMomentum) map[basis.AngularMomentum][]float64 {
	out := make(map[basis.AngularMomentum][]float64, len(ams))
	for _, am := range ams {
		seen := make(map[float64]bool)
		var exps []float64
		for _, fun := range atom.Functions {
			if fun.L != am {
				continue
			}
			for _, e := range fun.Exponents {
				if !seen[e] {
					seen[e] = true
					exps = append(exps, e)
				}
			}
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(exps)))
		out[am] = exps
	}
	return out
}

func joinCounts(ams []basis.AngularMomentum, value func(basis.AngularMomentum) int) string {
	var b strings.Builder
	for _, am := range ams {
		b.WriteString(fmt.Sprintf("%5d", value(am)))
	}
	return b.String()
}

// appendExponentBlock writes exponents five per line. The flush-before-append
// layout puts a blank line ahead of each block, matching GENBAS convention.
func appendExponentBlock(lines []string, exps []float64) []string {
	row := ""
	for i, e := range exps {
		if i%5 == 0 {
			lines = append(lines, row)
			row = ""
		}
		row += fmt.Sprintf("%14.7f", e)
	}
	if row != "" {
		lines = append(lines, row)
	}
	return lines
}

// appendCoefficientMatrix writes one row per unique exponent with a column
// for every contraction of this angular momentum. Primitives a contraction
// does not use get zero coefficients.
func appendCoefficientMatrix(lines []string, atom basis.AtomBasis, am basis.AngularMomentum, exps []float64) []string {
	for _, e := range exps {
		var row strings.Builder
		for _, fun := range atom.Functions {
			if fun.L != am {
				continue
			}
			idx := exponentIndex(fun.Exponents, e)
			for col := 0; col < fun.Columns(); col++ {
				coeff := 0.0
				if idx >= 0 {
					coeff = fun.Coefficients[idx][col]
				}
				row.WriteString(fmt.Sprintf("%10.7f ", coeff))
			}
		}
		lines = append(lines, row.String())
	}
	return lines
}

func exponentIndex(exps []float64, e float64) int {
	for i, v := range exps {
		if v == e {
			return i
		}
	}
	return -1
}
