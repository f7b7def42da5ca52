// Package basis holds the in-memory model for Gaussian basis sets and the
// parser for the Gaussian94 interchange format.
//
// A basis set is a list of per-element blocks, each carrying contracted
// Gaussian functions. Coefficients form a matrix with one row per primitive
// exponent; general contractions contribute more than one column.
package basis

import (
	"strings"

	"github.com/qbanex/basq/element"
	"github.com/qbanex/basq/errors"
)

// AngularMomentum is the azimuthal quantum number of a shell.
type AngularMomentum int

// Shell letters in conventional order.
const (
	S AngularMomentum = iota
	P
	D
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
)

var amLetters = []string{"s", "p", "d", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o"}

// String returns the lower-case shell letter.
func (l AngularMomentum) String() string {
	if l < 0 || int(l) >= len(amLetters) {
		return "?"
	}
	return amLetters[l]
}

// Upper returns the upper-case shell letter.
func (l AngularMomentum) Upper() string {
	return strings.ToUpper(l.String())
}

// Valid reports whether the angular momentum has a shell letter.
func (l AngularMomentum) Valid() bool {
	return l >= 0 && int(l) < len(amLetters)
}

// ParseAngularMomentum converts a shell letter into an AngularMomentum.
func ParseAngularMomentum(s string) (AngularMomentum, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for i, letter := range amLetters {
		if lower == letter {
			return AngularMomentum(i), nil
		}
	}
	return 0, errors.Newf("invalid angular momentum string %q", s)
}

// ContractedFunction is one contracted Gaussian, or several sharing the same
// primitives when the contraction is general (multiple columns).
type ContractedFunction struct {
	L            AngularMomentum
	Exponents    []float64
	Coefficients [][]float64 // row per exponent, column per contraction
}

// Columns returns the contraction arity, 0 for an empty function.
func (f ContractedFunction) Columns() int {
	if len(f.Coefficients) == 0 {
		return 0
	}
	return len(f.Coefficients[0])
}

// Validate checks the exponent/coefficient shape invariants.
func (f ContractedFunction) Validate() error {
	if !f.L.Valid() {
		return errors.Newf("angular momentum %d out of range", int(f.L))
	}
	if len(f.Exponents) == 0 {
		return errors.New("contracted function has no primitives")
	}
	if len(f.Exponents) != len(f.Coefficients) {
		return errors.Newf("length of coefficients (%d) and length of exponents (%d) need to agree",
			len(f.Coefficients), len(f.Exponents))
	}
	cols := f.Columns()
	if cols == 0 {
		return errors.New("contracted function has no coefficient columns")
	}
	for i, row := range f.Coefficients {
		if len(row) != cols {
			return errors.Newf("coefficient row %d has %d columns, expected %d", i, len(row), cols)
		}
	}
	return nil
}

// AtomBasis collects the contracted functions for one element.
type AtomBasis struct {
	Element   string // chemical symbol, canonical casing
	Functions []ContractedFunction
}

// AtomicNumber resolves the element symbol against the periodic table.
func (a AtomBasis) AtomicNumber() (int, error) {
	e, ok := element.BySymbol(a.Element)
	if !ok {
		return 0, errors.Newf("unknown element symbol %q", a.Element)
	}
	return e.Number, nil
}

// Set is a complete basis set: per-element blocks plus catalogue identity.
// Sets are fetched on demand and held in memory only.
type Set struct {
	Name        string
	Description string
	Atoms       []AtomBasis
}

// Validate checks every atom block and contracted function.
func (s *Set) Validate() error {
	for _, atom := range s.Atoms {
		if _, err := atom.AtomicNumber(); err != nil {
			return err
		}
		for _, fun := range atom.Functions {
			if err := fun.Validate(); err != nil {
				return errors.Wrapf(err, "element %s", atom.Element)
			}
		}
	}
	return nil
}
