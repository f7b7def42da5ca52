// Package render converts basis sets into the input formats of the
// supported quantum chemistry programs.
//
// The registry is closed: adding a format means adding a renderer here.
// Unknown tags fail with ErrUnsupportedFormat before any catalogue or
// network work happens.
package render

import (
	"sort"
	"strings"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/errors"
)

// FormatTag identifies an output format.
type FormatTag string

// Supported format tags.
const (
	Gaussian94 FormatTag = "gaussian94"
	NWChem     FormatTag = "nwchem"
	Orca       FormatTag = "orca"
	QChem      FormatTag = "qchem"
	Turbomole  FormatTag = "turbomole"
	CFour      FormatTag = "cfour"
)

// Renderer produces the text form of a basis set for one program.
// Rendering is deterministic: the same set renders to byte-identical
// output every time.
type Renderer interface {
	Tag() FormatTag
	// Extension is the conventional file extension, without dot.
	Extension() string
	Render(set *basis.Set) (string, error)
}

var registry = map[FormatTag]Renderer{
	Gaussian94: gaussian94Renderer{},
	NWChem:     nwchemRenderer{},
	Orca:       orcaRenderer{},
	QChem:      qchemRenderer{},
	Turbomole:  turbomoleRenderer{},
	CFour:      cfourRenderer{},
}

// Lookup resolves a format tag against the registry.
func Lookup(tag FormatTag) (Renderer, error) {
	r, ok := registry[tag]
	if !ok {
		return nil, errors.NewUnsupportedFormatf("output format %q is not supported", tag)
	}
	return r, nil
}

// ParseTag validates a user-supplied format name and returns its tag.
func ParseTag(s string) (FormatTag, error) {
	tag := FormatTag(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Lookup(tag); err != nil {
		return "", err
	}
	return tag, nil
}

// ParseTags validates a list of format names up front, before any
// catalogue or network work.
func ParseTags(names []string) ([]FormatTag, error) {
	tags := make([]FormatTag, 0, len(names))
	for _, name := range names {
		tag, err := ParseTag(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Tags lists the registered format tags in alphabetical order.
func Tags() []FormatTag {
	tags := make([]FormatTag, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Extension returns the conventional file extension for a tag.
func Extension(tag FormatTag) (string, error) {
	r, err := Lookup(tag)
	if err != nil {
		return "", err
	}
	return r.Extension(), nil
}

// validateAtoms runs the shape checks shared by all renderers.
func validateAtoms(set *basis.Set) error {
	for _, atom := range set.Atoms {
		for _, fun := range atom.Functions {
			if err := fun.Validate(); err != nil {
				return errors.Wrapf(err, "element %s", atom.Element)
			}
		}
	}
	return nil
}

// column extracts one contraction column as a flat coefficient list.
func column(fun basis.ContractedFunction, col int) []float64 {
	out := make([]float64, len(fun.Coefficients))
	for i, row := range fun.Coefficients {
		out[i] = row[col]
	}
	return out
}
