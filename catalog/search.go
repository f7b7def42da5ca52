package catalog

import (
	"regexp"
	"strings"

	"github.com/qbanex/basq/element"
	"github.com/qbanex/basq/errors"
)

// Predicate reports whether an entry satisfies one search criterion.
type Predicate func(Entry) bool

// Filter is an AND conjunction of predicates over catalogue entries. Text
// predicates are regular expressions anchored at the start of the subject
// (prefix match, not full match). With ignoreCase set, pattern and subject
// are both lower-cased before matching.
type Filter struct {
	ignoreCase bool
	preds      []Predicate
}

func NewFilter(ignoreCase bool) *Filter {
	return &Filter{ignoreCase: ignoreCase}
}

// MatchName constrains the entry name.
func (f *Filter) MatchName(pattern string) error {
	re, err := f.compile(pattern)
	if err != nil {
		return err
	}
	f.preds = append(f.preds, func(e Entry) bool {
		return re.MatchString(f.fold(e.Name))
	})
	return nil
}

// MatchDescription constrains the entry description.
func (f *Filter) MatchDescription(pattern string) error {
	re, err := f.compile(pattern)
	if err != nil {
		return err
	}
	f.preds = append(f.preds, func(e Entry) bool {
		return re.MatchString(f.fold(e.Description))
	})
	return nil
}

// MatchAny matches entries whose name or description matches the pattern.
// This is what a bare search term on the command line maps to.
func (f *Filter) MatchAny(pattern string) error {
	re, err := f.compile(pattern)
	if err != nil {
		return err
	}
	f.preds = append(f.preds, func(e Entry) bool {
		return re.MatchString(f.fold(e.Name)) || re.MatchString(f.fold(e.Description))
	})
	return nil
}

// RequireElements constrains entries to those covering every given element.
// Symbols are canonicalised first, so "he" requires helium. An empty list
// adds no constraint.
func (f *Filter) RequireElements(symbols []string) error {
	if len(symbols) == 0 {
		return nil
	}
	required, err := element.NormalizeSymbols(symbols)
	if err != nil {
		return err
	}
	f.preds = append(f.preds, func(e Entry) bool {
		return e.HasElements(required)
	})
	return nil
}

// Apply evaluates the conjunction over the catalogue, preserving order and
// leaving the input untouched. An empty filter matches everything. An empty
// result is not an error here; callers decide how to report it.
func (f *Filter) Apply(entries []Entry) []Entry {
	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

func (f *Filter) matches(e Entry) bool {
	for _, pred := range f.preds {
		if !pred(e) {
			return false
		}
	}
	return true
}

func (f *Filter) fold(s string) string {
	if f.ignoreCase {
		return strings.ToLower(s)
	}
	return s
}

func (f *Filter) compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + f.fold(pattern) + ")")
	if err != nil {
		return nil, errors.Wrapf(err, "invalid search pattern %q", pattern)
	}
	return re, nil
}
