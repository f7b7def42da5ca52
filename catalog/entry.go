// Package catalog maintains the locally cached index of known basis sets:
// the snapshot file, the multi-source aggregation that rebuilds it, and the
// search filters evaluated against it. Only lightweight metadata lives here;
// the numerical basis-set payloads are fetched on demand and never cached.
package catalog

// Entry is one catalogue record: a basis set as advertised by one origin.
// Identity is (Origin, Ref). Display names may repeat across origins and are
// kept as distinct entries.
type Entry struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Elements    []string `yaml:"elements,omitempty" json:"elements,omitempty"`
	Origin      string   `yaml:"origin" json:"origin"`
	Ref         string   `yaml:"ref" json:"ref"`
}

// HasElements reports whether the entry covers every required symbol. An
// empty requirement constrains nothing.
func (e Entry) HasElements(required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range e.Elements {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
