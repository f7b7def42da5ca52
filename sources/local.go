package sources

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/catalog"
	"github.com/qbanex/basq/errors"
)

// OriginLocal names the local directory origin in catalogue entries.
const OriginLocal = "local"

// Local serves basis sets from a directory on disk. The directory holds a
// catalog.yaml index naming each set and one {ref}.g94 file per set; the
// element list is derived by parsing the files at listing time.
type Local struct {
	dir string
}

// NewLocal returns a source for the basis set directory at dir.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (s *Local) Origin() string { return OriginLocal }

type localIndex []struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Ref         string `yaml:"ref"`
}

// List reads the index and parses every referenced file. A file that is
// missing or malformed fails the whole listing, matching the all or
// nothing contract of the catalogue rebuild.
func (s *Local) List(ctx context.Context) ([]catalog.Entry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, "catalog.yaml"))
	if err != nil {
		return nil, err
	}
	var index localIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, errors.Wrap(err, "decoding catalog.yaml")
	}

	entries := make([]catalog.Entry, 0, len(index))
	for _, item := range index {
		atoms, err := s.read(item.Ref)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %q", item.Name)
		}
		symbols := make([]string, 0, len(atoms))
		for _, atom := range atoms {
			symbols = append(symbols, atom.Element)
		}
		entries = append(entries, catalog.Entry{
			Name:        item.Name,
			Description: item.Description,
			Elements:    symbols,
			Ref:         item.Ref,
		})
	}
	return entries, nil
}

// Fetch re-reads the set from disk. An entry whose file has gone away
// since the catalogue was built is reported as unknown.
func (s *Local) Fetch(ctx context.Context, entry catalog.Entry) (*basis.Set, error) {
	atoms, err := s.read(entry.Ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewEntryNotFoundf("no file for %q in %s", entry.Ref, s.dir)
		}
		return nil, err
	}
	return &basis.Set{Name: entry.Name, Description: entry.Description, Atoms: atoms}, nil
}

func (s *Local) read(ref string) ([]basis.AtomBasis, error) {
	// refs name files directly inside the basis directory, nothing else
	if ref == "" || ref != filepath.Base(ref) {
		return nil, errors.Newf("ref %q does not name a file in the basis directory", ref)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, ref+".g94"))
	if err != nil {
		return nil, err
	}
	atoms, err := basis.ParseGaussian94(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s.g94", ref)
	}
	return atoms, nil
}
