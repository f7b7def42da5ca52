package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/catalog"
	"github.com/qbanex/basq/element"
	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/internal/httpclient"
)

// OriginBSE names the Basis Set Exchange origin in catalogue entries.
const OriginBSE = "bse"

// BSE talks to the Basis Set Exchange JSON API. The listing comes from the
// metadata endpoint; sets are downloaded in Gaussian94 format and parsed.
type BSE struct {
	baseURL string
	client  *httpclient.Client
}

// NewBSE returns a source for the Basis Set Exchange API at baseURL.
func NewBSE(baseURL string, client *httpclient.Client) *BSE {
	return &BSE{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *BSE) Origin() string { return OriginBSE }

// bseMetadata is the slice of the metadata document we consume. Version
// keys are numeric strings, elements are atomic numbers as strings.
type bseMetadata struct {
	DisplayName string                `json:"display_name"`
	Description string                `json:"description"`
	Versions    map[string]bseVersion `json:"versions"`
}

type bseVersion struct {
	Elements []string `json:"elements"`
}

// List downloads the metadata document and flattens it into catalogue
// entries. The element list of the newest published version wins, and
// entries come out ordered by API key so repeated listings are identical.
func (s *BSE) List(ctx context.Context) ([]catalog.Entry, error) {
	resp, err := s.client.Get(ctx, s.baseURL+"/api/metadata")
	if err != nil {
		return nil, err
	}
	body, err := httpclient.Body(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("metadata endpoint returned %s", resp.Status)
	}

	var meta map[string]bseMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, errors.Wrap(err, "decoding metadata document")
	}

	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]catalog.Entry, 0, len(meta))
	for _, key := range keys {
		m := meta[key]
		ver, ok := newestVersion(m.Versions)
		if !ok {
			// nothing published for this set yet
			continue
		}
		symbols, err := atomicNumberSymbols(m.Versions[ver].Elements)
		if err != nil {
			return nil, errors.Wrapf(err, "metadata for %q", key)
		}
		name := m.DisplayName
		if name == "" {
			name = key
		}
		entries = append(entries, catalog.Entry{
			Name:        name,
			Description: m.Description,
			Elements:    symbols,
			Ref:         key,
		})
	}
	return entries, nil
}

// Fetch downloads the set in Gaussian94 format, restricted to the elements
// the entry records.
func (s *BSE) Fetch(ctx context.Context, entry catalog.Entry) (*basis.Set, error) {
	target := fmt.Sprintf("%s/api/basis/%s/format/gaussian94", s.baseURL, url.PathEscape(entry.Ref))
	if len(entry.Elements) > 0 {
		nums, err := atomicNumbers(entry.Elements)
		if err != nil {
			return nil, err
		}
		target += "?elements=" + strings.Join(nums, ",")
	}

	resp, err := s.client.Get(ctx, target)
	if err != nil {
		return nil, errors.WrapSourceUnavailable(err, fmt.Sprintf("downloading %s from %s", entry.Name, OriginBSE))
	}
	body, err := httpclient.Body(resp)
	if err != nil {
		return nil, errors.WrapSourceUnavailable(err, fmt.Sprintf("downloading %s from %s", entry.Name, OriginBSE))
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NewEntryNotFoundf("basis set %q is not known to %s", entry.Ref, OriginBSE)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.NewSourceUnavailablef("%s returned %s for %s", OriginBSE, resp.Status, entry.Name)
	}

	atoms, err := basis.ParseGaussian94(string(body))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s from %s", entry.Name, OriginBSE)
	}
	return &basis.Set{Name: entry.Name, Description: entry.Description, Atoms: atoms}, nil
}

// newestVersion picks the highest numeric version key.
func newestVersion(versions map[string]bseVersion) (string, bool) {
	best, bestNum := "", -1
	for key := range versions {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if n > bestNum {
			best, bestNum = key, n
		}
	}
	return best, bestNum >= 0
}

// atomicNumberSymbols maps atomic number strings to chemical symbols.
// Numbers beyond the table we carry are left out.
func atomicNumberSymbols(raw []string) ([]string, error) {
	symbols := make([]string, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, errors.Wrapf(err, "atomic number %q", s)
		}
		e, ok := element.ByNumber(n)
		if !ok {
			continue
		}
		symbols = append(symbols, e.Symbol)
	}
	return symbols, nil
}

// atomicNumbers maps chemical symbols to atomic number strings for the
// elements query parameter.
func atomicNumbers(symbols []string) ([]string, error) {
	nums := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		e, ok := element.BySymbol(sym)
		if !ok {
			return nil, errors.Newf("unknown element symbol %q", sym)
		}
		nums = append(nums, strconv.Itoa(e.Number))
	}
	return nums, nil
}
