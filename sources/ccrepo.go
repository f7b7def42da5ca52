package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/catalog"
	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/internal/httpclient"
	"github.com/qbanex/basq/logger"
)

// OriginCcrepo names the ccRepo origin in catalogue entries.
const OriginCcrepo = "ccrepo"

// Ccrepo scrapes Grant Hill's correlation consistent basis set repository.
// The site has no API: the listing walks the periodic table page and one
// index page per element, fetching posts a form per element and merges the
// returned Gaussian94 chunks into a single document.
type Ccrepo struct {
	baseURL string
	client  *httpclient.Client
}

// NewCcrepo returns a source for the ccRepo site at baseURL.
func NewCcrepo(baseURL string, client *httpclient.Client) *Ccrepo {
	return &Ccrepo{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *Ccrepo) Origin() string { return OriginCcrepo }

// ccrepoElement is one cell of the periodic table page. Page is the
// directory the element's pages live under, e.g. "hydrogen".
type ccrepoElement struct {
	Symbol string
	Page   string
	Number int
}

// option is one entry of a dropdown on an element page, display text plus
// the value the form wants back.
type option struct {
	text  string
	value string
}

// List walks the periodic table and every element page. The site serves
// one page per element, so a full listing costs a request per element; the
// catalogue cache exists to make that bearable. Entries keep the order in
// which their name first appears.
func (s *Ccrepo) List(ctx context.Context) ([]catalog.Entry, error) {
	elems, err := s.elements(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int)
	var entries []catalog.Entry
	for _, el := range elems {
		opts, err := s.selectOptions(ctx, el.Page, "basis")
		if err != nil {
			return nil, errors.Wrapf(err, "element %s", el.Symbol)
		}
		if opts == nil {
			logger.Debugw("skipping unpublished ccrepo element", "element", el.Symbol)
			continue
		}
		for _, opt := range opts {
			i, ok := byName[opt.text]
			if !ok {
				i = len(entries)
				byName[opt.text] = i
				entries = append(entries, catalog.Entry{Name: opt.text, Ref: opt.value})
			}
			entries[i].Elements = append(entries[i].Elements, el.Symbol)
		}
	}
	return entries, nil
}

// Fetch re-reads the periodic table to locate the element pages, asks the
// first wanted element which form value selects Gaussian output and posts
// the basis form once per element.
func (s *Ccrepo) Fetch(ctx context.Context, entry catalog.Entry) (*basis.Set, error) {
	if len(entry.Elements) == 0 {
		return nil, errors.NewEntryNotFoundf("entry %q lists no elements", entry.Name)
	}

	elems, err := s.elements(ctx)
	if err != nil {
		return nil, errors.WrapSourceUnavailable(err, "reading the ccrepo element table")
	}
	pages := make(map[string]ccrepoElement, len(elems))
	for _, el := range elems {
		pages[strings.ToLower(el.Symbol)] = el
	}

	wanted := make([]ccrepoElement, 0, len(entry.Elements))
	for _, sym := range entry.Elements {
		el, ok := pages[strings.ToLower(sym)]
		if !ok {
			return nil, errors.NewEntryNotFoundf("ccrepo has no element page for %q", sym)
		}
		wanted = append(wanted, el)
	}

	program, err := s.gaussianProgram(ctx, wanted[0])
	if err != nil {
		return nil, err
	}

	chunks := make([]string, 0, len(wanted))
	var empty []string
	for _, el := range wanted {
		text, err := s.basisChunk(ctx, el, entry.Ref, program)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			// upstream defect: the site sometimes serves blank definitions
			empty = append(empty, el.Symbol)
			continue
		}
		chunks = append(chunks, text)
	}
	if len(empty) > 0 {
		logger.Warnw("ccrepo served empty basis definitions",
			"set", entry.Name, "elements", strings.Join(empty, ", "))
	}
	if len(chunks) == 0 {
		return nil, errors.NewEntryNotFoundf("ccrepo returned no data for %q", entry.Name)
	}

	text, err := mergeChunks(chunks)
	if err != nil {
		return nil, errors.Wrapf(err, "merging %s", entry.Name)
	}
	atoms, err := basis.ParseGaussian94(text)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s from %s", entry.Name, OriginCcrepo)
	}
	return &basis.Set{Name: entry.Name, Description: entry.Description, Atoms: atoms}, nil
}

// elements scrapes the periodic table off the index page. Cells are
// coloured by orbital block (classes xs, xp, xd, xf, xg); spacer cells
// carry the colour but no element and are skipped.
func (s *Ccrepo) elements(ctx context.Context) ([]ccrepoElement, error) {
	root, err := s.page(ctx, s.baseURL)
	if err != nil {
		return nil, err
	}
	table := findByID(root, "pertable")
	if table == nil {
		return nil, errors.New("no periodic table on the ccrepo index page")
	}

	var elems []ccrepoElement
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && hasBlockClass(node) {
			if el, ok := parseTableCell(node); ok {
				elems = append(elems, el)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)

	if len(elems) == 0 {
		return nil, errors.New("ccrepo periodic table listed no elements")
	}
	return elems, nil
}

func hasBlockClass(n *html.Node) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		switch c {
		case "xs", "xp", "xd", "xf", "xg":
			return true
		}
	}
	return false
}

func parseTableCell(cell *html.Node) (ccrepoElement, bool) {
	numNode := findByClass(cell, "at_num")
	symNode := findByClass(cell, "symbol")
	if numNode == nil || symNode == nil {
		return ccrepoElement{}, false
	}
	number, err := strconv.Atoi(strings.TrimSpace(textOf(numNode)))
	if err != nil {
		return ccrepoElement{}, false
	}
	link := findFirst(symNode, "a")
	if link == nil {
		return ccrepoElement{}, false
	}
	page := strings.TrimSuffix(attrVal(link, "href"), "index.html")
	page = strings.Trim(page, "/")
	sym := strings.TrimSpace(textOf(link))
	if page == "" || sym == "" {
		return ccrepoElement{}, false
	}
	return ccrepoElement{Symbol: sym, Page: page, Number: number}, true
}

// selectOptions reads the named dropdown off an element page. Elements the
// site has not published yet ("not quite ready to go yet") yield nil.
func (s *Ccrepo) selectOptions(ctx context.Context, page, id string) ([]option, error) {
	root, err := s.page(ctx, s.baseURL+"/"+page+"/index.html")
	if err != nil {
		return nil, err
	}
	sel := findByID(root, id)
	if sel == nil {
		text := textOf(root)
		if strings.Contains(text, "not quite ready to go yet") ||
			strings.Contains(text, "no correlation consistent basis sets") {
			return nil, nil
		}
		return nil, errors.Newf("no %q dropdown on the %s page", id, page)
	}

	var opts []option
	for _, node := range findAll(sel, "option") {
		opts = append(opts, option{
			text:  strings.TrimSpace(textOf(node)),
			value: attrVal(node, "value"),
		})
	}
	return opts, nil
}

// gaussianProgram resolves the form value that selects Gaussian output.
func (s *Ccrepo) gaussianProgram(ctx context.Context, el ccrepoElement) (string, error) {
	opts, err := s.selectOptions(ctx, el.Page, "program")
	if err != nil {
		return "", errors.WrapSourceUnavailable(err, fmt.Sprintf("reading the %s format list", el.Symbol))
	}
	for _, opt := range opts {
		if opt.text == "Gaussian" {
			return opt.value, nil
		}
	}
	return "", errors.Newf("ccrepo offers no Gaussian output for %s", el.Symbol)
}

// basisChunk posts the basis form for one element and extracts the text of
// the nobr block the site wraps its output in. A response without that
// block is an empty definition.
func (s *Ccrepo) basisChunk(ctx context.Context, el ccrepoElement, ref, program string) (string, error) {
	form := url.Values{"basis": {ref}, "program": {program}}
	target := fmt.Sprintf("%s/%s/%sbasis.php", s.baseURL, el.Page, strings.ToLower(el.Symbol))

	resp, err := s.client.PostForm(ctx, target, form)
	if err != nil {
		return "", errors.WrapSourceUnavailable(err, fmt.Sprintf("downloading %s from ccrepo", el.Symbol))
	}
	body, err := httpclient.Body(resp)
	if err != nil {
		return "", errors.WrapSourceUnavailable(err, fmt.Sprintf("downloading %s from ccrepo", el.Symbol))
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.NewSourceUnavailablef("POST %s returned %s", target, resp.Status)
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrapf(err, "parsing the %s response", el.Symbol)
	}
	container := findByClass(root, "container")
	if container == nil {
		return "", errors.Newf("no container block in the %s response", el.Symbol)
	}
	block := findFirst(container, "nobr")
	if block == nil {
		return "", nil
	}
	return textWithBreaks(block), nil
}

// mergeChunks turns per element Gaussian94 chunks into one document. Each
// chunk opens with comment lines and a BASIS= marker; everything up to and
// including the marker is site furniture, the rest is the element block
// terminated by "****". A single leading "****" re-opens the block list.
func mergeChunks(chunks []string) (string, error) {
	var body []string
	for i, chunk := range chunks {
		lines := strings.Split(chunk, "\n")
		marker := -1
		for j, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "BASIS=") {
				marker = j
				break
			}
		}
		if marker < 0 {
			return "", errors.Newf("chunk %d carries no BASIS= line", i)
		}
		body = append(body, lines[marker+1:]...)
	}
	return "****\n" + strings.Join(body, "\n"), nil
}

// page fetches and parses one HTML page.
func (s *Ccrepo) page(ctx context.Context, rawURL string) (*html.Node, error) {
	resp, err := s.client.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	body, err := httpclient.Body(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("GET %s returned %s", rawURL, resp.Status)
	}
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", rawURL)
	}
	return root, nil
}
