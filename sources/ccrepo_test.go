package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/qbanex/basq/catalog"
	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/internal/httpclient"
)

const ccrepoPertable = `<html><body>
<table id="pertable"><tr>
<td class="xs"><div class="at_num">1</div><div class="symbol"><a href="hydrogen/index.html">H</a></div></td>
<td class="xp"><div class="at_num">6</div><div class="symbol"><a href="carbon/index.html">C</a></div></td>
<td class="xd"><div class="at_num">21</div><div class="symbol"><a href="scandium/index.html">Sc</a></div></td>
<td class="xs"></td>
</tr></table>
</body></html>`

func ccrepoElementPage(basisOptions string) string {
	return `<html><body><div class="container">
<select id="basis">` + basisOptions + `</select>
<select id="program"><option value="gto-gaussian">Gaussian</option><option value="gamess">GAMESS-US</option></select>
</div></body></html>`
}

const ccrepoNotReady = `<html><body>The scandium basis sets are not quite ready to go yet!</body></html>`

const ccrepoHChunk = `<html><body><div class="container"><nobr>! hydrogen cc-pVDZ<br/>BASIS=cc-pvdz<br/>H&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;0<br/>S   2   1.00<br/>     13.0100000      0.0196850000<br/>      1.9620000      0.1379770000<br/>****<br/></nobr></div></body></html>`

const ccrepoCChunk = `<html><body><div class="container"><nobr>! carbon cc-pVDZ<br/>BASIS=cc-pvdz<br/>C&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;0<br/>S   1   1.00<br/>   6665.0000000      0.0006920000<br/>****<br/></nobr></div></body></html>`

// newCcrepoSite serves a small fake ccRepo with three elements, one of
// them unpublished. Overrides replace whole pages by path.
func newCcrepoSite(t *testing.T, overrides map[string]string) (*Ccrepo, *[]url.Values) {
	t.Helper()

	pages := map[string]string{
		"/": ccrepoPertable,
		"/hydrogen/index.html": ccrepoElementPage(
			`<option value="cc-pvdz">cc-pVDZ</option><option value="aug-cc-pvdz">aug-cc-pVDZ</option>`),
		"/carbon/index.html":   ccrepoElementPage(`<option value="cc-pvdz">cc-pVDZ</option>`),
		"/scandium/index.html": ccrepoNotReady,
		"/hydrogen/hbasis.php": ccrepoHChunk,
		"/carbon/cbasis.php":   ccrepoCChunk,
	}
	for path, body := range overrides {
		pages[path] = body
	}

	var forms []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, "basis.php") {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			forms = append(forms, r.PostForm)
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewCcrepo(srv.URL, httpclient.WrapClient(srv.Client())), &forms
}

func TestCcrepoList(t *testing.T) {
	src, _ := newCcrepoSite(t, nil)

	entries, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2, "the unpublished element contributes nothing")

	assert.Equal(t, "cc-pVDZ", entries[0].Name)
	assert.Equal(t, "cc-pvdz", entries[0].Ref)
	assert.Equal(t, []string{"H", "C"}, entries[0].Elements)
	assert.Empty(t, entries[0].Description)

	assert.Equal(t, "aug-cc-pVDZ", entries[1].Name)
	assert.Equal(t, []string{"H"}, entries[1].Elements)
}

func TestCcrepoListNoTable(t *testing.T) {
	src, _ := newCcrepoSite(t, map[string]string{
		"/": "<html><body>down for maintenance</body></html>",
	})

	_, err := src.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "periodic table")
}

func TestCcrepoListBrokenElementPage(t *testing.T) {
	src, _ := newCcrepoSite(t, map[string]string{
		"/carbon/index.html": "<html><body>server hiccup</body></html>",
	})

	_, err := src.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carbon")
}

func TestCcrepoFetch(t *testing.T) {
	src, forms := newCcrepoSite(t, nil)

	entry := catalog.Entry{
		Name:     "cc-pVDZ",
		Elements: []string{"H", "C"},
		Origin:   OriginCcrepo,
		Ref:      "cc-pvdz",
	}
	set, err := src.Fetch(context.Background(), entry)
	require.NoError(t, err)

	assert.Equal(t, "cc-pVDZ", set.Name)
	require.Len(t, set.Atoms, 2)
	assert.Equal(t, "H", set.Atoms[0].Element)
	assert.Equal(t, "C", set.Atoms[1].Element)
	require.Len(t, set.Atoms[0].Functions, 1)
	assert.Equal(t, []float64{13.01, 1.962}, set.Atoms[0].Functions[0].Exponents)

	require.Len(t, *forms, 2)
	for _, form := range *forms {
		assert.Equal(t, "cc-pvdz", form.Get("basis"))
		assert.Equal(t, "gto-gaussian", form.Get("program"), "the form takes the option value, not its label")
	}
}

func TestCcrepoFetchSkipsEmptyChunk(t *testing.T) {
	src, _ := newCcrepoSite(t, map[string]string{
		"/carbon/cbasis.php": `<html><body><div class="container"></div></body></html>`,
	})

	entry := catalog.Entry{Name: "cc-pVDZ", Elements: []string{"H", "C"}, Ref: "cc-pvdz"}
	set, err := src.Fetch(context.Background(), entry)
	require.NoError(t, err)

	require.Len(t, set.Atoms, 1)
	assert.Equal(t, "H", set.Atoms[0].Element)
}

func TestCcrepoFetchUnknownElement(t *testing.T) {
	src, _ := newCcrepoSite(t, nil)

	entry := catalog.Entry{Name: "cc-pVDZ", Elements: []string{"Ne"}, Ref: "cc-pvdz"}
	_, err := src.Fetch(context.Background(), entry)
	require.Error(t, err)
	assert.True(t, errors.IsEntryNotFound(err))
}

func TestCcrepoFetchMissingMarker(t *testing.T) {
	src, _ := newCcrepoSite(t, map[string]string{
		"/hydrogen/hbasis.php": `<html><body><div class="container"><nobr>H 0<br/>S 1 1.00<br/>****<br/></nobr></div></body></html>`,
	})

	entry := catalog.Entry{Name: "cc-pVDZ", Elements: []string{"H"}, Ref: "cc-pvdz"}
	_, err := src.Fetch(context.Background(), entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BASIS=")
}

func TestMergeChunks(t *testing.T) {
	merged, err := mergeChunks([]string{
		"! one\nBASIS=x\nH 0\n****",
		"! two\nBASIS=x\nC 0\n****",
	})
	require.NoError(t, err)
	assert.Equal(t, "****\nH 0\n****\nC 0\n****", merged)
}

func TestTextWithBreaks(t *testing.T) {
	root, err := html.Parse(strings.NewReader(`<html><body><nobr>a<br/>b&nbsp;c<br/></nobr></body></html>`))
	require.NoError(t, err)
	block := findFirst(root, "nobr")
	require.NotNil(t, block)
	assert.Equal(t, "a\nb c", textWithBreaks(block))
}
