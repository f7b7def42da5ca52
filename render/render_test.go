package render

import (
	"testing"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pc2Carbon is the carbon section of the pc-2 basis set, the workhorse
// fixture for renderer output checks.
func pc2Carbon() *basis.Set {
	single := func(l basis.AngularMomentum, exps, coeffs []float64) basis.ContractedFunction {
		rows := make([][]float64, len(coeffs))
		for i, c := range coeffs {
			rows[i] = []float64{c}
		}
		return basis.ContractedFunction{L: l, Exponents: exps, Coefficients: rows}
	}

	return &basis.Set{
		Name:        "pc-2",
		Description: "Jensen pc-2 polarization consistent basis",
		Atoms: []basis.AtomBasis{{
			Element: "C",
			Functions: []basis.ContractedFunction{
				single(basis.S,
					[]float64{7857.1, 1178.7, 268.32, 75.948, 24.559, 8.6212, 3.1278},
					[]float64{0.00056825, 0.0043915, 0.022504, 0.086653, 0.24405, 0.44148, 0.35332}),
				single(basis.S,
					[]float64{1178.7, 268.32, 75.948, 24.559, 8.6212, 3.1278, 0.82202},
					[]float64{-5.9492e-07, -6.2748e-05, -0.00075773, -0.0073308, -0.038932, -0.088908, 0.21689}),
				single(basis.S, []float64{0.33017}, []float64{1.0}),
				single(basis.S, []float64{0.11463}, []float64{1.0}),
				single(basis.P,
					[]float64{33.775, 7.6766, 2.2357, 0.76447},
					[]float64{0.0060294, 0.043228, 0.16301, 0.36504}),
				single(basis.P, []float64{0.26232}, []float64{1.0}),
				single(basis.P, []float64{0.084638}, []float64{1.0}),
				single(basis.D, []float64{1.4}, []float64{1.0}),
				single(basis.D, []float64{0.45}, []float64{1.0}),
				single(basis.F, []float64{0.95}, []float64{1.0}),
			},
		}},
	}
}

// tinyHydrogen keeps format layout checks hand-verifiable.
func tinyHydrogen() *basis.Set {
	return &basis.Set{
		Name:        "def2-SVP",
		Description: "Test fixture",
		Atoms: []basis.AtomBasis{{
			Element: "H",
			Functions: []basis.ContractedFunction{{
				L:            basis.S,
				Exponents:    []float64{13.01, 1.962},
				Coefficients: [][]float64{{0.019685}, {0.137977}},
			}},
		}},
	}
}

// generalContraction exercises the multi-column coefficient path.
func generalContraction() *basis.Set {
	return &basis.Set{
		Name: "gc-test",
		Atoms: []basis.AtomBasis{{
			Element: "O",
			Functions: []basis.ContractedFunction{{
				L:            basis.P,
				Exponents:    []float64{10.0, 2.0},
				Coefficients: [][]float64{{0.1, 0.3}, {0.9, 0.7}},
			}},
		}},
	}
}

func TestLookup(t *testing.T) {
	for _, tag := range []FormatTag{Gaussian94, NWChem, Orca, QChem, Turbomole, CFour} {
		r, err := Lookup(tag)
		require.NoError(t, err, "tag %s", tag)
		assert.Equal(t, tag, r.Tag())
		assert.NotEmpty(t, r.Extension())
	}
}

func TestLookupUnsupported(t *testing.T) {
	_, err := Lookup("psi4")
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedFormat(err))
}

func TestParseTag(t *testing.T) {
	tag, err := ParseTag(" Orca ")
	require.NoError(t, err)
	assert.Equal(t, Orca, tag)

	_, err = ParseTag("molpro")
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedFormat(err))
}

func TestParseTagsFailsFast(t *testing.T) {
	tags, err := ParseTags([]string{"gaussian94", "cfour"})
	require.NoError(t, err)
	assert.Equal(t, []FormatTag{Gaussian94, CFour}, tags)

	_, err = ParseTags([]string{"gaussian94", "dirac", "cfour"})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedFormat(err))
}

func TestTagsSorted(t *testing.T) {
	assert.Equal(t, []FormatTag{CFour, Gaussian94, NWChem, Orca, QChem, Turbomole}, Tags())
}

func TestExtensions(t *testing.T) {
	tests := []struct {
		tag FormatTag
		ext string
	}{
		{CFour, "GENBAS"},
		{Gaussian94, "g94"},
		{NWChem, "nw"},
		{Orca, "orca"},
		{QChem, "bas"},
		{Turbomole, "turbomole"},
	}
	for _, tt := range tests {
		ext, err := Extension(tt.tag)
		require.NoError(t, err)
		assert.Equal(t, tt.ext, ext)
	}

	_, err := Extension("dalton")
	assert.Error(t, err)
}

func TestRenderDeterministic(t *testing.T) {
	set := pc2Carbon()
	for _, tag := range Tags() {
		t.Run(string(tag), func(t *testing.T) {
			r, err := Lookup(tag)
			require.NoError(t, err)

			first, err := r.Render(set)
			require.NoError(t, err)
			second, err := r.Render(set)
			require.NoError(t, err)
			assert.Equal(t, first, second, "repeated rendering must be byte-identical")
			assert.NotEmpty(t, first)
		})
	}
}

func TestGaussian94RoundTrip(t *testing.T) {
	set := pc2Carbon()
	r, err := Lookup(Gaussian94)
	require.NoError(t, err)

	out, err := r.Render(set)
	require.NoError(t, err)

	parsed, err := basis.ParseGaussian94(out)
	require.NoError(t, err)
	assert.Equal(t, set.Atoms, parsed)
}

func TestGaussian94SplitsGeneralContractions(t *testing.T) {
	set := generalContraction()
	r, err := Lookup(Gaussian94)
	require.NoError(t, err)

	out, err := r.Render(set)
	require.NoError(t, err)

	parsed, err := basis.ParseGaussian94(out)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.Len(t, parsed[0].Functions, 2, "one block per contraction column")

	first, second := parsed[0].Functions[0], parsed[0].Functions[1]
	assert.Equal(t, basis.P, first.L)
	assert.Equal(t, basis.P, second.L)
	assert.Equal(t, []float64{10.0, 2.0}, first.Exponents)
	assert.Equal(t, [][]float64{{0.1}, {0.9}}, first.Coefficients)
	assert.Equal(t, [][]float64{{0.3}, {0.7}}, second.Coefficients)
}

func TestRenderRejectsMalformedFunctions(t *testing.T) {
	set := &basis.Set{
		Name: "broken",
		Atoms: []basis.AtomBasis{{
			Element: "H",
			Functions: []basis.ContractedFunction{{
				L:            basis.S,
				Exponents:    []float64{1.0, 2.0},
				Coefficients: [][]float64{{1.0}},
			}},
		}},
	}

	for _, tag := range Tags() {
		r, err := Lookup(tag)
		require.NoError(t, err)
		_, err = r.Render(set)
		assert.Error(t, err, "format %s must reject shape mismatch", tag)
	}
}
