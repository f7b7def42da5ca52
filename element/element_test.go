package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByNumber(t *testing.T) {
	tests := []struct {
		number int
		symbol string
		name   string
	}{
		{1, "H", "hydrogen"},
		{6, "C", "carbon"},
		{14, "Si", "silicon"},
		{79, "Au", "gold"},
		{118, "Og", "oganesson"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			e, ok := ByNumber(tt.number)
			require.True(t, ok)
			assert.Equal(t, tt.symbol, e.Symbol)
			assert.Equal(t, tt.name, e.Name)
		})
	}
}

func TestByNumberOutOfRange(t *testing.T) {
	_, ok := ByNumber(0)
	assert.False(t, ok, "dummy placeholder must not resolve")

	_, ok = ByNumber(-3)
	assert.False(t, ok)

	_, ok = ByNumber(119)
	assert.False(t, ok)
}

func TestBySymbolCaseInsensitive(t *testing.T) {
	for _, s := range []string{"Si", "si", "SI", " si "} {
		e, ok := BySymbol(s)
		require.True(t, ok, "symbol %q", s)
		assert.Equal(t, 14, e.Number)
	}

	_, ok := BySymbol("Xx")
	assert.False(t, ok)
}

func TestCanonicalSymbol(t *testing.T) {
	canon, err := CanonicalSymbol("he")
	require.NoError(t, err)
	assert.Equal(t, "He", canon)

	_, err = CanonicalSymbol("Zz")
	assert.Error(t, err)
}

func TestNormalizeSymbols(t *testing.T) {
	got, err := NormalizeSymbols([]string{"h", "O", "si"})
	require.NoError(t, err)
	assert.Equal(t, []string{"H", "O", "Si"}, got)

	_, err = NormalizeSymbols([]string{"H", "nope"})
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 118, Count())
	assert.Len(t, List(), 118)
}
