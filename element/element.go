// Package element provides the IUPAC periodic table used to translate
// between atomic numbers and chemical symbols.
package element

import (
	"strings"

	"github.com/qbanex/basq/errors"
)

// Element is one entry of the periodic table.
type Element struct {
	Number int    `json:"number"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// iupac lists elements by atomic number. Index 0 is a dummy placeholder so
// that iupac[n] is the element with atomic number n.
var iupac = []Element{
	{0, "X", "dummy"},
	{1, "H", "hydrogen"}, {2, "He", "helium"},
	{3, "Li", "lithium"}, {4, "Be", "beryllium"},
	{5, "B", "boron"}, {6, "C", "carbon"},
	{7, "N", "nitrogen"}, {8, "O", "oxygen"},
	{9, "F", "fluorine"}, {10, "Ne", "neon"},
	{11, "Na", "sodium"}, {12, "Mg", "magnesium"},
	{13, "Al", "aluminium"}, {14, "Si", "silicon"},
	{15, "P", "phosphorus"}, {16, "S", "sulphur"},
	{17, "Cl", "chlorine"}, {18, "Ar", "argon"},
	{19, "K", "potassium"}, {20, "Ca", "calcium"},
	{21, "Sc", "scandium"}, {22, "Ti", "titanium"},
	{23, "V", "vanadium"}, {24, "Cr", "chromium"},
	{25, "Mn", "manganese"}, {26, "Fe", "iron"},
	{27, "Co", "cobalt"}, {28, "Ni", "nickel"},
	{29, "Cu", "copper"}, {30, "Zn", "zinc"},
	{31, "Ga", "gallium"}, {32, "Ge", "germanium"},
	{33, "As", "arsenic"}, {34, "Se", "selenium"},
	{35, "Br", "bromine"}, {36, "Kr", "krypton"},
	{37, "Rb", "rubidium"}, {38, "Sr", "strontium"},
	{39, "Y", "yttrium"}, {40, "Zr", "zirconium"},
	{41, "Nb", "niobium"}, {42, "Mo", "molybdenum"},
	{43, "Tc", "technetium"}, {44, "Ru", "ruthenium"},
	{45, "Rh", "rhodium"}, {46, "Pd", "palladium"},
	{47, "Ag", "silver"}, {48, "Cd", "cadmium"},
	{49, "In", "indium"}, {50, "Sn", "tin"},
	{51, "Sb", "antimony"}, {52, "Te", "tellurium"},
	{53, "I", "iodine"}, {54, "Xe", "xenon"},
	{55, "Cs", "caesium"}, {56, "Ba", "barium"},
	{57, "La", "lanthanum"}, {58, "Ce", "cerium"},
	{59, "Pr", "praseodymium"}, {60, "Nd", "neodymium"},
	{61, "Pm", "promethium"}, {62, "Sm", "samarium"},
	{63, "Eu", "europium"}, {64, "Gd", "gadolinium"},
	{65, "Tb", "terbium"}, {66, "Dy", "dysprosium"},
	{67, "Ho", "holmium"}, {68, "Er", "erbium"},
	{69, "Tm", "thulium"}, {70, "Yb", "ytterbium"},
	{71, "Lu", "lutetium"}, {72, "Hf", "hafnium"},
	{73, "Ta", "tantalum"}, {74, "W", "tungsten"},
	{75, "Re", "rhenium"}, {76, "Os", "osmium"},
	{77, "Ir", "iridium"}, {78, "Pt", "platinum"},
	{79, "Au", "gold"}, {80, "Hg", "mercury"},
	{81, "Tl", "thallium"}, {82, "Pb", "lead"},
	{83, "Bi", "bismuth"}, {84, "Po", "polonium"},
	{85, "At", "astatine"}, {86, "Rn", "radon"},
	{87, "Fr", "francium"}, {88, "Ra", "radium"},
	{89, "Ac", "actinium"}, {90, "Th", "thorium"},
	{91, "Pa", "protactinium"}, {92, "U", "uranium"},
	{93, "Np", "neptunium"}, {94, "Pu", "plutonium"},
	{95, "Am", "americium"}, {96, "Cm", "curium"},
	{97, "Bk", "berkelium"}, {98, "Cf", "californium"},
	{99, "Es", "einsteinium"}, {100, "Fm", "fermium"},
	{101, "Md", "mendelevium"}, {102, "No", "nobelium"},
	{103, "Lr", "lawrencium"}, {104, "Rf", "rutherfordium"},
	{105, "Db", "dubnium"}, {106, "Sg", "seaborgium"},
	{107, "Bh", "bohrium"}, {108, "Hs", "hassium"},
	{109, "Mt", "meitnerium"}, {110, "Ds", "darmstadtium"},
	{111, "Rg", "roentgenium"}, {112, "Cn", "copernicium"},
	{113, "Nh", "nihonium"}, {114, "Fl", "flerovium"},
	{115, "Mc", "moscovium"}, {116, "Lv", "livermorium"},
	{117, "Ts", "tennessine"}, {118, "Og", "oganesson"},
}

var bySymbol = func() map[string]Element {
	m := make(map[string]Element, len(iupac))
	for _, e := range iupac[1:] {
		m[strings.ToLower(e.Symbol)] = e
	}
	return m
}()

// Count returns the number of known elements (the dummy excluded).
func Count() int {
	return len(iupac) - 1
}

// ByNumber looks up an element by atomic number.
func ByNumber(n int) (Element, bool) {
	if n < 1 || n >= len(iupac) {
		return Element{}, false
	}
	return iupac[n], true
}

// BySymbol looks up an element by chemical symbol, case-insensitively.
func BySymbol(symbol string) (Element, bool) {
	e, ok := bySymbol[strings.ToLower(strings.TrimSpace(symbol))]
	return e, ok
}

// CanonicalSymbol normalises a symbol to its IUPAC casing ("si" -> "Si").
func CanonicalSymbol(symbol string) (string, error) {
	e, ok := BySymbol(symbol)
	if !ok {
		return "", errors.Newf("unknown element symbol %q", symbol)
	}
	return e.Symbol, nil
}

// NormalizeSymbols canonicalises a list of symbols, rejecting unknown ones.
// Used for user-supplied element filters.
func NormalizeSymbols(symbols []string) ([]string, error) {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		canon, err := CanonicalSymbol(s)
		if err != nil {
			return nil, err
		}
		out = append(out, canon)
	}
	return out, nil
}

// List returns the full periodic table in atomic-number order.
func List() []Element {
	out := make([]Element, Count())
	copy(out, iupac[1:])
	return out
}
