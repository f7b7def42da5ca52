// Package display renders catalogue listings and JSON output for the CLI.
package display

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/qbanex/basq/catalog"
)

// Colours tag each catalogue origin in the listing.
var originColour = map[string]func(...interface{}) string{
	"bse":    pterm.Yellow,
	"ccrepo": pterm.Cyan,
	"local":  pterm.Green,
}

// ListOptions controls the catalogue listing.
type ListOptions struct {
	// ShowElements adds the element column.
	ShowElements bool
	// Highlight emphasises these element symbols in the element column.
	Highlight []string
	// Width overrides the terminal width, mainly for tests.
	Width int
}

// Listing renders entries as aligned columns: origin-coloured name, cropped
// description and optionally the element list. Names are never cropped; when
// the terminal is too narrow the description gives way first, then the
// element column.
func Listing(entries []catalog.Entry, opts ListOptions) string {
	if len(entries) == 0 {
		return ""
	}

	width := opts.Width
	if width <= 0 {
		width = pterm.GetTerminalWidth()
	}
	if width < 120 {
		width = 120
	}

	highlight := make(map[string]bool, len(opts.Highlight))
	for _, sym := range opts.Highlight {
		highlight[sym] = true
	}

	maxName, maxDescr, maxElem := 1, 1, 0
	elemCols := make([]string, len(entries))
	for i, e := range entries {
		if n := len([]rune(e.Name)); n > maxName {
			maxName = n
		}
		if n := len([]rune(e.Description)); n > maxDescr {
			maxDescr = n
		}
		if opts.ShowElements {
			elemCols[i] = elementColumn(e, highlight)
			if n := printLen(elemCols[i]); n > maxElem {
				maxElem = n
			}
		}
	}

	const extra = 4 // column separators
	if maxName+maxDescr+maxElem+extra > width {
		rem := width - maxName - extra
		if opts.ShowElements {
			maxDescr = min(maxDescr, max(50, 2*rem/3, rem-maxElem-1))
			maxElem = max(50, rem-maxDescr)
		} else {
			maxDescr = rem
			maxElem = 0
		}
	}

	var sb strings.Builder
	for i, e := range entries {
		descr := e.Description
		if maxDescr > 3 && len([]rune(descr)) > maxDescr {
			descr = string([]rune(descr)[:maxDescr-3]) + "..."
		}

		sb.WriteString(padRight(colourName(e), maxName))
		sb.WriteString("  ")
		if !opts.ShowElements {
			sb.WriteString(descr)
			sb.WriteByte('\n')
			continue
		}

		elems := elemCols[i]
		if printLen(elems) > maxElem {
			cropped := cropToPrintLen(elems, maxElem-2)
			// drop the half-printed symbol after the last comma
			if cut := strings.LastIndex(cropped, ","); cut >= 0 {
				cropped = cropped[:cut]
			}
			elems = cropped + "..."
		}
		sb.WriteString(padRight(descr, maxDescr))
		sb.WriteString("  ")
		sb.WriteString(elems)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary is the count line under a listing.
func Summary(n int) string {
	if n == 1 {
		return pterm.Gray("1 basis set")
	}
	return pterm.Gray(fmt.Sprintf("%d basis sets", n))
}

// PrintListing writes the listing and a summary line to the terminal.
func PrintListing(entries []catalog.Entry, opts ListOptions) {
	if s := Listing(entries, opts); s != "" {
		pterm.Print(s)
	}
	pterm.Println(Summary(len(entries)))
}

func colourName(e catalog.Entry) string {
	if colour, ok := originColour[e.Origin]; ok {
		return colour(e.Name)
	}
	return e.Name
}

func elementColumn(e catalog.Entry, highlight map[string]bool) string {
	parts := make([]string, len(e.Elements))
	for i, sym := range e.Elements {
		if highlight[sym] {
			parts[i] = pterm.Yellow(sym)
		} else {
			parts[i] = sym
		}
	}
	return strings.Join(parts, ",")
}

// printLen is the printed length of s, colour escapes excluded.
func printLen(s string) int {
	return len([]rune(pterm.RemoveColorFromString(s)))
}

func padRight(s string, width int) string {
	if n := printLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// cropToPrintLen shortens s until its printed length is at most l, keeping
// colour escapes intact.
func cropToPrintLen(s string, l int) string {
	if printLen(s) <= l {
		return s
	}
	i := l
	for i < len(s) && printLen(s[:i]) < l {
		i++
	}
	return s[:i]
}
