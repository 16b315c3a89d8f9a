// Package normalize folds visually equivalent runes to a canonical form
// before typed input is compared against a passage.
package normalize

import "golang.org/x/text/width"

var table = map[rune]rune{
	'\u00a0': ' ', // no-break space
	'\u2007': ' ', // figure space
	'\u202f': ' ', // narrow no-break space
	'‘': '\'',
	'’': '\'',
	'‚': '\'',
	'‛': '\'',
	'′': '\'', // prime
	'ʼ': '\'', // modifier apostrophe
	'ʻ': '\'',
	'´': '\'',
	'“': '"',
	'”': '"',
	'„': '"',
	'‟': '"',
	'″': '"', // double prime
	'‐': '-',
	'‑': '-',
	'‒': '-',
	'–': '-', // en dash
	'—': '-', // em dash
	'―': '-',
	'−': '-', // minus sign
}

// Folder normalizes runes. The zero value keeps line breaks intact.
type Folder struct {
	// LineBreaks maps '\n' and '\r' to a space so a single-line input can
	// satisfy a multi-line passage.
	LineBreaks bool
}

// Rune returns the canonical form of r.
func (f Folder) Rune(r rune) rune {
	if f.LineBreaks && (r == '\n' || r == '\r') {
		return ' '
	}
	return Rune(r)
}

// Equal reports whether a and b are the same after folding.
func (f Folder) Equal(a, b rune) bool {
	return f.Rune(a) == f.Rune(b)
}

// Rune folds typographic punctuation and space variants to ASCII and
// full-width forms to their narrow equivalents. All other runes are
// returned unchanged.
func Rune(r rune) rune {
	if mapped, ok := table[r]; ok {
		return mapped
	}
	if r < 0x3000 {
		return r
	}
	props := width.LookupRune(r)
	if props.Kind() != width.EastAsianFullwidth {
		return r
	}
	if narrow := props.Narrow(); narrow != 0 {
		return narrow
	}
	return r
}

// String folds every rune in s.
func String(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = Rune(r)
	}
	return string(runes)
}
