// Package viewport measures passage layout and derives caret and scroll
// positions from it.
package viewport

import "github.com/mattn/go-runewidth"

// Rect is a glyph box in content coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Line is a half-open range of passage indices rendered on one row.
type Line struct {
	Start int
	End   int
}

// Geometry is the measured layout of a passage: one Rect per rune.
type Geometry struct {
	Glyphs     []Rect
	Lines      []Line
	LineHeight float64
	Height     float64
}

// Measured reports whether the geometry can position a caret.
func (g Geometry) Measured() bool {
	return len(g.Glyphs) > 0 && g.LineHeight > 0
}

// LineOf returns the row holding passage index i.
func (g Geometry) LineOf(i int) int {
	if !g.Measured() {
		return 0
	}
	if i >= len(g.Glyphs) {
		i = len(g.Glyphs) - 1
	}
	if i < 0 {
		i = 0
	}
	return int(g.Glyphs[i].Y / g.LineHeight)
}

// Measure lays passage out on a monospace cell grid width columns wide with
// a line height of one cell. Newlines force a break, other lines wrap at
// the last space before the overflowing rune and spaces hang past the right
// edge. A word longer than width is split. A non-positive width disables
// wrapping.
func Measure(passage []rune, width int) Geometry {
	if len(passage) == 0 {
		return Geometry{}
	}
	lines := wrapLines(passage, width)
	g := Geometry{
		Glyphs:     make([]Rect, len(passage)),
		Lines:      lines,
		LineHeight: 1,
		Height:     float64(len(lines)),
	}
	for row, line := range lines {
		x := 0
		for i := line.Start; i < line.End; i++ {
			w := glyphWidth(passage[i])
			g.Glyphs[i] = Rect{X: float64(x), Y: float64(row), W: float64(w), H: 1}
			x += w
		}
	}
	return g
}

func wrapLines(passage []rune, width int) []Line {
	var lines []Line
	start := 0
	lineWidth := 0
	lastSpace := -1
	for i, r := range passage {
		switch r {
		case '\n':
			lines = append(lines, Line{Start: start, End: i + 1})
			start, lineWidth, lastSpace = i+1, 0, -1
			continue
		case ' ':
			lineWidth += glyphWidth(r)
			lastSpace = i
			continue
		}
		w := glyphWidth(r)
		if width > 0 && lineWidth+w > width && i > start {
			if lastSpace >= start {
				lines = append(lines, Line{Start: start, End: lastSpace + 1})
				start = lastSpace + 1
				lineWidth = widthOf(passage[start:i])
			} else {
				lines = append(lines, Line{Start: start, End: i})
				start, lineWidth = i, 0
			}
			lastSpace = -1
		}
		lineWidth += w
	}
	if start < len(passage) {
		lines = append(lines, Line{Start: start, End: len(passage)})
	}
	return lines
}

// glyphWidth is the cell width of r. Newlines and zero-width runes take one
// cell so the caret has somewhere to sit.
func glyphWidth(r rune) int {
	if r == '\n' || r == '\t' {
		return 1
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

func widthOf(runes []rune) int {
	total := 0
	for _, r := range runes {
		total += glyphWidth(r)
	}
	return total
}
