package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	minPlotWidth  = 10
	axisWidth     = 8
	axisSeparator = " │ "
	brailleBase   = 0x2800
)

var curveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))

// Chart is one series drawn on its own vertical scale.
type Chart struct {
	Name   string
	Unit   string
	Values []float64
}

// PlotWidthFor returns the number of plot cells that fit next to the axis
// in a terminal totalWidth columns wide.
func PlotWidthFor(totalWidth int) int {
	w := totalWidth - axisWidth - runewidth.StringWidth(axisSeparator)
	if w < minPlotWidth {
		return minPlotWidth
	}
	return w
}

// canvas is a grid of braille cells; each cell holds 2x4 dots.
type canvas struct {
	cells  [][]uint8
	width  int
	height int
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &canvas{cells: cells, width: width, height: height}
}

// dotBits maps a dot's column and row inside a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// set lights the dot at x, y in dot coordinates; out of range is ignored.
func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 || x >= c.width*2 || y >= c.height*4 {
		return
	}
	c.cells[y/4][x/2] |= dotBits[x%2][y%4]
}

// line draws a straight segment between two dots.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	errAcc := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
		}
	}
}

func (c *canvas) row(y int) string {
	var b strings.Builder
	for _, mask := range c.cells[y] {
		b.WriteRune(rune(brailleBase + int(mask)))
	}
	return b.String()
}

// PlotChart draws ch as a braille line chart width cells wide and height
// rows tall, with the series minimum and maximum on the axis.
func PlotChart(w io.Writer, ch Chart, width, height int) error {
	if len(ch.Values) == 0 || height <= 0 {
		return nil
	}
	width = max(width, minPlotWidth)
	dotsW, dotsH := width*2, height*4
	values := Resample(ch.Values, dotsW)

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		lo, hi = lo-1, hi+1
	}

	cv := newCanvas(width, height)
	toY := func(v float64) int {
		return int(math.Round((hi - v) / (hi - lo) * float64(dotsH-1)))
	}
	toX := func(i int) int {
		if len(values) == 1 {
			return 0
		}
		return i * (dotsW - 1) / (len(values) - 1)
	}
	for i := range values {
		if i == 0 {
			cv.set(toX(0), toY(values[0]))
			continue
		}
		cv.line(toX(i-1), toY(values[i-1]), toX(i), toY(values[i]))
	}

	if _, err := fmt.Fprintf(w, "%s (last %.1f%s)\n", ch.Name, ch.Values[len(ch.Values)-1], ch.Unit); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = fmt.Sprintf("%.1f%s", hi, ch.Unit)
		case height - 1:
			label = fmt.Sprintf("%.1f%s", lo, ch.Unit)
		}
		prefix := runewidth.FillLeft(label, axisWidth) + axisSeparator
		if _, err := fmt.Fprintln(w, prefix+curveStyle.Render(cv.row(y))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
