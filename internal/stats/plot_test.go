package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestCanvasDotBits(t *testing.T) {
	cv := newCanvas(2, 1)
	cv.set(0, 0)
	cv.set(3, 3)
	cv.set(4, 0) // outside
	if got := cv.row(0); got != "⠁⢀" {
		t.Fatalf("unexpected row %q", got)
	}
}

func TestPlotChartRisingLine(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotChart(&buf, Chart{Name: "WPM", Values: []float64{0, 1}}, 10, 2); err != nil {
		t.Fatalf("plot: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title and two rows, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "WPM (last 1.0)" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "     1.0 │ ") || !strings.Contains(lines[1], "⠀⠀⠀⠀⠀⣀⡠⠔⠒⠉") {
		t.Fatalf("unexpected top row %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "     0.0 │ ") || !strings.Contains(lines[2], "⣀⠤⠔⠊⠉⠀⠀⠀⠀⠀") {
		t.Fatalf("unexpected bottom row %q", lines[2])
	}
}

func TestPlotChartFlatSeriesCentered(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotChart(&buf, Chart{Name: "Accuracy", Unit: "%", Values: []float64{95, 95, 95}}, 10, 2); err != nil {
		t.Fatalf("plot: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "96.0%") || !strings.Contains(out, "94.0%") {
		t.Fatalf("flat series should be padded by one unit:\n%s", out)
	}
}

func TestPlotChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotChart(&buf, Chart{Name: "WPM"}, 10, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 69 {
		t.Fatalf("expected 69, got %d", got)
	}
	if got := PlotWidthFor(12); got != minPlotWidth {
		t.Fatalf("expected minimum width, got %d", got)
	}
}
