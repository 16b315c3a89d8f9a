package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/storytype/internal/engine"
	"github.com/verte-zerg/storytype/internal/viewport"
)

func verdictsFor(passage, typed string) []engine.Verdict {
	c := engine.New([]rune(passage), engine.Options{})
	c.Apply([]rune(typed))
	return c.Verdicts()
}

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), verdictsFor("ab", "a"), 1, true)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected caret on second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes([]rune("a"), verdictsFor("a", "a"), 1, true)
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), verdictsFor("ab", "ax"), 2, true)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesNeutralWithoutHighlight(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), verdictsFor("a b", "ax"), 2, false)
	if runes[0].s != typedStyle.Render("a") || runes[1].s != typedStyle.Render(" ") {
		t.Fatalf("expected neutral style for typed runes")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes([]rune("one two"), verdictsFor("one two", "o"), 1, true)
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), verdictsFor("a b", "ax"), 2, true)
	if runes[1].s != incorrectStyle.Render(string(wrongSpaceMark)) {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestBuildStyledRunesNewlineGlyph(t *testing.T) {
	runes := buildStyledRunes([]rune("a\nb"), nil, 0, true)
	if runes[1].s != pendingStyle.Render(string(newlineGlyph)) {
		t.Fatalf("expected newline glyph")
	}
}

func TestRenderLinesWindow(t *testing.T) {
	passage := []rune("aa\nbb\ncc\ndd")
	runes := buildStyledRunes(passage, nil, -1, true)
	g := viewport.Measure(passage, 10)
	out := renderLines(runes, g, 1, 2, 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 visible lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "b") || strings.Contains(out, "a") || strings.Contains(out, "d") {
		t.Fatalf("unexpected window %q", out)
	}
}

func TestRenderLinesKeepsHangingMistypedSpaces(t *testing.T) {
	text := strings.Repeat("a", 25) + "    bbbb"
	passage := []rune(text)
	typed := strings.Repeat("a", 25) + "xxxx"
	runes := buildStyledRunes(passage, verdictsFor(text, typed), len(typed), true)
	g := viewport.Measure(passage, 27)
	if len(g.Lines) != 2 {
		t.Fatalf("expected 2 measured lines, got %d", len(g.Lines))
	}
	out := renderLines(runes, g, 0, 0, 28)
	rows := strings.Split(out, "\n")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rendered rows, got %d: %q", len(rows), out)
	}
	if !strings.Contains(rows[0], "••••") || !strings.Contains(rows[1], "bbbb") {
		t.Fatalf("hanging spaces moved off their line: %q", out)
	}
	if lipgloss.Width(rows[0]) != 29 || lipgloss.Width(rows[1]) != 29 {
		t.Fatalf("rows not padded to a common width: %d and %d", lipgloss.Width(rows[0]), lipgloss.Width(rows[1]))
	}
}

func TestRenderLinesPadsToMinWidth(t *testing.T) {
	passage := []rune("ab\ncd")
	runes := buildStyledRunes(passage, nil, -1, true)
	out := renderLines(runes, viewport.Measure(passage, 10), 0, 0, 6)
	for _, row := range strings.Split(out, "\n") {
		if lipgloss.Width(row) != 6 {
			t.Fatalf("expected width 6, got %d for %q", lipgloss.Width(row), row)
		}
	}
}
