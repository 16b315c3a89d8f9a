package viewport

import (
	"strings"
	"testing"
)

func lineTexts(passage string, g Geometry) []string {
	runes := []rune(passage)
	out := make([]string, len(g.Lines))
	for i, l := range g.Lines {
		out[i] = string(runes[l.Start:l.End])
	}
	return out
}

func TestMeasureWrapsAtSpaces(t *testing.T) {
	passage := "one two three"
	g := Measure([]rune(passage), 7)
	got := lineTexts(passage, g)
	if len(got) != 2 || got[0] != "one two " || got[1] != "three" {
		t.Fatalf("unexpected lines: %q", got)
	}
	if g.Glyphs[8] != (Rect{X: 0, Y: 1, W: 1, H: 1}) {
		t.Fatalf("unexpected rect for wrapped glyph: %+v", g.Glyphs[8])
	}
	if g.Glyphs[7].X != 7 || g.Glyphs[7].Y != 0 {
		t.Fatalf("expected hanging space at end of first line, got %+v", g.Glyphs[7])
	}
	if g.Height != 2 {
		t.Fatalf("expected height 2, got %v", g.Height)
	}
}

func TestMeasureHardBreaks(t *testing.T) {
	passage := "ab\ncd"
	g := Measure([]rune(passage), 80)
	got := lineTexts(passage, g)
	if len(got) != 2 || got[0] != "ab\n" || got[1] != "cd" {
		t.Fatalf("unexpected lines: %q", got)
	}
	if g.Glyphs[2] != (Rect{X: 2, Y: 0, W: 1, H: 1}) {
		t.Fatalf("unexpected newline rect: %+v", g.Glyphs[2])
	}
}

func TestMeasureSplitsLongWord(t *testing.T) {
	passage := "abcdefghij"
	g := Measure([]rune(passage), 4)
	got := lineTexts(passage, g)
	if strings.Join(got, "|") != "abcd|efgh|ij" {
		t.Fatalf("unexpected lines: %q", got)
	}
}

func TestMeasureWideRunes(t *testing.T) {
	passage := "日本 語"
	g := Measure([]rune(passage), 4)
	if g.Glyphs[1].X != 2 || g.Glyphs[1].W != 2 {
		t.Fatalf("expected double-width glyph, got %+v", g.Glyphs[1])
	}
	if g.Glyphs[3].Y != 1 {
		t.Fatalf("expected wrap before third glyph, got %+v", g.Glyphs[3])
	}
}

func TestMeasureNoWrap(t *testing.T) {
	g := Measure([]rune("a long line of text"), 0)
	if len(g.Lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(g.Lines))
	}
	if empty := Measure(nil, 10); empty.Measured() {
		t.Fatalf("expected empty passage to be unmeasured")
	}
}

func TestLineOf(t *testing.T) {
	g := Measure([]rune("ab\ncd\nef"), 80)
	if g.LineOf(0) != 0 || g.LineOf(4) != 1 || g.LineOf(7) != 2 || g.LineOf(100) != 2 {
		t.Fatalf("unexpected line lookup")
	}
}
