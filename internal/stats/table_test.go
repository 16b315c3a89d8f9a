package stats

import (
	"bytes"
	"testing"
)

func TestTableAlignsByCellWidth(t *testing.T) {
	tbl := newTable("Char", "Accuracy", "Correct").alignRight(1, 2)
	tbl.add("a", "97.50%", "12")
	tbl.add("<newline>", "8.00%", "3")

	lines := tbl.lines()
	want := []string{
		"Char      Accuracy Correct",
		"a           97.50%      12",
		"<newline>    8.00%       3",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTableWideRunesTakeTwoCells(t *testing.T) {
	tbl := newTable("Char", "N").alignRight(1)
	tbl.add("日", "1")
	tbl.add("a", "22")
	lines := tbl.lines()
	if lines[1] != "日    1" || lines[2] != "a    22" {
		t.Fatalf("unexpected rows %q / %q", lines[1], lines[2])
	}
}

func TestTableRaggedRowsAndWrite(t *testing.T) {
	tbl := newTable()
	tbl.add("x")
	tbl.add("yy", "z")
	var buf bytes.Buffer
	if err := tbl.write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "x   \nyy z\n\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEmptyTable(t *testing.T) {
	if lines := newTable().lines(); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}
