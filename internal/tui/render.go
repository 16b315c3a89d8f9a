package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/storytype/internal/engine"
	"github.com/verte-zerg/storytype/internal/viewport"
)

const (
	newlineGlyph   = '↵'
	tabGlyph       = '→'
	wrongSpaceMark = '•'
)

type styledRune struct {
	s string
}

// buildStyledRunes renders one styled cell per passage rune. With highlight
// off typed runes share one neutral style.
func buildStyledRunes(passage []rune, verdicts []engine.Verdict, cursor int, highlight bool) []styledRune {
	words := findWords(passage)
	currentWord := wordForCursor(words, cursor)

	out := make([]styledRune, 0, len(passage))
	for i, target := range passage {
		displayed := displayRune(target)
		style := pendingStyle
		verdict := engine.Untouched
		if i < len(verdicts) {
			verdict = verdicts[i]
		}
		switch verdict {
		case engine.Correct:
			style = correctStyle
			if !highlight {
				style = typedStyle
			}
		case engine.Incorrect:
			style = incorrectStyle
			if !highlight {
				style = typedStyle
			} else if target == ' ' {
				displayed = wrongSpaceMark
			}
		default:
			if currentWord != nil && i >= currentWord.start && i < currentWord.end {
				style = currentWordStyle
			}
		}
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, styledRune{s: style.Render(string(displayed))})
	}
	return out
}

func displayRune(r rune) rune {
	switch r {
	case '\n':
		return newlineGlyph
	case '\t':
		return tabGlyph
	}
	return r
}

func isBreak(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}

type wordRange struct {
	start int
	end   int
}

func findWords(passage []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range passage {
		if isBreak(r) {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(passage)})
	}
	return words
}

func wordForCursor(words []wordRange, cursor int) *wordRange {
	if len(words) == 0 || cursor < 0 {
		return nil
	}
	for i, w := range words {
		if cursor < w.end {
			return &words[i]
		}
	}
	return nil
}

// renderLines renders the rows of g that fall inside the window starting
// at row top and height rows tall. A non-positive height renders every row.
// renderLines renders the measured lines from top, at most height of them.
// Rows are padded with spaces to a common width of at least minWidth so the
// block stays aligned when centered. Rows are never re-wrapped: a run of
// hanging spaces stays on the line the layout put it on.
func renderLines(runes []styledRune, g viewport.Geometry, top, height, minWidth int) string {
	if len(g.Lines) == 0 {
		return renderStyledRunes(runes)
	}
	end := len(g.Lines)
	if top < 0 {
		top = 0
	}
	if top > end {
		top = end
	}
	if height > 0 && top+height < end {
		end = top + height
	}
	rows := make([]string, 0, end-top)
	width := minWidth
	for _, line := range g.Lines[top:end] {
		row := renderStyledRunes(runes[line.Start:line.End])
		width = max(width, lipgloss.Width(row))
		rows = append(rows, row)
	}
	for i, row := range rows {
		if pad := width - lipgloss.Width(row); pad > 0 {
			rows[i] = row + strings.Repeat(" ", pad)
		}
	}
	return strings.Join(rows, "\n")
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}
