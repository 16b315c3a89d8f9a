// Package passage defines where practice passages come from.
package passage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Difficulty selects the character mix of a generated passage.
type Difficulty string

const (
	// Easy passages use lowercase common words and little punctuation.
	Easy Difficulty = "Easy"
	// Moderate passages use mixed case and ordinary punctuation.
	Moderate Difficulty = "Moderate"
	// Hard passages add numbers, symbols and uncommon words.
	Hard Difficulty = "Hard"
)

// Lengths are the supported passage lengths in words.
var Lengths = []int{100, 200, 400, 800, 1500}

// Difficulties lists the supported difficulties.
var Difficulties = []Difficulty{Easy, Moderate, Hard}

// Request describes a passage to produce.
type Request struct {
	Words      int
	Difficulty Difficulty
}

// Validate checks that the request uses a supported length and difficulty.
func (r Request) Validate() error {
	if !ValidLength(r.Words) {
		return fmt.Errorf("unsupported passage length %d (supported: %s)", r.Words, lengthList())
	}
	if _, err := ParseDifficulty(string(r.Difficulty)); err != nil {
		return err
	}
	return nil
}

// ValidLength reports whether words is a supported length bucket.
func ValidLength(words int) bool {
	for _, n := range Lengths {
		if n == words {
			return true
		}
	}
	return false
}

// ParseDifficulty parses a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (supported: Easy, Moderate, Hard)", s)
}

func lengthList() string {
	parts := make([]string, len(Lengths))
	for i, n := range Lengths {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}

// Source produces passage text.
type Source interface {
	RequestPassage(ctx context.Context, req Request) (string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, req Request) (string, error)

// RequestPassage implements Source.
func (f SourceFunc) RequestPassage(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// ErrEmpty is returned by sources that have nothing for a request.
var ErrEmpty = errors.New("no passage available")

// Chain tries each source in order and returns the first non-empty passage.
type Chain []Source

// RequestPassage implements Source.
func (c Chain) RequestPassage(ctx context.Context, req Request) (string, error) {
	var errs []error
	for _, src := range c {
		text, err := src.RequestPassage(ctx, req)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			errs = append(errs, ErrEmpty)
			continue
		}
		return text, nil
	}
	if len(errs) == 0 {
		return "", ErrEmpty
	}
	return "", errors.Join(errs...)
}

// FallbackText is used when every source fails.
const FallbackText = "The quick brown fox jumps over the lazy dog. " +
	"Pack my box with five dozen liquor jugs. " +
	"How vexingly quick daft zebras jump! " +
	"Sphinx of black quartz, judge my vow."

// Title derives a short title from the first words of text.
func Title(text string) string {
	const maxWords = 6
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "Untitled"
	}
	if len(fields) > maxWords {
		fields = fields[:maxWords]
	}
	title := strings.Join(fields, " ")
	title = strings.TrimRight(title, ".,;:!?")
	if len(strings.Fields(text)) > maxWords {
		title += "…"
	}
	return title
}

// Clean trims trailing whitespace on each line, drops blank leading and
// trailing lines and collapses runs of blank lines, so every remaining rune
// is something the typist must reproduce.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
