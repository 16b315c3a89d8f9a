// Package engine tracks per-character correctness of typed input against a
// reference passage.
package engine

import (
	"unicode"

	"github.com/verte-zerg/storytype/internal/normalize"
)

// Verdict classifies one passage position.
type Verdict uint8

const (
	// Untouched positions have not been typed yet.
	Untouched Verdict = iota
	// Correct positions match the passage after normalization.
	Correct
	// Incorrect positions were typed with the wrong rune.
	Incorrect
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Untouched:
		return "untouched"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Options configures comparison.
type Options struct {
	Folder normalize.Folder
}

// Result describes the effect of one Apply call.
type Result struct {
	// Changed is true when any verdict changed.
	Changed bool
	// Overflow is true when input beyond the passage end was dropped.
	Overflow bool
	// Cursor is the cursor after the call.
	Cursor int
}

// Comparator holds the verdict array and the typed buffer for one passage.
// The cursor is always len(typed); verdicts before it are Correct or
// Incorrect and verdicts from it on are Untouched.
type Comparator struct {
	passage  []rune
	typed    []rune
	verdicts []Verdict
	folder   normalize.Folder
}

// New builds a comparator for passage.
func New(passage []rune, opts Options) *Comparator {
	p := make([]rune, len(passage))
	copy(p, passage)
	return &Comparator{
		passage:  p,
		typed:    make([]rune, 0, len(p)),
		verdicts: make([]Verdict, len(p)),
		folder:   opts.Folder,
	}
}

// Apply moves the comparator to buffer. Positions from the first rune where
// buffer differs from the current typed buffer are re-evaluated; positions
// past the new length are reset. Runes beyond the passage end are dropped.
func (c *Comparator) Apply(buffer []rune) Result {
	res := Result{Cursor: len(c.typed)}
	if len(buffer) > len(c.passage) {
		res.Overflow = true
		if len(c.typed) >= len(c.passage) {
			return res
		}
		buffer = buffer[:len(c.passage)]
	}

	diff := commonPrefix(c.typed, buffer)
	for i := diff; i < len(c.typed); i++ {
		if c.verdicts[i] != Untouched {
			c.verdicts[i] = Untouched
			res.Changed = true
		}
	}
	for i := diff; i < len(buffer); i++ {
		v := c.judge(i, buffer[i])
		if c.verdicts[i] != v {
			c.verdicts[i] = v
			res.Changed = true
		}
	}

	c.typed = append(c.typed[:diff], buffer[diff:]...)
	res.Cursor = len(c.typed)
	return res
}

// Type appends one rune.
func (c *Comparator) Type(r rune) Result {
	next := make([]rune, len(c.typed), len(c.typed)+1)
	copy(next, c.typed)
	return c.Apply(append(next, r))
}

// Backspace removes the last typed rune.
func (c *Comparator) Backspace() Result {
	if len(c.typed) == 0 {
		return Result{}
	}
	return c.Apply(c.typed[:len(c.typed)-1])
}

// DeleteWord removes trailing spaces and then the word before them.
func (c *Comparator) DeleteWord() Result {
	end := len(c.typed)
	for end > 0 && unicode.IsSpace(c.typed[end-1]) {
		end--
	}
	for end > 0 && !unicode.IsSpace(c.typed[end-1]) {
		end--
	}
	return c.Apply(c.typed[:end])
}

func (c *Comparator) judge(i int, typed rune) Verdict {
	expected := c.passage[i]
	if isStructural(expected) && (typed == ' ' || typed == expected) {
		return Correct
	}
	if c.folder.Equal(typed, expected) {
		return Correct
	}
	return Incorrect
}

// isStructural reports whether r is a layout rune that a single-line input
// may satisfy with a space.
func isStructural(r rune) bool {
	return r == '\n' || r == '\r' || r == '\t'
}

func commonPrefix(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Passage returns the reference passage.
func (c *Comparator) Passage() []rune {
	return c.passage
}

// Typed returns a copy of the typed buffer.
func (c *Comparator) Typed() []rune {
	out := make([]rune, len(c.typed))
	copy(out, c.typed)
	return out
}

// Verdicts returns a copy of the verdict array.
func (c *Comparator) Verdicts() []Verdict {
	out := make([]Verdict, len(c.verdicts))
	copy(out, c.verdicts)
	return out
}

// Cursor returns the number of typed runes.
func (c *Comparator) Cursor() int {
	return len(c.typed)
}

// Complete reports whether every passage position has been typed.
func (c *Comparator) Complete() bool {
	return len(c.typed) >= len(c.passage)
}

// Counts returns the number of correct and incorrect positions before the cursor.
func (c *Comparator) Counts() (correct, incorrect int) {
	return Count(c.verdicts, len(c.typed))
}

// Count tallies correct and incorrect verdicts in verdicts[:cursor].
func Count(verdicts []Verdict, cursor int) (correct, incorrect int) {
	if cursor > len(verdicts) {
		cursor = len(verdicts)
	}
	for _, v := range verdicts[:max(cursor, 0)] {
		switch v {
		case Correct:
			correct++
		case Incorrect:
			incorrect++
		}
	}
	return correct, incorrect
}
