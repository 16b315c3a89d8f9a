// Package generator builds practice passages from a word list.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/storytype/internal/passage"
)

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Mix controls how words are decorated.
type Mix struct {
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
	DigitPct float64
}

// MixFor returns the decoration mix for a difficulty.
func MixFor(d passage.Difficulty) Mix {
	switch d {
	case passage.Moderate:
		return Mix{CapsPct: 0.15, PunctPct: 0.12, PunctSet: []rune(",.'")}
	case passage.Hard:
		return Mix{CapsPct: 0.3, PunctPct: 0.25, PunctSet: []rune(",.;:!?-)\"'"), DigitPct: 0.05}
	default:
		return Mix{}
	}
}

// Generate selects words uniformly and applies the mix.
func (g *Generator) Generate(words []string, count int, mix Mix) []string {
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, g.decorate(words[g.rnd.Intn(len(words))], mix))
	}
	return result
}

// GenerateWeighted selects words with a bias toward weak characters.
func (g *Generator) GenerateWeighted(words []string, count int, mix Mix, weakSet map[rune]struct{}, factor float64) []string {
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := weakSet[r]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := 0
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, g.decorate(words[idx], mix))
	}
	return result
}

func (g *Generator) decorate(word string, mix Mix) string {
	if mix.DigitPct > 0 && g.rnd.Float64() < mix.DigitPct {
		return fmt.Sprintf("%d", g.rnd.Intn(2000))
	}
	word = applyCaps(g.rnd, word, mix.CapsPct)
	return applyPunct(g.rnd, word, mix.PunctPct, mix.PunctSet)
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}

// Local implements passage.Source from an in-memory word list.
type Local struct {
	Words []string
	Gen   *Generator
	// Weak returns characters to favor; nil disables weighting.
	Weak   func(ctx context.Context) (map[rune]struct{}, error)
	Factor float64
}

// RequestPassage implements passage.Source.
func (l Local) RequestPassage(ctx context.Context, req passage.Request) (string, error) {
	if len(l.Words) == 0 {
		return "", fmt.Errorf("word list is empty")
	}
	if req.Words <= 0 {
		return "", fmt.Errorf("word count must be positive")
	}
	gen := l.Gen
	if gen == nil {
		gen = New()
	}
	mix := MixFor(req.Difficulty)

	var weak map[rune]struct{}
	if l.Weak != nil {
		set, err := l.Weak(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to load weak chars: %w", err)
		}
		weak = set
	}

	var words []string
	if len(weak) > 0 && l.Factor > 0 {
		words = gen.GenerateWeighted(l.Words, req.Words, mix, weak, l.Factor)
	} else {
		words = gen.Generate(l.Words, req.Words, mix)
	}
	return strings.Join(words, " "), nil
}
