package stats

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/storytype/internal/engine"
	"github.com/verte-zerg/storytype/internal/model"
)

// minWeakSamples is the number of attempts a character needs before it can
// be picked as weak.
const minWeakSamples = 3

// SelectWeakChars returns up to top printable characters with the lowest
// accuracy. Whitespace and rarely typed characters are skipped.
func SelectWeakChars(aggs []model.CharAggregate, top int) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	candidates := make([]model.CharAggregate, 0, len(aggs))
	for _, agg := range aggs {
		r, size := utf8.DecodeRuneInString(agg.Char)
		if size == 0 || unicode.IsSpace(r) {
			continue
		}
		if agg.Correct+agg.Incorrect < minWeakSamples || agg.Incorrect == 0 {
			continue
		}
		candidates = append(candidates, agg)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := charAccuracy(candidates[i]), charAccuracy(candidates[j])
		if ai == aj {
			return candidates[i].Char < candidates[j].Char
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, agg := range candidates[:top] {
		r, _ := utf8.DecodeRuneInString(agg.Char)
		weakSet[unicode.ToLower(r)] = struct{}{}
	}
	return weakSet
}

// TopCharsByFrequency returns the n most typed characters.
func TopCharsByFrequency(aggs []model.CharAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	sorted := make([]model.CharAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ti := sorted[i].Correct + sorted[i].Incorrect
		tj := sorted[j].Correct + sorted[j].Incorrect
		if ti == tj {
			return sorted[i].Char < sorted[j].Char
		}
		return ti > tj
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = sorted[i].Char
	}
	return out
}

func charAccuracy(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

// CharStatsFromVerdicts tallies per-character results for a finished
// passage. Positions at or after cursor are ignored.
func CharStatsFromVerdicts(passage []rune, verdicts []engine.Verdict, cursor int) []model.CharStats {
	byChar := map[rune]*model.CharStats{}
	var order []rune
	for i := 0; i < cursor && i < len(passage) && i < len(verdicts); i++ {
		r := passage[i]
		entry, ok := byChar[r]
		if !ok {
			entry = &model.CharStats{Char: string(r)}
			byChar[r] = entry
			order = append(order, r)
		}
		switch verdicts[i] {
		case engine.Correct:
			entry.Correct++
		case engine.Incorrect:
			entry.Incorrect++
		}
	}
	out := make([]model.CharStats, 0, len(order))
	for _, r := range order {
		out = append(out, *byChar[r])
	}
	return out
}
