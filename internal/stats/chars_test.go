package stats

import (
	"testing"

	"github.com/verte-zerg/storytype/internal/engine"
	"github.com/verte-zerg/storytype/internal/model"
)

func TestTopCharsByFrequency(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "b", Correct: 3, Incorrect: 1},
		{Char: "a", Correct: 2, Incorrect: 2},
		{Char: "c", Correct: 1, Incorrect: 0},
	}
	top := TopCharsByFrequency(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 chars, got %d", len(top))
	}
	if top[0] != "a" || top[1] != "b" {
		t.Fatalf("unexpected order: %v", top)
	}
}

func TestSelectWeakChars(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: "Q", Correct: 1, Incorrect: 4},
		{Char: " ", Correct: 0, Incorrect: 9},
		{Char: "z", Correct: 0, Incorrect: 1},
		{Char: "e", Correct: 20, Incorrect: 0},
	}
	weak := SelectWeakChars(aggs, 1)
	if len(weak) != 1 {
		t.Fatalf("expected one weak char, got %v", weak)
	}
	if _, ok := weak['q']; !ok {
		t.Fatalf("expected lowercased q to be weakest, got %v", weak)
	}
	all := SelectWeakChars(aggs, 0)
	if len(all) != 2 {
		t.Fatalf("expected a and q as candidates, got %v", all)
	}
}

func TestCharStatsFromVerdicts(t *testing.T) {
	passage := []rune("abca")
	vs := []engine.Verdict{engine.Correct, engine.Incorrect, engine.Correct, engine.Incorrect}
	got := CharStatsFromVerdicts(passage, vs, 4)
	if len(got) != 3 {
		t.Fatalf("expected 3 chars, got %+v", got)
	}
	if got[0].Char != "a" || got[0].Correct != 1 || got[0].Incorrect != 1 {
		t.Fatalf("unexpected stats for a: %+v", got[0])
	}
	if got[1].Char != "b" || got[1].Incorrect != 1 {
		t.Fatalf("unexpected stats for b: %+v", got[1])
	}
}
