package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/storytype/internal/engine"
)

func verdicts(s string) []engine.Verdict {
	out := make([]engine.Verdict, len(s))
	for i, ch := range s {
		switch ch {
		case '+':
			out[i] = engine.Correct
		case '-':
			out[i] = engine.Incorrect
		default:
			out[i] = engine.Untouched
		}
	}
	return out
}

func TestLiveZeroElapsed(t *testing.T) {
	got := Live(verdicts("+-."), 2, 0)
	want := Snapshot{WPM: 0, CPM: 0, Accuracy: 100, ErrorRate: 0}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLiveAccuracy(t *testing.T) {
	got := Live(verdicts("+++"), 3, 10*time.Second)
	if got.Accuracy != 100 || got.ErrorRate != 0 {
		t.Fatalf("expected full accuracy, got %+v", got)
	}
	got = Live(verdicts("+-+"), 3, 10*time.Second)
	if got.Accuracy != 67 || got.ErrorRate != 33 {
		t.Fatalf("expected 67/33, got %+v", got)
	}
}

func TestLiveRates(t *testing.T) {
	// 50 correct characters in 30 seconds: 10 words -> 20 WPM, 100 CPM.
	vs := make([]engine.Verdict, 60)
	for i := 0; i < 50; i++ {
		vs[i] = engine.Correct
	}
	for i := 50; i < 55; i++ {
		vs[i] = engine.Incorrect
	}
	got := Live(vs, 55, 30*time.Second)
	if got.WPM != 20 || got.CPM != 100 {
		t.Fatalf("expected 20 WPM / 100 CPM, got %+v", got)
	}
	if got.Accuracy != 91 || got.ErrorRate != 9 {
		t.Fatalf("expected 91/9 accuracy split, got %+v", got)
	}
}

func TestLiveIgnoresPositionsAfterCursor(t *testing.T) {
	got := Live(verdicts("++--"), 2, time.Minute)
	if got.Accuracy != 100 || got.CPM != 2 {
		t.Fatalf("expected only the first two positions counted, got %+v", got)
	}
}

func TestLiveNearZeroElapsedIsBounded(t *testing.T) {
	got := Live(verdicts("+"), 1, time.Millisecond)
	if got.CPM != 600 {
		t.Fatalf("expected elapsed floor to cap CPM at 600, got %+v", got)
	}
}

func TestLiveShortBurstUsesRealElapsed(t *testing.T) {
	// 3 correct characters in 200ms: 900 CPM, 180 WPM.
	got := Live(verdicts("+++"), 3, 200*time.Millisecond)
	if got.WPM != 180 || got.CPM != 900 {
		t.Fatalf("expected 180 WPM / 900 CPM, got %+v", got)
	}
}

func TestLiveNoKeystrokes(t *testing.T) {
	got := Live(verdicts("..."), 0, 5*time.Second)
	if got.Accuracy != 100 || got.ErrorRate != 0 || got.WPM != 0 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}
