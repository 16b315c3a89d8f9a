package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/storytype/internal/model"
)

func TestSessionMetrics(t *testing.T) {
	wpm, cpm, acc := SessionMetrics(50, 10, 60000)
	if wpm != 10 || cpm != 50 {
		t.Fatalf("expected 10 WPM / 50 CPM, got %.2f / %.2f", wpm, cpm)
	}
	if acc < 0.833 || acc > 0.834 {
		t.Fatalf("unexpected accuracy %.4f", acc)
	}
	if wpm, cpm, acc := SessionMetrics(5, 0, 0); wpm != 0 || cpm != 0 || acc != 0 {
		t.Fatalf("expected zeros for empty duration")
	}
}

func TestResample(t *testing.T) {
	got := Resample([]float64{1, 3, 5, 7}, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected resample: %v", got)
	}
	if got := Resample([]float64{1, 2}, 10); len(got) != 2 {
		t.Fatalf("expected no upsampling, got %v", got)
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestRenderSummaryGroupsByLength(t *testing.T) {
	sessions := []model.SessionAggregate{
		{SessionID: 1, Words: 100, Correct: 500, Incorrect: 0, DurationMs: 120000},
		{SessionID: 2, Words: 200, Correct: 1000, Incorrect: 100, DurationMs: 240000},
		{SessionID: 3, Words: 100, Correct: 500, Incorrect: 0, DurationMs: 60000},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sessions); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Words", "100", "200", "all", "375.0", "7m00s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("expected empty notice")
	}
}

func TestRenderCurves(t *testing.T) {
	sessions := []model.SessionAggregate{
		{SessionID: 1, Correct: 100, DurationMs: 60000},
		{SessionID: 2, Correct: 200, DurationMs: 60000},
		{SessionID: 3, Correct: 300, Incorrect: 30, DurationMs: 60000},
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sessions, 1, 0, 0); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Learning Curves") || !strings.Contains(out, "WPM") || !strings.Contains(out, "60.0") {
		t.Fatalf("unexpected curves output:\n%s", out)
	}
}

func TestRenderCurvesPlotsCharts(t *testing.T) {
	sessions := []model.SessionAggregate{
		{SessionID: 1, Correct: 100, DurationMs: 60000},
		{SessionID: 2, Correct: 200, DurationMs: 60000},
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sessions, 1, 20, 3); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "WPM (last 40.0)") || !strings.Contains(out, "Accuracy (last 100.0%)") {
		t.Fatalf("missing chart titles:\n%s", out)
	}
	if strings.Contains(out, "@") {
		t.Fatalf("expected braille charts, not sparklines:\n%s", out)
	}
}
