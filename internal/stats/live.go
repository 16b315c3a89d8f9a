package stats

import (
	"math"
	"time"

	"github.com/verte-zerg/storytype/internal/engine"
)

// minLiveElapsed keeps live rates finite right after the first keystroke.
// One sampling interval.
const minLiveElapsed = 100 * time.Millisecond

// Snapshot holds rounded live metrics.
type Snapshot struct {
	WPM       int
	CPM       int
	Accuracy  int
	ErrorRate int
}

// Live computes metrics from the verdicts before cursor and the active
// elapsed time. Words are five correct characters; incorrect characters
// only affect accuracy and error rate.
func Live(verdicts []engine.Verdict, cursor int, elapsed time.Duration) Snapshot {
	if elapsed <= 0 {
		return Snapshot{Accuracy: 100}
	}
	correct, incorrect := engine.Count(verdicts, cursor)
	total := correct + incorrect

	if elapsed < minLiveElapsed {
		elapsed = minLiveElapsed
	}
	minutes := elapsed.Minutes()

	snap := Snapshot{
		WPM:       roundNonNegative(float64(correct) / 5.0 / minutes),
		CPM:       roundNonNegative(float64(correct) / minutes),
		Accuracy:  100,
		ErrorRate: 0,
	}
	if total > 0 {
		snap.Accuracy = roundNonNegative(100 * float64(correct) / float64(total))
		snap.ErrorRate = roundNonNegative(100 * float64(incorrect) / float64(total))
	}
	return snap
}

func roundNonNegative(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}
