// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/storytype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes WPM, CPM, and accuracy for a session.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	if minutes <= 0 {
		return 0, 0, 0
	}
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

type summaryRow struct {
	sessions int
	totalWPM float64
	totalCPM float64
	totalAcc float64
	bestWPM  float64
	duration int64
}

func (r *summaryRow) add(s model.SessionAggregate) {
	wpm, cpm, acc := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
	r.sessions++
	r.totalWPM += wpm
	r.totalCPM += cpm
	r.totalAcc += acc
	r.duration += s.DurationMs
	if wpm > r.bestWPM {
		r.bestWPM = wpm
	}
}

func (r summaryRow) cells(label string) []string {
	count := float64(r.sessions)
	return []string{
		label,
		fmt.Sprintf("%d", r.sessions),
		fmt.Sprintf("%.1f", r.totalWPM/count),
		fmt.Sprintf("%.1f", r.bestWPM),
		fmt.Sprintf("%.1f", r.totalCPM/count),
		fmt.Sprintf("%.2f%%", r.totalAcc/count*100),
		formatDuration(r.duration),
	}
}

// RenderSummary prints overall and per-length summaries for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var all summaryRow
	byWords := map[int]*summaryRow{}
	for _, s := range sessions {
		all.add(s)
		row, ok := byWords[s.Words]
		if !ok {
			row = &summaryRow{}
			byWords[s.Words] = row
		}
		row.add(s)
	}
	lengths := make([]int, 0, len(byWords))
	for n := range byWords {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)

	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	tbl := newTable("Words", "Sessions", "Avg WPM", "Best WPM", "Avg CPM", "Accuracy", "Time").
		alignRight(0, 1, 2, 3, 4, 5, 6)
	for _, n := range lengths {
		tbl.add(byWords[n].cells(fmt.Sprintf("%d", n))...)
	}
	tbl.add(all.cells("all")...)
	return tbl.write(w)
}

func formatDuration(ms int64) string {
	secs := ms / 1000
	if secs < 3600 {
		return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
	}
	return fmt.Sprintf("%dh%02dm", secs/3600, (secs%3600)/60)
}

// RenderCurves prints WPM and accuracy curves smoothed over window sessions.
// With a positive height each curve is a braille chart width cells wide;
// otherwise both are squeezed into one-line sparklines.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, width, height int) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, _, acc := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	if height > 0 {
		if err := PlotChart(w, Chart{Name: "WPM", Values: wpms}, width, height); err != nil {
			return err
		}
		return PlotChart(w, Chart{Name: "Accuracy", Unit: "%", Values: accs}, width, height)
	}

	wpms = Resample(wpms, width)
	accs = Resample(accs, width)
	tbl := newTable().alignRight(2)
	tbl.add("WPM", Sparkline(wpms), fmt.Sprintf("%.1f", wpms[len(wpms)-1]))
	tbl.add("Accuracy", Sparkline(accs), fmt.Sprintf("%.1f%%", accs[len(accs)-1]))
	return tbl.write(w)
}

// Resample averages values into at most width buckets.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// RenderCharTable prints per-character aggregates.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	type row struct {
		char      string
		acc       float64
		correct   int
		incorrect int
	}
	rows := make([]row, 0, len(aggs))
	for _, agg := range aggs {
		charLabel := agg.Char
		switch charLabel {
		case " ":
			charLabel = "<space>"
		case "\n":
			charLabel = "<newline>"
		}
		total := agg.Correct + agg.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(agg.Correct) / float64(total)
		}
		rows = append(rows, row{
			char:      charLabel,
			acc:       acc,
			correct:   agg.Correct,
			incorrect: agg.Incorrect,
		})
	}
	// Sort by lowest accuracy.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].acc == rows[j].acc {
			return rows[i].char < rows[j].char
		}
		return rows[i].acc < rows[j].acc
	})

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}

	tbl := newTable("Char", "Accuracy", "Correct", "Incorrect").alignRight(1, 2, 3)
	for _, r := range rows {
		tbl.add(
			r.char,
			fmt.Sprintf("%.2f%%", r.acc*100),
			fmt.Sprintf("%d", r.correct),
			fmt.Sprintf("%d", r.incorrect),
		)
	}
	return tbl.write(w)
}
