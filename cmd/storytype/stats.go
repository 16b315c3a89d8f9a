package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/stats"
)

var (
	statsWords       int
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsTop         int
	statsPlotHeight  int
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsWords, "words", 0, "passage length filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsTop, "top", 0, "only show the N most frequent characters")
	cmd.Flags().IntVar(&statsPlotHeight, "plot-height", defaultPlotHeight, "rows per curve chart (0 for sparklines)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	cfg := model.StatsConfig{
		Words:       statsWords,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Top:         statsTop,
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Sessions); err != nil {
		return err
	}
	width := terminalWidth()
	if statsPlotHeight > 0 {
		width = stats.PlotWidthFor(width)
	} else {
		width = sparklineWidth(width)
	}
	if err := stats.RenderCurves(out, report.Sessions, cfg.CurveWindow, width, statsPlotHeight); err != nil {
		return err
	}
	return stats.RenderCharTable(out, report.CharAggs)
}

const defaultPlotHeight = 8

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 84
	}
	return width
}

// sparklineWidth leaves room for the label and value columns.
func sparklineWidth(total int) int {
	if width := total - 24; width >= 10 {
		return width
	}
	return 10
}
