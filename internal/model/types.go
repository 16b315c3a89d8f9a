// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Words          int
	Difficulty     string
	Source         string
	Lang           string
	Highlight      bool
	FoldLineBreaks bool
	FocusWeak      bool
	WeakTop        int
	WeakFactor     float64
	WeakWindow     int
	Model          string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Words       int
	Since       *time.Time
	Last        int
	CurveWindow int
	Top         int
}

// Passage is a stored reference text.
type Passage struct {
	ID        string
	Title     string
	Content   string
	Words     int
	CreatedAt time.Time
}

// PassageSummary is a passage listing entry.
type PassageSummary struct {
	ID    string
	Title string
}

// SessionStats captures a completed typing session.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	PassageID  string
	Words      int
	Difficulty string
	Correct    int
	Incorrect  int
	DurationMs int64
	PausedMs   int64
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Words      int
	Correct    int
	Incorrect  int
	DurationMs int64
}
