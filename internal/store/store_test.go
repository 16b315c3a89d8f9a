package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/storytype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "storytype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestPassageLibrary(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if p, err := st.RandomByLength(ctx, 100); err != nil || p != nil {
		t.Fatalf("expected nil passage from empty bucket, got %+v (%v)", p, err)
	}

	id1, err := st.InsertPassage(ctx, "first passage", 100, "First")
	if err != nil {
		t.Fatalf("insert passage: %v", err)
	}
	if _, err := st.InsertPassage(ctx, "second passage", 100, "Second"); err != nil {
		t.Fatalf("insert passage: %v", err)
	}
	if _, err := st.InsertPassage(ctx, "long passage", 400, "Long"); err != nil {
		t.Fatalf("insert passage: %v", err)
	}

	n, err := st.CountByLength(ctx, 100)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 passages, got %d (%v)", n, err)
	}
	list, err := st.ListByLength(ctx, 400)
	if err != nil {
		t.Fatalf("list passages: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Long" {
		t.Fatalf("unexpected listing: %+v", list)
	}

	p, err := st.FetchByID(ctx, id1)
	if err != nil {
		t.Fatalf("fetch passage: %v", err)
	}
	if p.Content != "first passage" || p.Words != 100 || p.Title != "First" {
		t.Fatalf("unexpected passage: %+v", p)
	}
	if _, err := st.FetchByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	random, err := st.RandomByLength(ctx, 400)
	if err != nil || random == nil || random.Content != "long passage" {
		t.Fatalf("unexpected random passage: %+v (%v)", random, err)
	}

	ok, err := st.DeletePassage(ctx, id1)
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed: %v", err)
	}
	if n, _ := st.CountByLength(ctx, 100); n != 1 {
		t.Fatalf("expected 1 passage after delete, got %d", n)
	}
}

func TestSessionHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		stats := model.SessionStats{
			StartedAt:  start,
			EndedAt:    start.Add(30 * time.Second),
			PassageID:  "p",
			Words:      100 * (i + 1),
			Difficulty: "Easy",
			Correct:    10,
			Incorrect:  i,
			DurationMs: 30000,
		}
		chars := []model.CharStats{{Char: "a", Correct: 5}, {Char: "b", Correct: 5, Incorrect: i}}
		id, err := st.InsertSession(ctx, stats, chars)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := st.ListSessions(ctx, model.StatsConfig{})
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 sessions, got %d (%v)", len(all), err)
	}
	if all[0].SessionID != ids[0] || all[2].Words != 300 {
		t.Fatalf("unexpected session order: %+v", all)
	}

	filtered, err := st.ListSessions(ctx, model.StatsConfig{Words: 200})
	if err != nil || len(filtered) != 1 || filtered[0].Incorrect != 1 {
		t.Fatalf("unexpected filtered sessions: %+v (%v)", filtered, err)
	}

	weak, err := st.GetWeakChars(ctx, 2)
	if err != nil {
		t.Fatalf("weak chars: %v", err)
	}
	for _, agg := range weak {
		if agg.Char == "b" && agg.Incorrect != 3 {
			t.Fatalf("expected 3 misses for b over last 2 sessions, got %d", agg.Incorrect)
		}
	}

	aggs, err := st.ListCharAggregatesForSessions(ctx, ids)
	if err != nil || len(aggs) != 2 {
		t.Fatalf("expected 2 char aggregates, got %d (%v)", len(aggs), err)
	}
}
