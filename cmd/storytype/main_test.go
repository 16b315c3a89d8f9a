package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/passage"
	"github.com/verte-zerg/storytype/internal/store"
)

func TestValidateConfig(t *testing.T) {
	cfg := model.Config{Words: 200, Difficulty: "moderate", Source: "auto"}
	if err := validateConfig(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Difficulty != "Moderate" {
		t.Fatalf("expected canonical difficulty, got %q", cfg.Difficulty)
	}
	bad := []model.Config{
		{Words: 250, Difficulty: "Easy", Source: "auto"},
		{Words: 100, Difficulty: "Brutal", Source: "auto"},
		{Words: 100, Difficulty: "Easy", Source: "web"},
		{Words: 100, Difficulty: "Easy", Source: "local", WeakTop: -1},
	}
	for _, c := range bad {
		c := c
		if err := validateConfig(&c); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestBuildSourceLocal(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	st := openTestStore(t)
	cfg := model.Config{Words: 100, Difficulty: "Easy", Source: "local", Lang: "en", FocusWeak: true, WeakTop: 4, WeakFactor: 2, WeakWindow: 10}
	src, closeSrc, err := buildSource(context.Background(), cfg, st, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeSrc()
	text, err := src.RequestPassage(context.Background(), passage.Request{Words: 100, Difficulty: passage.Easy})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(strings.Fields(text)); n != 100 {
		t.Fatalf("expected 100 words, got %d", n)
	}
}

func TestBuildSourceLibrary(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.InsertPassage(ctx, "a stored story", 200, "a stored story"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	cfg := model.Config{Words: 200, Difficulty: "Easy", Source: "library"}
	src, closeSrc, err := buildSource(ctx, cfg, st, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeSrc()
	text, err := src.RequestPassage(ctx, passage.Request{Words: 200, Difficulty: passage.Easy})
	if err != nil || text != "a stored story" {
		t.Fatalf("expected stored passage, got %q err=%v", text, err)
	}
}

func TestBuildSourceAIRequiresKey(t *testing.T) {
	st := openTestStore(t)
	cfg := model.Config{Words: 100, Difficulty: "Easy", Source: "ai"}
	if _, _, err := buildSource(context.Background(), cfg, st, ""); err == nil {
		t.Fatalf("expected error without API key")
	}
}

func TestDefaultConfigTemplateMentionsSections(t *testing.T) {
	tmpl := defaultConfigTemplate()
	for _, want := range []string{"[practice]", "[ai]", "GEMINI_API_KEY"} {
		if !strings.Contains(tmpl, want) {
			t.Fatalf("template missing %q", want)
		}
	}
}
