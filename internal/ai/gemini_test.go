package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/verte-zerg/storytype/internal/passage"
)

func TestPromptMentionsLengthAndDifficulty(t *testing.T) {
	p := Prompt(passage.Request{Words: 400, Difficulty: passage.Hard})
	if !strings.Contains(p, "about 400 words") {
		t.Fatalf("prompt missing length: %q", p)
	}
	if !strings.Contains(p, "Difficulty: Hard") || !strings.Contains(p, "semicolons") {
		t.Fatalf("prompt missing difficulty guidance: %q", p)
	}
}

func TestEveryDifficultyHasGuidance(t *testing.T) {
	for _, d := range passage.Difficulties {
		if difficultyGuide[d] == "" {
			t.Fatalf("missing guidance for %s", d)
		}
	}
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Once "), genai.Text("upon a time.")}},
		}},
	}
	got, err := extractText(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Once upon a time." {
		t.Fatalf("unexpected text %q", got)
	}
	if _, err := extractText(&genai.GenerateContentResponse{}); err == nil {
		t.Fatalf("expected error for empty response")
	}
}

func TestStripFences(t *testing.T) {
	in := "```text\nA story.\n```"
	if got := stripFences(in); got != "A story." {
		t.Fatalf("unexpected %q", got)
	}
	if got := stripFences("  plain  "); got != "plain" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), "", ""); err == nil {
		t.Fatalf("expected error without API key")
	}
}
