// Package ai produces practice passages with Google Gemini.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/verte-zerg/storytype/internal/passage"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

// Gemini implements passage.Source using the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini passage source.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, temperature: 0.9}, nil
}

// RequestPassage implements passage.Source.
func (g *Gemini) RequestPassage(ctx context.Context, req passage.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(Prompt(req)))
	if err != nil {
		return "", fmt.Errorf("failed to generate passage: %w", err)
	}
	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	return passage.Clean(stripFences(text)), nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

var difficultyGuide = map[passage.Difficulty]string{
	passage.Easy:     "Use short, common words, simple sentences, lowercase where natural and only periods and commas.",
	passage.Moderate: "Use everyday vocabulary with mixed sentence lengths, normal capitalization and ordinary punctuation including quotes and apostrophes.",
	passage.Hard:     "Use rich vocabulary, long sentences, numbers, parentheses, semicolons, hyphenated words and occasional symbols such as % & or $.",
}

// Prompt builds the generation prompt for req.
func Prompt(req passage.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write an original short story of about %d words for typing practice.\n", req.Words)
	fmt.Fprintf(&b, "Difficulty: %s. %s\n", req.Difficulty, difficultyGuide[req.Difficulty])
	b.WriteString("Write plain prose in paragraphs separated by a single blank line.\n")
	b.WriteString("Do not include a title, headings, markdown, lists or any commentary. Output only the story text.")
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// stripFences removes a surrounding markdown code block if the model added one.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
