package aigen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/quizmaster-app/quizmaster/internal/config"
	"google.golang.org/genai"
)

// Provider abstracts the model behind generation so the service can be
// tested without network access.
type Provider interface {
	Generate(ctx context.Context, prompt string) ([]Candidate, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider reads GEMINI_API_KEY from the environment through
// the genai client's default configuration.
func NewGeminiProvider(ctx context.Context, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Generate(ctx context.Context, prompt string) ([]Candidate, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		log.WithError(err).Error("Gemini generation failed")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return nil, errors.New("empty model response")
	}
	log.Debugf("Raw model response:\n%s", raw)

	return extractCandidates(raw)
}

// rawCandidate matches the JSON structure the prompt requests.
type rawCandidate struct {
	QuestionText       string   `json:"question_text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Explanation        string   `json:"explanation"`
}

// extractCandidates strips markdown fences the model sometimes adds
// and decodes the payload into review-ready candidates.
func extractCandidates(raw string) ([]Candidate, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var decoded []rawCandidate
	if err := json.Unmarshal([]byte(clean), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}

	candidates := make([]Candidate, 0, len(decoded))
	for _, item := range decoded {
		candidates = append(candidates, Candidate{
			Text:        item.QuestionText,
			Options:     item.Options,
			Correct:     item.CorrectOptionIndex,
			Type:        "multiple_choice",
			Marks:       1,
			Explanation: item.Explanation,
		})
	}
	return candidates, nil
}
