package aigen

import (
	"context"

	"github.com/quizmaster-app/quizmaster/internal/config"
	"gorm.io/gorm"
)

type AIGenContainer struct {
	Service Service
	Handler *Handler
}

func NewAIGenContainer(db *gorm.DB) *AIGenContainer {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx, config.GeminiModel())
	if err != nil {
		// The rest of the application still works without a model;
		// generation requests fail with a 500 until the key is
		// configured.
		config.WithContext(ctx).WithError(err).Warn("Gemini provider unavailable")
		provider = unavailableProvider{err: err}
	}
	service := NewService(provider, NewLogRepository(db), config.GenerationTimeout())
	handler := NewHandler(service)

	return &AIGenContainer{
		Service: service,
		Handler: handler,
	}
}

type unavailableProvider struct {
	err error
}

func (p unavailableProvider) Generate(ctx context.Context, prompt string) ([]Candidate, error) {
	return nil, p.err
}
