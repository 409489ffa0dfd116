package analytics

import (
	"github.com/quizmaster-app/quizmaster/internal/quiz"
	"gorm.io/gorm"
)

type AnalyticsContainer struct {
	Repo    AnalyticsRepository
	Service AnalyticsService
	Handler *Handler
}

func NewAnalyticsContainer(db *gorm.DB, quizRepo quiz.QuizRepository) *AnalyticsContainer {
	repo := NewRepository(db)
	service := NewService(repo, quizRepo)
	handler := NewHandler(service)

	return &AnalyticsContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
